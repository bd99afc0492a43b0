package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/cms"
	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

// Events spoken on the upstream chat channel
const (
	EventChatJoin        = "chat:join"
	EventMessageSend     = "message:send"
	EventMessageReceived = "message:received"
	EventUserJoined      = "user:joined"
	EventUserBlock       = "user:block"
	EventUserUnblock     = "user:unblock"
	EventSessionState    = "session:state"
)

// ModeratorName is the display name the moderation client sends messages as
const ModeratorName = "Moderador"

// SystemAuthor is the numeric author placeholder for system-authored messages
const SystemAuthor = 0

// ErrEmptyMessage is returned when a send is attempted with an empty or
// whitespace-only body. Nothing is emitted in that case.
var ErrEmptyMessage = errors.New("message body is empty")

// ErrUnknownParticipant is returned when a block targets an id not present in
// the roster
var ErrUnknownParticipant = errors.New("participant not found in roster")

// Notifier receives session events for fanout to attached panel clients.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(chatID int, event string, data interface{})
}

// AuditRecorder persists moderation events. Implementations must not block
// the session loop.
type AuditRecorder interface {
	Record(ctx context.Context, event models.ModerationEvent)
}

type joinPayload struct {
	ChatID int    `json:"chat_id"`
	Type   string `json:"type"`
}

type sendPayload struct {
	ChatID    int       `json:"chat_id"`
	FirstName string    `json:"firstName"`
	Author    int       `json:"author"`
	Message   string    `json:"message"`
	Datetime  time.Time `json:"datetime"`
}

type blockPayload struct {
	ChatID        int  `json:"chat_id"`
	ParticipantID int  `json:"participant_id"`
	Blocked       bool `json:"blocked"`
}

// Session is one realtime moderation session for a livestream. It owns the
// upstream connection, the append-only transcript and the reconciled roster
// for the lifetime of the open view.
type Session struct {
	uuid   string
	chatID int
	conn   *Conn

	mu         sync.RWMutex
	liveStream *models.LiveStream
	messages   []models.Message
	historyLen int
	roster     *Roster

	audit    AuditRecorder
	notifier Notifier

	closed    chan struct{}
	closeOnce sync.Once
	openedAt  time.Time
}

// NewSession seeds a session from a bootstrap result. The transcript starts
// as an exact copy of the persisted history and the roster as the snapshot of
// the room's users. The join event is registered to fire on every connect
// acknowledgement, before any inbound event is read.
func NewSession(room *cms.LiveRoom, conn *Conn, audit AuditRecorder, notifier Notifier) *Session {
	s := &Session{
		uuid:       room.LiveStream.UUID,
		chatID:     room.Chat.ID,
		conn:       conn,
		liveStream: room.LiveStream,
		messages:   append([]models.Message{}, room.Chat.Messages...),
		historyLen: len(room.Chat.Messages),
		roster:     NewRoster(room.Chat.Users),
		audit:      audit,
		notifier:   notifier,
		closed:     make(chan struct{}),
		openedAt:   time.Now().UTC(),
	}

	conn.OnConnect(func(c *Conn) {
		if err := c.Emit(EventChatJoin, joinPayload{ChatID: s.chatID, Type: "system"}); err != nil {
			zap.S().Errorw("failed to emit join",
				"chatId", s.chatID,
				"error", err,
			)
		}
	})
	conn.OnStateChange(s.onStateChange)

	return s
}

// UUID returns the livestream uuid this session moderates
func (s *Session) UUID() string {
	return s.uuid
}

// ChatID returns the chat room id this session joined
func (s *Session) ChatID() int {
	return s.chatID
}

// Run consumes inbound events until the connection permanently fails or the
// session is closed. Events arriving after Close never mutate state.
func (s *Session) Run() {
	for {
		select {
		case <-s.closed:
			return
		case ev, ok := <-s.conn.Events():
			if !ok {
				return
			}
			// an event buffered at close time must not mutate state
			select {
			case <-s.closed:
				return
			default:
			}
			s.handle(ev)
		}
	}
}

func (s *Session) handle(ev Event) {
	select {
	case <-s.closed:
		return
	default:
	}

	switch ev.Event {
	case EventMessageReceived:
		var msg models.Message
		if err := json.Unmarshal(ev.Data, &msg); err != nil {
			zap.S().Errorw("failed to decode inbound message",
				"chatId", s.chatID,
				"error", err,
			)
			return
		}
		s.mu.Lock()
		s.messages = append(s.messages, msg)
		s.mu.Unlock()
		s.notify(EventMessageReceived, msg)

	case EventUserJoined:
		var presence models.PresenceEvent
		if err := json.Unmarshal(ev.Data, &presence); err != nil {
			zap.S().Errorw("failed to decode presence event",
				"chatId", s.chatID,
				"error", err,
			)
			return
		}
		participant := s.roster.ApplyPresence(presence, time.Now().UTC())
		s.notify(EventUserJoined, participant)

	default:
		zap.S().Debugw("unhandled realtime event",
			"event", ev.Event,
			"chatId", s.chatID,
		)
	}
}

// SendMessage emits a system-authored chat message. Guards: the body must be
// non-empty after trimming and a connection handle must exist. Delivery is
// fire-and-forget; a write failure is logged but not surfaced, matching the
// panel behavior of clearing the compose field without awaiting an ack.
func (s *Session) SendMessage(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if s.conn == nil {
		return ErrNotConnected
	}

	payload := sendPayload{
		ChatID:    s.chatID,
		FirstName: ModeratorName,
		Author:    SystemAuthor,
		Message:   text,
		Datetime:  time.Now().UTC(),
	}
	if err := s.conn.Emit(EventMessageSend, payload); err != nil {
		zap.S().Warnw("message emit not delivered",
			"chatId", s.chatID,
			"error", err,
		)
	}

	s.record(ctx, models.ActionMessageSent, 0, text)
	return nil
}

// BlockUser emits the block intent upstream and flips the blocked flag on the
// roster entry. The upstream's own persistence of the block is external to
// this session.
func (s *Session) BlockUser(ctx context.Context, participantID int) (models.Participant, error) {
	return s.setBlocked(ctx, participantID, true)
}

// UnblockUser reverses a block on the roster entry and emits the unblock
// intent upstream
func (s *Session) UnblockUser(ctx context.Context, participantID int) (models.Participant, error) {
	return s.setBlocked(ctx, participantID, false)
}

func (s *Session) setBlocked(ctx context.Context, participantID int, blocked bool) (models.Participant, error) {
	if _, ok := s.roster.Get(participantID); !ok {
		return models.Participant{}, ErrUnknownParticipant
	}

	event := EventUserBlock
	action := models.ActionUserBlocked
	if !blocked {
		event = EventUserUnblock
		action = models.ActionUserUnblocked
	}

	if err := s.conn.Emit(event, blockPayload{
		ChatID:        s.chatID,
		ParticipantID: participantID,
		Blocked:       blocked,
	}); err != nil {
		zap.S().Warnw("block emit not delivered",
			"chatId", s.chatID,
			"participantId", participantID,
			"error", err,
		)
	}

	participant, _ := s.roster.SetBlocked(participantID, blocked, time.Now().UTC())
	s.record(ctx, action, participantID, "")
	s.notify(event, participant)
	return participant, nil
}

// Messages returns the transcript: persisted history first, then live events
// in arrival order.
func (s *Session) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Message{}, s.messages...)
}

// HistoryLen returns how many transcript entries came from the bootstrap
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historyLen
}

// Participants returns the reconciled roster
func (s *Session) Participants() []models.Participant {
	return s.roster.List()
}

// LiveStream returns the current livestream description
func (s *Session) LiveStream() *models.LiveStream {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liveStream
}

// UpdateLiveStream swaps in a refreshed livestream description
func (s *Session) UpdateLiveStream(ls *models.LiveStream) {
	s.mu.Lock()
	s.liveStream = ls
	s.mu.Unlock()
}

// State returns the upstream connection state
func (s *Session) State() State {
	return s.conn.State()
}

// Status is the session summary served to the panel
type Status struct {
	UUID         string             `json:"uuid"`
	ChatID       int                `json:"chatId"`
	State        string             `json:"state"`
	StreamState  models.StreamState `json:"streamState"`
	Messages     int                `json:"messages"`
	Participants int                `json:"participants"`
	OpenedAt     time.Time          `json:"openedAt"`
}

// Status reports the session summary
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		UUID:         s.uuid,
		ChatID:       s.chatID,
		State:        s.conn.State().String(),
		StreamState:  s.liveStream.State,
		Messages:     len(s.messages),
		Participants: s.roster.Len(),
		OpenedAt:     s.openedAt,
	}
}

// Close tears the session down exactly once
func (s *Session) Close(ctx context.Context) {
	s.closeOnce.Do(func() {
		close(s.closed)
		if err := s.conn.Close(); err != nil {
			zap.S().Debugw("connection close",
				"chatId", s.chatID,
				"error", err,
			)
		}
		s.record(ctx, models.ActionSessionClosed, 0, "")
	})
}

func (s *Session) onStateChange(state State) {
	s.notify(EventSessionState, map[string]interface{}{
		"uuid":  s.uuid,
		"state": state.String(),
	})
	if state == Failed {
		zap.S().Errorw("moderation session lost its upstream connection",
			"uuid", s.uuid,
			"chatId", s.chatID,
		)
		s.record(context.Background(), models.ActionStateChanged, 0, state.String())
	}
}

func (s *Session) notify(event string, data interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(s.chatID, event, data)
}

func (s *Session) record(ctx context.Context, action string, participantID int, message string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, models.ModerationEvent{
		SessionUUID:   s.uuid,
		ChatID:        s.chatID,
		Action:        action,
		Actor:         ModeratorName,
		ParticipantID: participantID,
		Message:       message,
		CreatedAt:     primitive.NewDateTimeFromTime(time.Now().UTC()),
	})
}
