package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/natan-gtecnologia/admin-panel-sub000/cms"
	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

type recordedNotification struct {
	ChatID int
	Event  string
	Data   interface{}
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []recordedNotification
	woken chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{woken: make(chan struct{}, 16)}
}

func (f *fakeNotifier) Notify(chatID int, event string, data interface{}) {
	f.mu.Lock()
	f.sent = append(f.sent, recordedNotification{ChatID: chatID, Event: event, Data: data})
	f.mu.Unlock()
	select {
	case f.woken <- struct{}{}:
	default:
	}
}

func (f *fakeNotifier) notifications() []recordedNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedNotification{}, f.sent...)
}

type fakeAudit struct {
	mu     sync.Mutex
	events []models.ModerationEvent
}

func (f *fakeAudit) Record(_ context.Context, event models.ModerationEvent) {
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
}

func (f *fakeAudit) recorded() []models.ModerationEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ModerationEvent{}, f.events...)
}

func testRoom() *cms.LiveRoom {
	history := []models.Message{
		{ID: 1, Author: "Ana", Message: "primeira", FirstName: "Ana"},
		{ID: 2, Author: "Bruno", Message: "segunda", FirstName: "Bruno"},
	}
	return &cms.LiveRoom{
		LiveStream: &models.LiveStream{
			ID:    5,
			UUID:  "11111111-2222-3333-4444-555555555555",
			State: models.StreamEnabled,
			Title: "Lançamento",
		},
		Chat: &models.Chat{
			ID:       7,
			Released: true,
			Messages: history,
			Users:    snapshotParticipants(),
		},
	}
}

func TestSessionEmitsJoinOnConnect(t *testing.T) {
	joined := make(chan Event, 1)
	server := newChatServer(t, func(ws *websocket.Conn) {
		var ev Event
		if err := ws.ReadJSON(&ev); err == nil {
			joined <- ev
		}
	})

	conn := NewConn(wsURL(server), nil)
	session := NewSession(testRoom(), conn, nil, nil)
	assert.NoError(t, conn.Open(context.Background()))
	defer session.Close(context.Background())

	select {
	case ev := <-joined:
		assert.Equal(t, EventChatJoin, ev.Event)
		assert.JSONEq(t, `{"chat_id":7,"type":"system"}`, string(ev.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("join event never arrived upstream")
	}
}

func TestSessionAppendsInboundMessages(t *testing.T) {
	notifier := newFakeNotifier()
	conn := NewConn("ws://127.0.0.1:1/chat", nil)
	session := NewSession(testRoom(), conn, nil, notifier)

	live, _ := json.Marshal(models.Message{ID: "socket-abc", Author: "Carla", Message: "ao vivo", FirstName: "Carla"})
	session.handle(Event{Event: EventMessageReceived, Data: live})

	messages := session.Messages()
	assert.Len(t, messages, 3)
	// persisted history stays in front, live events append behind it
	assert.Equal(t, 2, session.HistoryLen())
	assert.Equal(t, "primeira", messages[0].Message)
	assert.Equal(t, "ao vivo", messages[2].Message)
	assert.Equal(t, "socket-abc", messages[2].ID)

	notes := notifier.notifications()
	assert.Len(t, notes, 1)
	assert.Equal(t, 7, notes[0].ChatID)
	assert.Equal(t, EventMessageReceived, notes[0].Event)
}

func TestSessionHandlesPresence(t *testing.T) {
	notifier := newFakeNotifier()
	conn := NewConn("ws://127.0.0.1:1/chat", nil)
	session := NewSession(testRoom(), conn, nil, notifier)

	presence, _ := json.Marshal(models.PresenceEvent{
		FirstName: "Carla",
		ChatID:    7,
		Chat: map[string]interface{}{
			"id": 42,
			"chat_user": map[string]interface{}{
				"id":        402,
				"firstName": "Carla",
			},
		},
	})
	session.handle(Event{Event: EventUserJoined, Data: presence})

	participants := session.Participants()
	assert.Len(t, participants, 3)
	assert.Equal(t, 42, participants[2].ID)
	assert.True(t, participants[2].IsOnline)

	// a second join for the same participant does not duplicate the entry
	session.handle(Event{Event: EventUserJoined, Data: presence})
	assert.Len(t, session.Participants(), 3)
}

func TestSessionSendMessageGuards(t *testing.T) {
	session := NewSession(testRoom(), NewConn("ws://127.0.0.1:1/chat", nil), nil, nil)

	err := session.SendMessage(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	err = session.SendMessage(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSessionSendMessageFireAndForget(t *testing.T) {
	audit := &fakeAudit{}
	// connection never opened, the emit fails underneath
	session := NewSession(testRoom(), NewConn("ws://127.0.0.1:1/chat", nil), audit, nil)

	err := session.SendMessage(context.Background(), "mensagem do moderador")
	assert.NoError(t, err)

	events := audit.recorded()
	assert.Len(t, events, 1)
	assert.Equal(t, models.ActionMessageSent, events[0].Action)
	assert.Equal(t, "mensagem do moderador", events[0].Message)
	assert.Equal(t, ModeratorName, events[0].Actor)
}

func TestSessionSendMessagePayload(t *testing.T) {
	frames := make(chan Event, 4)
	server := newChatServer(t, func(ws *websocket.Conn) {
		for {
			var ev Event
			if err := ws.ReadJSON(&ev); err != nil {
				return
			}
			frames <- ev
		}
	})

	conn := NewConn(wsURL(server), nil)
	session := NewSession(testRoom(), conn, nil, nil)
	assert.NoError(t, conn.Open(context.Background()))
	defer session.Close(context.Background())

	// drain the join frame first
	select {
	case ev := <-frames:
		assert.Equal(t, EventChatJoin, ev.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("join frame never arrived")
	}

	assert.NoError(t, session.SendMessage(context.Background(), "promoção no ar"))

	select {
	case ev := <-frames:
		assert.Equal(t, EventMessageSend, ev.Event)
		var payload sendPayload
		assert.NoError(t, json.Unmarshal(ev.Data, &payload))
		assert.Equal(t, 7, payload.ChatID)
		assert.Equal(t, ModeratorName, payload.FirstName)
		assert.Equal(t, SystemAuthor, payload.Author)
		assert.Equal(t, "promoção no ar", payload.Message)
		assert.False(t, payload.Datetime.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("send frame never arrived")
	}
}

func TestSessionBlockAndUnblock(t *testing.T) {
	audit := &fakeAudit{}
	notifier := newFakeNotifier()
	session := NewSession(testRoom(), NewConn("ws://127.0.0.1:1/chat", nil), audit, notifier)

	blocked, err := session.BlockUser(context.Background(), 10)
	assert.NoError(t, err)
	assert.True(t, blocked.Blocked)
	assert.NotNil(t, blocked.BlockedAt)

	p, ok := session.roster.Get(10)
	assert.True(t, ok)
	assert.True(t, p.Blocked)

	unblocked, err := session.UnblockUser(context.Background(), 10)
	assert.NoError(t, err)
	assert.False(t, unblocked.Blocked)
	assert.Nil(t, unblocked.BlockedAt)

	events := audit.recorded()
	assert.Len(t, events, 2)
	assert.Equal(t, models.ActionUserBlocked, events[0].Action)
	assert.Equal(t, models.ActionUserUnblocked, events[1].Action)
	assert.Equal(t, 10, events[0].ParticipantID)

	notes := notifier.notifications()
	assert.Len(t, notes, 2)
	assert.Equal(t, EventUserBlock, notes[0].Event)
	assert.Equal(t, EventUserUnblock, notes[1].Event)
}

func TestSessionBlockUnknownParticipant(t *testing.T) {
	session := NewSession(testRoom(), NewConn("ws://127.0.0.1:1/chat", nil), nil, nil)

	_, err := session.BlockUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestSessionStatus(t *testing.T) {
	session := NewSession(testRoom(), NewConn("ws://127.0.0.1:1/chat", nil), nil, nil)

	status := session.Status()
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", status.UUID)
	assert.Equal(t, 7, status.ChatID)
	assert.Equal(t, "disconnected", status.State)
	assert.Equal(t, models.StreamEnabled, status.StreamState)
	assert.Equal(t, 2, status.Messages)
	assert.Equal(t, 2, status.Participants)
	assert.False(t, status.OpenedAt.IsZero())
}

func TestSessionIgnoresEventsAfterClose(t *testing.T) {
	conn := NewConn("ws://127.0.0.1:1/chat", nil)
	session := NewSession(testRoom(), conn, nil, nil)

	// events still buffered on the connection when the session is torn down
	live, _ := json.Marshal(models.Message{ID: "socket-late", Author: "Carla", Message: "atrasada", FirstName: "Carla"})
	conn.events <- Event{Event: EventMessageReceived, Data: live}
	presence, _ := json.Marshal(models.PresenceEvent{
		FirstName: "Davi",
		ChatID:    7,
		Chat:      map[string]interface{}{"id": 43},
	})
	conn.events <- Event{Event: EventUserJoined, Data: presence}

	session.Close(context.Background())
	session.Run()

	assert.Len(t, session.Messages(), 2)
	assert.Equal(t, 2, len(session.Participants()))

	// a direct dispatch after close is ignored too
	session.handle(Event{Event: EventMessageReceived, Data: live})
	assert.Len(t, session.Messages(), 2)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	audit := &fakeAudit{}
	session := NewSession(testRoom(), NewConn("ws://127.0.0.1:1/chat", nil), audit, nil)

	session.Close(context.Background())
	session.Close(context.Background())

	events := audit.recorded()
	assert.Len(t, events, 1)
	assert.Equal(t, models.ActionSessionClosed, events[0].Action)
}
