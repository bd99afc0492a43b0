package realtime

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/cms"
	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

// ErrSessionNotFound is returned when no session is open for a livestream
var ErrSessionNotFound = errors.New("no open session for livestream")

// RoomLoader loads a livestream and its chat room; satisfied by
// *cms.Bootstrapper
type RoomLoader interface {
	Bootstrap(ctx context.Context, id string, isUUID bool) (*cms.LiveRoom, error)
}

// Manager owns the open moderation sessions, one per livestream uuid
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	socketURL string
	dialer    Dialer
	rooms     RoomLoader
	streams   cms.LiveStreamService
	audit     AuditRecorder
	notifier  Notifier
}

// NewManager creates a session manager dialing the given upstream socket url
func NewManager(socketURL string, rooms RoomLoader, streams cms.LiveStreamService, dialer Dialer, audit AuditRecorder, notifier Notifier) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		socketURL: socketURL,
		dialer:    dialer,
		rooms:     rooms,
		streams:   streams,
		audit:     audit,
		notifier:  notifier,
	}
}

// Open bootstraps the livestream and starts a moderation session for it.
// Idempotent per uuid: opening an already-open session returns the running
// one.
func (m *Manager) Open(ctx context.Context, uuid string) (*Session, error) {
	m.mu.Lock()
	if existing, ok := m.sessions[uuid]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.mu.Unlock()

	room, err := m.rooms.Bootstrap(ctx, uuid, true)
	if err != nil {
		return nil, err
	}

	conn := NewConn(m.socketURL, m.dialer)
	session := NewSession(room, conn, m.audit, m.notifier)

	m.mu.Lock()
	if existing, ok := m.sessions[uuid]; ok {
		// lost the race to another open; keep the running session
		m.mu.Unlock()
		return existing, nil
	}
	m.sessions[uuid] = session
	m.mu.Unlock()

	if err := conn.Open(ctx); err != nil {
		m.mu.Lock()
		delete(m.sessions, uuid)
		m.mu.Unlock()
		return nil, err
	}
	go session.Run()

	session.record(ctx, models.ActionSessionOpened, 0, "")
	zap.S().Infow("moderation session opened",
		"uuid", uuid,
		"chatId", session.ChatID(),
	)
	return session, nil
}

// Get returns the open session for a livestream uuid
func (m *Manager) Get(uuid string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uuid]
	return s, ok
}

// Close tears down the session for a livestream uuid
func (m *Manager) Close(ctx context.Context, uuid string) error {
	m.mu.Lock()
	session, ok := m.sessions[uuid]
	if ok {
		delete(m.sessions, uuid)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Close(ctx)
	zap.S().Infow("moderation session closed",
		"uuid", uuid,
	)
	return nil
}

// Sessions returns all open sessions
func (m *Manager) Sessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// CloseAll tears down every open session, used on shutdown
func (m *Manager) CloseAll(ctx context.Context) {
	for _, s := range m.Sessions() {
		_ = m.Close(ctx, s.UUID())
	}
}

// RefreshSessions re-fetches the livestream description for every open
// session and closes the ones whose stream has finished
func (m *Manager) RefreshSessions(ctx context.Context) {
	if m.streams == nil {
		return
	}
	for _, session := range m.Sessions() {
		liveStream, err := m.streams.GetByUUID(ctx, session.UUID())
		if err != nil {
			zap.S().Warnw("failed to refresh livestream",
				"uuid", session.UUID(),
				"error", err,
			)
			continue
		}
		session.UpdateLiveStream(liveStream)
		if liveStream.State == models.StreamFinished {
			zap.S().Infow("stream finished, closing moderation session",
				"uuid", session.UUID(),
			)
			_ = m.Close(ctx, session.UUID())
		}
	}
}

// SweepFailed removes sessions whose upstream connection permanently failed
func (m *Manager) SweepFailed(ctx context.Context) int {
	swept := 0
	for _, session := range m.Sessions() {
		if session.State() == Failed {
			_ = m.Close(ctx, session.UUID())
			swept++
		}
	}
	if swept > 0 {
		zap.S().Infow("swept failed moderation sessions",
			"count", swept,
		)
	}
	return swept
}
