package realtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/natan-gtecnologia/admin-panel-sub000/cms"
	"github.com/natan-gtecnologia/admin-panel-sub000/cms/mocks"
	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

type fakeRoomLoader struct {
	room *cms.LiveRoom
	err  error
}

func (f *fakeRoomLoader) Bootstrap(_ context.Context, _ string, _ bool) (*cms.LiveRoom, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.room, nil
}

func TestManagerOpenIsIdempotent(t *testing.T) {
	server := newChatServer(t, nil)
	manager := NewManager(wsURL(server), &fakeRoomLoader{room: testRoom()}, nil, nil, nil, nil)
	defer manager.CloseAll(context.Background())

	first, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)
	second, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, manager.Sessions(), 1)
}

func TestManagerOpenBootstrapFailure(t *testing.T) {
	manager := NewManager("ws://127.0.0.1:1/chat", &fakeRoomLoader{err: cms.ErrNoChatRoom}, nil, nil, nil, nil)

	_, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.ErrorIs(t, err, cms.ErrNoChatRoom)
	assert.Empty(t, manager.Sessions())
}

func TestManagerOpenDialFailure(t *testing.T) {
	manager := NewManager("ws://127.0.0.1:1/chat", &fakeRoomLoader{room: testRoom()}, nil, nil, nil, nil)

	_, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.Error(t, err)

	// a failed open leaves nothing registered
	_, ok := manager.Get("11111111-2222-3333-4444-555555555555")
	assert.False(t, ok)
}

func TestManagerCloseUnknownSession(t *testing.T) {
	manager := NewManager("ws://127.0.0.1:1/chat", &fakeRoomLoader{room: testRoom()}, nil, nil, nil, nil)

	err := manager.Close(context.Background(), "missing-uuid")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerCloseRemovesSession(t *testing.T) {
	server := newChatServer(t, nil)
	manager := NewManager(wsURL(server), &fakeRoomLoader{room: testRoom()}, nil, nil, nil, nil)

	_, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)

	assert.NoError(t, manager.Close(context.Background(), "11111111-2222-3333-4444-555555555555"))
	_, ok := manager.Get("11111111-2222-3333-4444-555555555555")
	assert.False(t, ok)
}

func TestManagerRefreshSessionsClosesFinishedStreams(t *testing.T) {
	server := newChatServer(t, nil)
	streams := &mocks.LiveStreamService{}
	manager := NewManager(wsURL(server), &fakeRoomLoader{room: testRoom()}, streams, nil, nil, nil)
	defer manager.CloseAll(context.Background())

	_, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)

	finished := &models.LiveStream{
		ID:    5,
		UUID:  "11111111-2222-3333-4444-555555555555",
		State: models.StreamFinished,
	}
	streams.On("GetByUUID", mock.Anything, "11111111-2222-3333-4444-555555555555").Return(finished, nil)

	manager.RefreshSessions(context.Background())

	assert.Empty(t, manager.Sessions())
	streams.AssertExpectations(t)
}

func TestManagerRefreshSessionsKeepsActiveStreams(t *testing.T) {
	server := newChatServer(t, nil)
	streams := &mocks.LiveStreamService{}
	manager := NewManager(wsURL(server), &fakeRoomLoader{room: testRoom()}, streams, nil, nil, nil)
	defer manager.CloseAll(context.Background())

	session, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)

	refreshed := &models.LiveStream{
		ID:    5,
		UUID:  "11111111-2222-3333-4444-555555555555",
		State: models.StreamEnabled,
		Title: "Título atualizado",
	}
	streams.On("GetByUUID", mock.Anything, "11111111-2222-3333-4444-555555555555").Return(refreshed, nil)

	manager.RefreshSessions(context.Background())

	assert.Len(t, manager.Sessions(), 1)
	assert.Equal(t, "Título atualizado", session.LiveStream().Title)
}

func TestManagerRefreshSessionsToleratesCMSErrors(t *testing.T) {
	server := newChatServer(t, nil)
	streams := &mocks.LiveStreamService{}
	manager := NewManager(wsURL(server), &fakeRoomLoader{room: testRoom()}, streams, nil, nil, nil)
	defer manager.CloseAll(context.Background())

	_, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)

	streams.On("GetByUUID", mock.Anything, mock.Anything).Return(nil, errors.New("cms unavailable"))

	manager.RefreshSessions(context.Background())

	// the session survives a failed refresh
	assert.Len(t, manager.Sessions(), 1)
}

func TestManagerSweepFailed(t *testing.T) {
	server := newChatServer(t, nil)
	manager := NewManager(wsURL(server), &fakeRoomLoader{room: testRoom()}, nil, nil, nil, nil)

	session, err := manager.Open(context.Background(), "11111111-2222-3333-4444-555555555555")
	assert.NoError(t, err)

	// healthy sessions are left alone
	assert.Equal(t, 0, manager.SweepFailed(context.Background()))

	session.conn.setState(Failed)
	assert.Equal(t, 1, manager.SweepFailed(context.Background()))
	assert.Empty(t, manager.Sessions())
}
