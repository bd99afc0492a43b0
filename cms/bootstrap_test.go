package cms_test

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

func bootstrapFixtures() (*models.LiveStream, []models.Chat) {
	liveStream := &models.LiveStream{
		ID:    5,
		UUID:  "11111111-2222-3333-4444-555555555555",
		State: models.StreamEnabled,
		Title: "Lançamento",
		Chat:  models.ChatRef{ID: 7, Active: true},
	}
	chats := []models.Chat{
		{
			ID:       7,
			Released: true,
			Messages: []models.Message{{ID: 1, Message: "primeira"}},
			Users:    []models.Participant{{ID: 10}},
		},
	}
	return liveStream, chats
}

func TestBootstrapByUUID(t *testing.T) {
	liveStream, chats := bootstrapFixtures()
	streams := &mocks.LiveStreamService{}
	chatsSvc := &mocks.ChatService{}
	streams.On("GetByUUID", mock.Anything, liveStream.UUID).Return(liveStream, nil)
	chatsSvc.On("FindByLiveStreamID", mock.Anything, 5).Return(chats, nil)

	b := &cms.Bootstrapper{LiveStreams: streams, Chats: chatsSvc}
	room, err := b.Bootstrap(context.Background(), liveStream.UUID, true)

	assert.NoError(t, err)
	assert.Equal(t, liveStream, room.LiveStream)
	assert.Equal(t, 7, room.Chat.ID)
	assert.Len(t, room.Chat.Messages, 1)
	streams.AssertExpectations(t)
	chatsSvc.AssertExpectations(t)
}

func TestBootstrapByNumericID(t *testing.T) {
	liveStream, chats := bootstrapFixtures()
	streams := &mocks.LiveStreamService{}
	chatsSvc := &mocks.ChatService{}
	streams.On("GetByID", mock.Anything, 5).Return(liveStream, nil)
	chatsSvc.On("FindByLiveStreamID", mock.Anything, 5).Return(chats, nil)

	b := &cms.Bootstrapper{LiveStreams: streams, Chats: chatsSvc}
	room, err := b.Bootstrap(context.Background(), "5", false)

	assert.NoError(t, err)
	assert.Equal(t, 7, room.Chat.ID)
	streams.AssertExpectations(t)
}

func TestBootstrapInvalidNumericID(t *testing.T) {
	b := &cms.Bootstrapper{LiveStreams: &mocks.LiveStreamService{}, Chats: &mocks.ChatService{}}

	_, err := b.Bootstrap(context.Background(), "not-a-number", false)
	assert.Error(t, err)
}

func TestBootstrapLiveStreamFetchFails(t *testing.T) {
	streams := &mocks.LiveStreamService{}
	streams.On("GetByUUID", mock.Anything, mock.Anything).Return(nil, errors.New("cms unavailable"))

	b := &cms.Bootstrapper{LiveStreams: streams, Chats: &mocks.ChatService{}}
	_, err := b.Bootstrap(context.Background(), "11111111-2222-3333-4444-555555555555", true)
	assert.EqualError(t, err, "cms unavailable")
}

func TestBootstrapNoChatRoom(t *testing.T) {
	liveStream, _ := bootstrapFixtures()
	streams := &mocks.LiveStreamService{}
	chatsSvc := &mocks.ChatService{}
	streams.On("GetByUUID", mock.Anything, liveStream.UUID).Return(liveStream, nil)
	chatsSvc.On("FindByLiveStreamID", mock.Anything, 5).Return([]models.Chat{}, nil)

	b := &cms.Bootstrapper{LiveStreams: streams, Chats: chatsSvc}
	_, err := b.Bootstrap(context.Background(), liveStream.UUID, true)
	assert.ErrorIs(t, err, cms.ErrNoChatRoom)
}

func TestBootstrapChatFetchFails(t *testing.T) {
	liveStream, _ := bootstrapFixtures()
	streams := &mocks.LiveStreamService{}
	chatsSvc := &mocks.ChatService{}
	streams.On("GetByUUID", mock.Anything, liveStream.UUID).Return(liveStream, nil)
	chatsSvc.On("FindByLiveStreamID", mock.Anything, 5).Return(nil, errors.New("cms unavailable"))

	b := &cms.Bootstrapper{LiveStreams: streams, Chats: chatsSvc}
	_, err := b.Bootstrap(context.Background(), liveStream.UUID, true)
	assert.EqualError(t, err, "cms unavailable")
}
