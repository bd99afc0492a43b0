package cms

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

// ErrNoChatRoom is returned when the chat-room query for a livestream comes
// back empty. The whole bootstrap fails in that case; a session is never
// served without its chat.
var ErrNoChatRoom = errors.New("no chat room found for livestream")

// LiveRoom is the bootstrap result for one moderation page view
type LiveRoom struct {
	LiveStream *models.LiveStream `json:"liveStream"`
	Chat       *models.Chat       `json:"chat"`
}

// Bootstrapper loads a livestream and its single associated chat room in two
// sequential CMS calls
type Bootstrapper struct {
	LiveStreams LiveStreamService
	Chats       ChatService
}

// NewBootstrapper wires the bootstrap over the given CMS client
func NewBootstrapper(client *Client) *Bootstrapper {
	return &Bootstrapper{
		LiveStreams: NewLiveStreamService(client),
		Chats:       NewChatService(client),
	}
}

// Bootstrap resolves the livestream by uuid or primary key, then looks up its
// chat room. Any failure surfaces as-is so the caller can turn it into a
// not-found outcome.
func (b *Bootstrapper) Bootstrap(ctx context.Context, id string, isUUID bool) (*LiveRoom, error) {
	var (
		liveStream *models.LiveStream
		err        error
	)

	if isUUID {
		liveStream, err = b.LiveStreams.GetByUUID(ctx, id)
	} else {
		var numericID int
		numericID, err = strconv.Atoi(id)
		if err != nil {
			return nil, err
		}
		liveStream, err = b.LiveStreams.GetByID(ctx, numericID)
	}
	if err != nil {
		return nil, err
	}

	chats, err := b.Chats.FindByLiveStreamID(ctx, liveStream.ID)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		zap.S().Warnw("livestream has no chat room",
			"liveStreamId", liveStream.ID,
			"uuid", liveStream.UUID,
		)
		return nil, ErrNoChatRoom
	}

	chat := chats[0]
	return &LiveRoom{
		LiveStream: liveStream,
		Chat:       &chat,
	}, nil
}
