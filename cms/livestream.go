package cms

// go generate: mockery --name LiveStreamService

import (
	"context"
	"fmt"

	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

// LiveStreamService contains the methods to fetch livestreams from the CMS
type LiveStreamService interface {
	GetByID(ctx context.Context, id int) (*models.LiveStream, error)
	GetByUUID(ctx context.Context, uuid string) (*models.LiveStream, error)
}

type liveStreamService struct {
	client *Client
}

// NewLiveStreamService initializes a new instance of the livestream service
// with the provided CMS client
func NewLiveStreamService(client *Client) LiveStreamService {
	return &liveStreamService{
		client: client,
	}
}

// livestreamPopulate selects the relations the moderation page needs
func livestreamPopulate() Query {
	return Query{
		"populate": Query{
			"broadcasters":   Query{"populate": []string{"avatar"}},
			"banner":         "*",
			"streamProducts": "*",
			"coupons":        "*",
			"metaData":       "*",
			"chat":           "*",
		},
	}
}

func (l *liveStreamService) GetByID(ctx context.Context, id int) (*models.LiveStream, error) {
	var resp models.LiveStreamResponse
	err := l.client.Get(ctx, fmt.Sprintf("/live-streams/%d", id), livestreamPopulate(), &resp)
	if err != nil {
		return nil, err
	}
	return resp.ToLiveStream()
}

func (l *liveStreamService) GetByUUID(ctx context.Context, uuid string) (*models.LiveStream, error) {
	var resp models.LiveStreamResponse
	err := l.client.Get(ctx, "/live-streams/uuid/"+uuid, livestreamPopulate(), &resp)
	if err != nil {
		return nil, err
	}
	return resp.ToLiveStream()
}
