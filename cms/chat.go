package cms

// go generate: mockery --name ChatService

import (
	"context"
	"strconv"

	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

// ChatService contains the methods to fetch chat rooms from the CMS
type ChatService interface {
	FindByLiveStreamID(ctx context.Context, liveStreamID int) ([]models.Chat, error)
}

type chatService struct {
	client *Client
}

// NewChatService initializes a new instance of the chat service with the
// provided CMS client
func NewChatService(client *Client) ChatService {
	return &chatService{
		client: client,
	}
}

func (c *chatService) FindByLiveStreamID(ctx context.Context, liveStreamID int) ([]models.Chat, error) {
	query := Query{
		"filters": Query{
			"liveStream": Query{
				"id": Query{"$eq": strconv.Itoa(liveStreamID)},
			},
		},
		"populate": Query{
			"users":    Query{"populate": []string{"chat_user"}},
			"messages": "*",
		},
	}

	var resp models.ChatListResponse
	if err := c.client.Get(ctx, "/chats", query, &resp); err != nil {
		return nil, err
	}

	chats := make([]models.Chat, 0, len(resp.Data))
	for i := range resp.Data {
		chats = append(chats, *resp.Data[i].ToChat())
	}
	return chats, nil
}
