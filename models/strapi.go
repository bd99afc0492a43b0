package models

import (
	"errors"
	"time"
)

// ErrEmptyResponse is returned when the CMS envelope carries no data
var ErrEmptyResponse = errors.New("empty response from cms")

// LiveStreamResponse mirrors the CMS envelope for GET /live-streams/{id}
type LiveStreamResponse struct {
	Data *LiveStreamEntry `json:"data"`
}

// LiveStreamEntry is the id/attributes pair inside the livestream envelope
type LiveStreamEntry struct {
	ID         int                  `json:"id"`
	Attributes LiveStreamAttributes `json:"attributes"`
}

// LiveStreamAttributes holds the nested wire shape of a livestream with its
// populated relations
type LiveStreamAttributes struct {
	UUID             string                 `json:"uuid"`
	State            string                 `json:"state"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	ScheduledStartAt *time.Time             `json:"scheduledStartAt"`
	StartedAt        *time.Time             `json:"startedAt"`
	EndedAt          *time.Time             `json:"endedAt"`
	MetaData         map[string]interface{} `json:"metaData"`
	Chat             ChatRelation           `json:"chat"`
	Banner           MediaRelation          `json:"banner"`
	Broadcasters     BroadcasterRelation    `json:"broadcasters"`
	StreamProducts   StreamProductRelation  `json:"streamProducts"`
	Coupons          CouponRelation         `json:"coupons"`
}

// ChatRelation wraps the populated chat reference
type ChatRelation struct {
	Data *ChatRelationEntry `json:"data"`
}

// ChatRelationEntry carries the chat id and its active flag
type ChatRelationEntry struct {
	ID         int `json:"id"`
	Attributes struct {
		Active bool `json:"active"`
	} `json:"attributes"`
}

// MediaRelation wraps a populated upload (banner, avatar)
type MediaRelation struct {
	Data *MediaEntry `json:"data"`
}

// MediaEntry is the id/attributes pair for an upload
type MediaEntry struct {
	ID         int `json:"id"`
	Attributes struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"attributes"`
}

// BroadcasterRelation wraps the populated broadcasters list
type BroadcasterRelation struct {
	Data []BroadcasterEntry `json:"data"`
}

// BroadcasterEntry is the id/attributes pair for a broadcaster
type BroadcasterEntry struct {
	ID         int `json:"id"`
	Attributes struct {
		Name   string        `json:"name"`
		Avatar MediaRelation `json:"avatar"`
	} `json:"attributes"`
}

// StreamProductRelation wraps the populated stream products list
type StreamProductRelation struct {
	Data []StreamProductEntry `json:"data"`
}

// StreamProductEntry is the id/attributes pair for a stream product
type StreamProductEntry struct {
	ID         int `json:"id"`
	Attributes struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Highlighted bool    `json:"highlighted"`
	} `json:"attributes"`
}

// CouponRelation wraps the populated coupons list
type CouponRelation struct {
	Data []CouponEntry `json:"data"`
}

// CouponEntry is the id/attributes pair for a coupon
type CouponEntry struct {
	ID         int `json:"id"`
	Attributes struct {
		Code     string  `json:"code"`
		Discount float64 `json:"discount"`
	} `json:"attributes"`
}

// ToLiveStream flattens the CMS wire shape into the LiveStream served to the
// panel
func (r *LiveStreamResponse) ToLiveStream() (*LiveStream, error) {
	if r == nil || r.Data == nil {
		return nil, ErrEmptyResponse
	}

	attrs := r.Data.Attributes
	ls := &LiveStream{
		ID:               r.Data.ID,
		UUID:             attrs.UUID,
		State:            StreamState(attrs.State),
		Title:            attrs.Title,
		Description:      attrs.Description,
		ScheduledStartAt: attrs.ScheduledStartAt,
		StartedAt:        attrs.StartedAt,
		EndedAt:          attrs.EndedAt,
		MetaData:         attrs.MetaData,
		Broadcasters:     []Broadcaster{},
		StreamProducts:   []StreamProduct{},
		Coupons:          []Coupon{},
	}

	if attrs.Chat.Data != nil {
		ls.Chat = ChatRef{
			ID:     attrs.Chat.Data.ID,
			Active: attrs.Chat.Data.Attributes.Active,
		}
	}

	if attrs.Banner.Data != nil {
		ls.Banner = &Media{
			ID:   attrs.Banner.Data.ID,
			Name: attrs.Banner.Data.Attributes.Name,
			URL:  attrs.Banner.Data.Attributes.URL,
		}
	}

	for _, b := range attrs.Broadcasters.Data {
		broadcaster := Broadcaster{
			ID:   b.ID,
			Name: b.Attributes.Name,
		}
		if b.Attributes.Avatar.Data != nil {
			broadcaster.AvatarURL = b.Attributes.Avatar.Data.Attributes.URL
		}
		ls.Broadcasters = append(ls.Broadcasters, broadcaster)
	}

	for _, p := range attrs.StreamProducts.Data {
		ls.StreamProducts = append(ls.StreamProducts, StreamProduct{
			ID:          p.ID,
			Name:        p.Attributes.Name,
			Price:       p.Attributes.Price,
			Highlighted: p.Attributes.Highlighted,
		})
	}

	for _, c := range attrs.Coupons.Data {
		ls.Coupons = append(ls.Coupons, Coupon{
			ID:       c.ID,
			Code:     c.Attributes.Code,
			Discount: c.Attributes.Discount,
		})
	}

	return ls, nil
}

// ChatListResponse mirrors the CMS envelope for GET /chats
type ChatListResponse struct {
	Data []ChatEntry `json:"data"`
}

// ChatEntry is the id/attributes pair inside the chat list envelope
type ChatEntry struct {
	ID         int            `json:"id"`
	Attributes ChatAttributes `json:"attributes"`
}

// ChatAttributes holds the nested wire shape of a chat room with its
// populated users and messages
type ChatAttributes struct {
	Released  bool                `json:"released"`
	CreatedAt *time.Time          `json:"createdAt"`
	UpdatedAt *time.Time          `json:"updatedAt"`
	Messages  MessageRelation     `json:"messages"`
	Users     ParticipantRelation `json:"users"`
}

// MessageRelation wraps the populated messages list
type MessageRelation struct {
	Data []MessageEntry `json:"data"`
}

// MessageEntry is the id/attributes pair for a persisted message
type MessageEntry struct {
	ID         int               `json:"id"`
	Attributes MessageAttributes `json:"attributes"`
}

// MessageAttributes holds the persisted message fields
type MessageAttributes struct {
	Author    interface{} `json:"author"`
	Message   string      `json:"message"`
	FirstName string      `json:"firstName"`
	Image     string      `json:"image"`
	Exclusion interface{} `json:"exclusion"`
	Type      string      `json:"type"`
	Datetime  *time.Time  `json:"datetime"`
}

// ParticipantRelation wraps the populated users list
type ParticipantRelation struct {
	Data []ParticipantEntry `json:"data"`
}

// ParticipantEntry is the id/attributes pair for a chat-room membership
type ParticipantEntry struct {
	ID         int                   `json:"id"`
	Attributes ParticipantAttributes `json:"attributes"`
}

// ParticipantAttributes holds the membership fields with the nested chat user
// profile
type ParticipantAttributes struct {
	JoinedAt  *time.Time       `json:"joinedAt"`
	Blocked   bool             `json:"blocked"`
	BlockedAt *time.Time       `json:"blockedAt"`
	IsOnline  bool             `json:"isOnline"`
	ChatUser  ChatUserRelation `json:"chat_user"`
}

// ChatUserRelation wraps the populated chat user profile
type ChatUserRelation struct {
	Data *ChatUserEntry `json:"data"`
}

// ChatUserEntry is the id/attributes pair for a chat user profile
type ChatUserEntry struct {
	ID         int `json:"id"`
	Attributes struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		SocketID  string `json:"socketId"`
	} `json:"attributes"`
}

// ToChat flattens a chat entry, preserving the source message order exactly
func (e *ChatEntry) ToChat() *Chat {
	chat := &Chat{
		ID:        e.ID,
		Released:  e.Attributes.Released,
		CreatedAt: e.Attributes.CreatedAt,
		UpdatedAt: e.Attributes.UpdatedAt,
		Messages:  []Message{},
		Users:     []Participant{},
	}

	for _, m := range e.Attributes.Messages.Data {
		chat.Messages = append(chat.Messages, Message{
			ID:        m.ID,
			Author:    m.Attributes.Author,
			Message:   m.Attributes.Message,
			FirstName: m.Attributes.FirstName,
			Image:     m.Attributes.Image,
			Exclusion: m.Attributes.Exclusion,
			Type:      m.Attributes.Type,
			Datetime:  m.Attributes.Datetime,
		})
	}

	for _, u := range e.Attributes.Users.Data {
		participant := Participant{
			ID:        u.ID,
			JoinedAt:  u.Attributes.JoinedAt,
			Blocked:   u.Attributes.Blocked,
			BlockedAt: u.Attributes.BlockedAt,
			IsOnline:  u.Attributes.IsOnline,
		}
		if u.Attributes.ChatUser.Data != nil {
			cu := u.Attributes.ChatUser.Data
			participant.ChatUser = ChatUser{
				ID:        cu.ID,
				FirstName: cu.Attributes.FirstName,
				LastName:  cu.Attributes.LastName,
				Email:     cu.Attributes.Email,
				SocketID:  cu.Attributes.SocketID,
			}
		}
		chat.Users = append(chat.Users, participant)
	}

	return chat
}
