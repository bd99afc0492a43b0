package models

import "time"

// Chat holds the structure for a livestream's chat room as fetched at
// bootstrap. Message order is insertion order and is preserved as-is.
type Chat struct {
	ID        int           `json:"id"`
	Released  bool          `json:"released"`
	CreatedAt *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"`
	Messages  []Message     `json:"messages"`
	Users     []Participant `json:"users"`
}

// Message is a single chat entry. The id is numeric for persisted history and
// a string for live socket events; the two id spaces are never reconciled.
// Author is a display name, or a numeric placeholder for system-authored
// messages.
type Message struct {
	ID        interface{} `json:"id"`
	Author    interface{} `json:"author"`
	Message   string      `json:"message"`
	FirstName string      `json:"firstName"`
	Image     string      `json:"image,omitempty"`
	Exclusion interface{} `json:"exclusion,omitempty"`
	Type      string      `json:"type,omitempty"`
	Datetime  *time.Time  `json:"datetime,omitempty"`
}

// Participant is a chat-room membership record
type Participant struct {
	ID        int        `json:"id"`
	JoinedAt  *time.Time `json:"joinedAt,omitempty"`
	Blocked   bool       `json:"blocked"`
	BlockedAt *time.Time `json:"blockedAt,omitempty"`
	IsOnline  bool       `json:"isOnline"`
	ChatUser  ChatUser   `json:"chat_user"`
}

// ChatUser is the profile nested inside a participant. SocketID correlates
// the profile to a live connection.
type ChatUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	SocketID  string `json:"socketId"`
}

// PresenceEvent arrives over the realtime channel when a participant joins a
// room
type PresenceEvent struct {
	FirstName string      `json:"firstName"`
	ChatID    int         `json:"chat_id"`
	Chat      interface{} `json:"chat,omitempty"`
}
