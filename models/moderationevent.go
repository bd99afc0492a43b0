package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Moderation event actions recorded to the audit log
const (
	ActionSessionOpened = "session_opened"
	ActionSessionClosed = "session_closed"
	ActionStateChanged  = "state_changed"
	ActionMessageSent   = "message_sent"
	ActionUserBlocked   = "user_blocked"
	ActionUserUnblocked = "user_unblocked"
)

// ModerationEvent holds the structure for the moderation audit collection in
// mongo. One record per moderator action or session lifecycle transition.
type ModerationEvent struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	SessionUUID   string             `json:"sessionUuid" bson:"sessionUuid"`
	ChatID        int                `json:"chatId" bson:"chatId"`
	Action        string             `json:"action" bson:"action"`
	Actor         string             `json:"actor" bson:"actor"`
	ParticipantID int                `json:"participantId,omitempty" bson:"participantId,omitempty"`
	Message       string             `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
