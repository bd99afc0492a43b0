package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Moderator holds the structure for the moderators collection in mongo
type Moderator struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Name      string             `json:"name" bson:"name"`
	Roles     []string           `json:"roles" bson:"roles"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
