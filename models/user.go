package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the login account. UserID references the linked profile document in
// the collection resolved from Role; Admin accounts carry no link.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LoginID   string             `json:"loginId" bson:"loginId"`
	Password  string             `json:"password,omitempty" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	UserID    primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
