package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account.
// Email is the lookup key and is compared exactly as stored.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	FirstName    *string       `bson:"firstName"`
	LastName     *string       `bson:"lastName"`
	CreatedAt    time.Time     `bson:"created_at"`
}

// DisplayName returns the first name, or "User" when none was provided.
func (u *User) DisplayName() string {
	if u.FirstName != nil && *u.FirstName != "" {
		return *u.FirstName
	}
	return "User"
}
