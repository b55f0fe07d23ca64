package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LoginActivity tracks successful logins for an account.
// It is kept apart from User so that user records are never mutated after signup.
type LoginActivity struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Email       string        `bson:"email"`
	TotalLogins int64         `bson:"total_logins"`
	LastLoginAt time.Time     `bson:"last_login_at"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
