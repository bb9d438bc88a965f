package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. PasswordHash is the bcrypt hash of the
// password and never leaves the process.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// UserRef is the public author projection embedded in blog responses.
type UserRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// Ref returns the public projection of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ProfileUpdate carries the optional fields of a profile change. Nil fields
// are left untouched. NewPasswordHash is already hashed by the caller.
type ProfileUpdate struct {
	Name            *string
	Email           *string
	NewPasswordHash *string
}
