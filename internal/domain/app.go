package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is the persistence boundary for accounts.
type UserRepository interface {
	Insert(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]User, error)
	Update(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) (*User, error)
}

// BlogRepository is the persistence boundary for blogs. ToggleReaction is the
// single mutation path for the reaction sets: it applies the set changes as
// one atomic operation against the identified document and returns the
// post-write state. active=true adds the user to the kind's set (idempotent)
// and removes it from the opposite set; active=false removes the user from
// both sets. The operation never touches content fields or updatedAt.
type BlogRepository interface {
	Insert(ctx context.Context, blog *Blog) (*Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]Blog, error)
	Update(ctx context.Context, id, authorID primitive.ObjectID, update BlogUpdate) (*Blog, error)
	Delete(ctx context.Context, id, authorID primitive.ObjectID) error
	ToggleReaction(ctx context.Context, blogID, userID primitive.ObjectID, kind ReactionKind, active bool) (*Blog, error)
}

// AppService is the application boundary the HTTP layer talks to.
type AppService interface {
	Register(ctx context.Context, name, email, password string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, currentPassword string, name, email, newPassword *string) (*User, error)

	CreateBlog(ctx context.Context, authorID primitive.ObjectID, title, content string) (*Blog, error)
	GetBlog(ctx context.Context, id primitive.ObjectID) (*Blog, error)
	ListBlogs(ctx context.Context, filter BlogFilter) ([]Blog, error)
	UpdateBlog(ctx context.Context, id, authorID primitive.ObjectID, update BlogUpdate) (*Blog, error)
	DeleteBlog(ctx context.Context, id, authorID primitive.ObjectID) error

	React(ctx context.Context, blogID, userID primitive.ObjectID, kind ReactionKind) (*ReactionResult, error)
}
