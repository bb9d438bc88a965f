package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a post with its embedded reaction sets. LikedBy and DislikedBy are
// sets of user ids: membership is unique and unordered, and a user id never
// appears in both at once. All reaction mutation goes through
// BlogRepository.ToggleReaction so the invariant holds under concurrency.
type Blog struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Title      string               `bson:"title"`
	Content    string               `bson:"content"`
	AuthorID   primitive.ObjectID   `bson:"author"`
	LikedBy    []primitive.ObjectID `bson:"likedBy"`
	DislikedBy []primitive.ObjectID `bson:"dislikedBy"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`

	// Author is populated from the users collection when serving reads.
	// Never persisted with the blog document.
	Author *UserRef `bson:"-"`
}

// LikeCount returns the current size of the like set.
func (b *Blog) LikeCount() int { return len(b.LikedBy) }

// DislikeCount returns the current size of the dislike set.
func (b *Blog) DislikeCount() int { return len(b.DislikedBy) }

// LikedByUser reports whether userID is in the like set.
func (b *Blog) LikedByUser(userID primitive.ObjectID) bool {
	return containsID(b.LikedBy, userID)
}

// DislikedByUser reports whether userID is in the dislike set.
func (b *Blog) DislikedByUser(userID primitive.ObjectID) bool {
	return containsID(b.DislikedBy, userID)
}

// ReactionOf returns the user's current reaction on the blog, or nil for none.
func (b *Blog) ReactionOf(userID primitive.ObjectID) *ReactionKind {
	if b.LikedByUser(userID) {
		k := ReactionLike
		return &k
	}
	if b.DislikedByUser(userID) {
		k := ReactionDislike
		return &k
	}
	return nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// BlogFilter narrows ListBlogs results. Zero value matches everything.
type BlogFilter struct {
	AuthorID *primitive.ObjectID
	Search   string // case-insensitive substring over title and content
}

// BlogUpdate carries the optional fields of a content edit. Nil fields are
// left untouched. Content edits are the only writers of UpdatedAt.
type BlogUpdate struct {
	Title   *string
	Content *string
}
