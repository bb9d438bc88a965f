package domain

import "fmt"

// ReactionKind is a user's recorded opinion on a blog.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Opposite returns the mutually exclusive counterpart.
func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// Valid reports whether k is one of the two known kinds.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

func (k ReactionKind) String() string { return string(k) }

// ReactionResult is the outcome of a toggle, computed from the authoritative
// post-write document. UserReaction is nil when the user ends up with no
// recorded reaction.
type ReactionResult struct {
	LikeCount    int           `json:"likeCount"`
	DislikeCount int           `json:"dislikeCount"`
	UserReaction *ReactionKind `json:"userReaction"`
	Message      string        `json:"message"`
}

// AddedMessage is the outcome message for the toggle-on branch.
func (k ReactionKind) AddedMessage() string { return fmt.Sprintf("%s added", k) }

// RemovedMessage is the outcome message for the toggle-off branch.
func (k ReactionKind) RemovedMessage() string { return fmt.Sprintf("%s removed", k) }
