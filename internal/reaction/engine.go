// Package reaction implements the like/dislike toggle engine.
//
// A user's opinion on a blog is one of {like, dislike, none}:
//
//	NONE     --like-->    LIKED
//	NONE     --dislike--> DISLIKED
//	LIKED    --like-->    NONE        (toggle off)
//	LIKED    --dislike--> DISLIKED    (switch)
//	DISLIKED --dislike--> NONE        (toggle off)
//	DISLIKED --like-->    LIKED       (switch)
//
// The engine is the single authority for these transitions. It never holds
// locks: correctness under concurrent requests comes from expressing each
// transition as one atomic set-update against the store and computing the
// response from the document that update returns.
package reaction

import (
	"context"
	"fmt"
	"time"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	"github.com/jetsaguirel/simple-blog/internal/logging"
	"github.com/jetsaguirel/simple-blog/internal/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogStore is the subset of the blog repository the engine needs.
type BlogStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error)
	ToggleReaction(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind, active bool) (*domain.Blog, error)
}

// Debouncer sheds duplicate toggles from rapid double-clicks. Keyed per kind:
// only a same-kind repeat is shed, so a like-to-dislike switch always reaches
// the store. Optional; the engine stays correct without one.
type Debouncer interface {
	Allow(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind) (bool, error)
}

type Engine struct {
	store     BlogStore
	debouncer Debouncer
}

func NewEngine(store BlogStore, debouncer Debouncer) *Engine {
	return &Engine{store: store, debouncer: debouncer}
}

// Apply runs the full toggle pipeline: read current membership, debounce,
// atomic set-update, response from the post-write document.
//
// The pre-toggle read only decides the direction of the toggle. Counts and
// the user's final reaction always come from the state the store hands back
// after the write, so two simultaneous likes from different users both count.
func (e *Engine) Apply(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind) (*domain.ReactionResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown reaction kind %q", kind)
	}

	start := time.Now()
	defer func() {
		metrics.ReactionDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	}()

	blog, err := e.store.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	wasActive := kind == domain.ReactionLike && blog.LikedByUser(userID) ||
		kind == domain.ReactionDislike && blog.DislikedByUser(userID)

	if e.debouncer != nil {
		allowed, err := e.debouncer.Allow(ctx, blogID, userID, kind)
		if err != nil {
			// Fail open: the atomic update below is safe without debouncing.
			logging.WithBlog(blogID.Hex()).Warn("Reaction debounce check failed", "error", err)
		} else if !allowed {
			// A suppressed request is a same-kind repeat of one that just
			// ran, so the read document already reflects that outcome and
			// wasActive selects the same message the first response carried.
			metrics.ReactionsTotal.WithLabelValues(kind.String(), "suppressed").Inc()
			return resultFor(blog, userID, kind, wasActive), nil
		}
	}

	updated, err := e.store.ToggleReaction(ctx, blogID, userID, kind, !wasActive)
	if err != nil {
		// A blog deleted between read and write surfaces as not-found
		// rather than a silent no-op.
		return nil, err
	}

	action := "added"
	if wasActive {
		action = "removed"
	}
	metrics.ReactionsTotal.WithLabelValues(kind.String(), action).Inc()

	return resultFor(updated, userID, kind, !wasActive), nil
}

// resultFor shapes the caller-facing outcome from an authoritative document.
// nowActive selects the message branch; counts and userReaction are read off
// the document itself.
func resultFor(blog *domain.Blog, userID primitive.ObjectID, kind domain.ReactionKind, nowActive bool) *domain.ReactionResult {
	message := kind.RemovedMessage()
	if nowActive {
		message = kind.AddedMessage()
	}
	return &domain.ReactionResult{
		LikeCount:    blog.LikeCount(),
		DislikeCount: blog.DislikeCount(),
		UserReaction: blog.ReactionOf(userID),
		Message:      message,
	}
}
