package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const debounceInterval = 1 * time.Second

// Debouncer sheds rapid duplicate reaction requests (double-clicks) using a
// SetNX key per (blog, user, kind). Only a same-kind repeat within the window
// is shed; a switch to the opposite kind is a distinct action and always
// passes. Purely a load-shedding measure: the atomic store update stays
// correct without it.
type Debouncer struct {
	rdb *goredis.Client
}

func NewDebouncer(rdb *goredis.Client) *Debouncer {
	return &Debouncer{rdb: rdb}
}

// Allow reports whether a reaction of the given kind from userID on blogID
// may proceed.
func (d *Debouncer) Allow(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind) (bool, error) {
	key := debounceKey(blogID, userID, kind)
	set, err := d.rdb.SetNX(ctx, key, "1", debounceInterval).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check debounce: %w", err)
	}
	return set, nil
}

func debounceKey(blogID, userID primitive.ObjectID, kind domain.ReactionKind) string {
	return "debounce:reaction:" + blogID.Hex() + ":" + userID.Hex() + ":" + kind.String()
}
