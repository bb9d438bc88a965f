package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlogRepo implements domain.BlogRepository backed by MongoDB.
type BlogRepo struct {
	blogs *mongo.Collection
}

func NewBlogRepo(db *mongo.Database) *BlogRepo {
	return &BlogRepo{blogs: db.Collection(blogsCollection)}
}

func reactionField(kind domain.ReactionKind) string {
	if kind == domain.ReactionLike {
		return "likedBy"
	}
	return "dislikedBy"
}

func (r *BlogRepo) Insert(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	now := time.Now().UTC()
	blog.CreatedAt = now
	blog.UpdatedAt = now
	// Persist empty arrays, not nulls, so set operators always have a target.
	if blog.LikedBy == nil {
		blog.LikedBy = []primitive.ObjectID{}
	}
	if blog.DislikedBy == nil {
		blog.DislikedBy = []primitive.ObjectID{}
	}

	result, err := r.blogs.InsertOne(ctx, blog)
	recordOp("blogs.insert", err)
	if err != nil {
		return nil, translateError("blogs.insert", err)
	}

	blog.ID = result.InsertedID.(primitive.ObjectID)
	return blog, nil
}

func (r *BlogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.blogs.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	recordOp("blogs.get", err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBlogNotFound
	}
	if err != nil {
		return nil, translateError("blogs.get", err)
	}
	return &blog, nil
}

func (r *BlogRepo) List(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	query := bson.M{}
	if filter.AuthorID != nil {
		query["author"] = *filter.AuthorID
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.blogs.Find(ctx, query, opts)
	if err != nil {
		recordOp("blogs.list", err)
		return nil, translateError("blogs.list", err)
	}
	defer cursor.Close(ctx)

	blogs := []domain.Blog{}
	err = cursor.All(ctx, &blogs)
	recordOp("blogs.list", err)
	if err != nil {
		return nil, translateError("blogs.list", err)
	}
	return blogs, nil
}

// Update applies a content edit. The filter includes the author id so an edit
// by anyone else matches nothing; callers distinguish missing from forbidden
// with a prior read. Content edits are the only writers of updatedAt.
func (r *BlogRepo) Update(ctx context.Context, id, authorID primitive.ObjectID, update domain.BlogUpdate) (*domain.Blog, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var blog domain.Blog
	err := r.blogs.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "author": authorID},
		bson.M{"$set": set},
		opts,
	).Decode(&blog)
	recordOp("blogs.update", err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBlogNotFound
	}
	if err != nil {
		return nil, translateError("blogs.update", err)
	}
	return &blog, nil
}

func (r *BlogRepo) Delete(ctx context.Context, id, authorID primitive.ObjectID) error {
	result, err := r.blogs.DeleteOne(ctx, bson.M{"_id": id, "author": authorID})
	recordOp("blogs.delete", err)
	if err != nil {
		return translateError("blogs.delete", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

// ToggleReaction applies a reaction-set change as one atomic operation keyed
// by blog id and returns the authoritative post-write document.
//
// active=true puts the user in the kind's set and out of the opposite set;
// active=false takes the user out of both. $addToSet and $pull are idempotent,
// so concurrent toggles and retried requests converge instead of corrupting
// the sets, and two simultaneous likes from different users both land because
// the read-modify-write cycle happens inside the server, not here.
//
// The update deliberately names only the two set fields: content and
// updatedAt are untouched, reactions being metadata rather than edits.
func (r *BlogRepo) ToggleReaction(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind, active bool) (*domain.Blog, error) {
	target := reactionField(kind)
	opposite := reactionField(kind.Opposite())

	var update bson.M
	if active {
		update = bson.M{
			"$addToSet": bson.M{target: userID},
			"$pull":     bson.M{opposite: userID},
		}
	} else {
		update = bson.M{
			"$pull": bson.M{target: userID, opposite: userID},
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var blog domain.Blog
	err := r.blogs.FindOneAndUpdate(ctx, bson.M{"_id": blogID}, update, opts).Decode(&blog)
	recordOp("blogs.toggle_reaction", err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBlogNotFound
	}
	if err != nil {
		return nil, translateError("blogs.toggle_reaction", err)
	}
	return &blog, nil
}
