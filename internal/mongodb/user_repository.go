package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepo implements domain.UserRepository backed by MongoDB.
type UserRepo struct {
	users *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{users: db.Collection(usersCollection)}
}

func (r *UserRepo) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.users.InsertOne(ctx, user)
	recordOp("users.insert", err)
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.ErrEmailTaken
	}
	if err != nil {
		return nil, translateError("users.insert", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	recordOp("users.get", err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, translateError("users.get", err)
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	recordOp("users.get_by_email", err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, translateError("users.get_by_email", err)
	}
	return &user, nil
}

// GetByIDs loads a batch of users keyed by id. Missing ids are simply absent
// from the result; callers decide whether that matters.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.User, error) {
	result := make(map[primitive.ObjectID]domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		recordOp("users.get_by_ids", err)
		return nil, translateError("users.get_by_ids", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	err = cursor.All(ctx, &users)
	recordOp("users.get_by_ids", err)
	if err != nil {
		return nil, translateError("users.get_by_ids", err)
	}

	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

func (r *UserRepo) Update(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) (*domain.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.NewPasswordHash != nil {
		set["password"] = *update.NewPasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	recordOp("users.update", err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.ErrEmailTaken
	}
	if err != nil {
		return nil, translateError("users.update", err)
	}
	return &user, nil
}
