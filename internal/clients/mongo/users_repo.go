package mongo

import (
	"context"
	"errors"

	"tasknest/internal/services/auth"
	"tasknest/internal/services/tasks"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersRepo implements auth.UsersRepo and tasks.Repository on a single
// MongoDB collection: each user document embeds its whole task list.
type UsersRepo struct {
	collection *mongo.Collection
}

// NewUsersRepo creates the repository and ensures the unique email index.
// The index is the backstop for the register race the pre-insert lookup
// cannot close on its own.
func NewUsersRepo(ctx context.Context, db *mongo.Database) (*UsersRepo, error) {
	collection := db.Collection("users")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, err
	}

	return &UsersRepo{
		collection: collection,
	}, nil
}

// Create inserts a new user document.
func (r *UsersRepo) Create(ctx context.Context, user *auth.User) error {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrDuplicateUser
		}
		return err
	}

	return nil
}

// FindByEmail finds a user by email address (the login key).
func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// FindByID loads the full user document, embedded tasks included. The
// principal middleware calls this once per authenticated request.
func (r *UsersRepo) FindByID(ctx context.Context, id bson.ObjectID) (*auth.User, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// SaveTasks replaces the owner's embedded task list in one $set. Single
// document, single write: readers never observe a partially written list,
// and concurrent writers resolve as last writer wins.
func (r *UsersRepo) SaveTasks(ctx context.Context, ownerID bson.ObjectID, list []tasks.Task) error {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	if list == nil {
		list = []tasks.Task{}
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$set": bson.M{"tasks": list}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}
