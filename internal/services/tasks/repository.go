package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository persists a user's embedded task list. Every mutation rewrites
// the whole list on the owner document in one atomic write; concurrent
// writers race with last-writer-wins semantics.
type Repository interface {
	SaveTasks(ctx context.Context, ownerID bson.ObjectID, list []Task) error
}
