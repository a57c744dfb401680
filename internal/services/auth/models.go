package auth

import (
	"time"

	"tasknest/internal/services/tasks"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the identity record. Tasks live inside the user document; they
// have no collection of their own. PasswordHash is excluded from every JSON
// response via the struct tag.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd0"`
	UserName     string        `bson:"user_name" json:"userName" example:"alice"`
	Email        string        `bson:"email" json:"email" example:"a@x.com"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Tasks        []tasks.Task  `bson:"tasks" json:"tasks"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt" example:"2025-06-01T23:00:26.005703677Z"`
}
