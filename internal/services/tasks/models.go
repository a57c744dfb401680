package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Task is a unit of work embedded in its owning user document. It has no
// standalone collection: a task id only resolves inside its owner's list.
type Task struct {
	ID          bson.ObjectID `bson:"_id" json:"id" example:"683cdb8aa96ad71e8e075bd1"`
	Title       string        `bson:"title" json:"title" example:"buy milk"`
	Description string        `bson:"description" json:"description" example:"2%"`
	Completed   bool          `bson:"completed" json:"completed" example:"false"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt" example:"2025-06-01T23:00:26.005703677Z"`
}

// AddTaskRequest represents a task creation request
type AddTaskRequest struct {
	Title       string `json:"title" validate:"required" example:"buy milk"`
	Description string `json:"description" validate:"required" example:"2%"`
}

// UpdateTaskRequest represents a task update request. Every field is
// overwritten on the stored task; an omitted completed flag means false.
type UpdateTaskRequest struct {
	Title       string `json:"title" example:"buy milk"`
	Description string `json:"description" example:"whole"`
	Completed   bool   `json:"completed" example:"true"`
}

// TaskResponse represents a single task response
type TaskResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"task has been added"`
	Task    *Task  `json:"task"`
}

// ListTasksResponse represents the full task list of the requesting user
type ListTasksResponse struct {
	Success bool   `json:"success" example:"true"`
	Tasks   []Task `json:"tasks"`
}

// DeleteTaskResponse acknowledges a task deletion
type DeleteTaskResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"task deleted successfully"`
}
