package tasks

import (
	"context"
	"log/slog"
	"time"

	"tasknest/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles task business logic. The caller passes the owner's current
// task list explicitly; the service never resolves an owner itself, so a
// task id cannot escape the owner it came in with.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new tasks service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Add appends a new task to the owner's list and persists it.
func (s *Service) Add(ctx context.Context, ownerID bson.ObjectID, current []Task, req AddTaskRequest) (*Task, error) {
	task := Task{
		ID:          bson.NewObjectID(),
		Title:       sanitize.Clean(req.Title),
		Description: sanitize.Clean(req.Description),
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	next := make([]Task, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, task)

	if err := s.repo.SaveTasks(ctx, ownerID, next); err != nil {
		s.log.Error(ErrSaveTasks.Error(), "op", "add", "error", err, "user_id", ownerID.Hex())
		return nil, ErrSaveTasks
	}

	return &task, nil
}

// Update overwrites title, description, and completed of the task with the
// given id, then persists the list. All three fields are replaced
// unconditionally; an omitted completed flag resets the task to not done.
func (s *Service) Update(ctx context.Context, ownerID, taskID bson.ObjectID, current []Task, req UpdateTaskRequest) (*Task, error) {
	i := indexOf(current, taskID)
	if i < 0 {
		s.log.Info("task not found for update", "user_id", ownerID.Hex(), "task_id", taskID.Hex())
		return nil, ErrTaskNotFound
	}

	next := make([]Task, len(current))
	copy(next, current)

	next[i].Title = sanitize.Clean(req.Title)
	next[i].Description = sanitize.Clean(req.Description)
	next[i].Completed = req.Completed

	if err := s.repo.SaveTasks(ctx, ownerID, next); err != nil {
		s.log.Error(ErrSaveTasks.Error(), "op", "update", "error", err, "user_id", ownerID.Hex(), "task_id", taskID.Hex())
		return nil, ErrSaveTasks
	}

	return &next[i], nil
}

// Delete removes the task with the given id from the owner's list and
// persists the shortened list.
func (s *Service) Delete(ctx context.Context, ownerID, taskID bson.ObjectID, current []Task) error {
	i := indexOf(current, taskID)
	if i < 0 {
		s.log.Info("task not found for delete", "user_id", ownerID.Hex(), "task_id", taskID.Hex())
		return ErrTaskNotFound
	}

	next := make([]Task, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)

	if err := s.repo.SaveTasks(ctx, ownerID, next); err != nil {
		s.log.Error(ErrSaveTasks.Error(), "op", "delete", "error", err, "user_id", ownerID.Hex(), "task_id", taskID.Hex())
		return ErrSaveTasks
	}

	return nil
}

// indexOf scans the list for a task id. Linear on purpose: lists are small
// and the scan doubles as the ownership check.
func indexOf(list []Task, id bson.ObjectID) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
