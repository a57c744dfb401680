package tasks

import "errors"

// ErrTaskNotFound is returned when a task id does not resolve inside the
// owner's task list.
var ErrTaskNotFound = errors.New("task not found")

// ErrSaveTasks is returned when persisting the owner's task list fails.
var ErrSaveTasks = errors.New("failed to save tasks")
