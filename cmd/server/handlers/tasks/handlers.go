package tasks

import (
	"context"
	"errors"

	"tasknest/cmd/server/handlers/handlerutil"
	"tasknest/cmd/server/handlers/httperr"
	"tasknest/internal/logger"
	"tasknest/internal/services/tasks"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service defines the interface for the tasks service
type Service interface {
	Add(ctx context.Context, ownerID bson.ObjectID, current []tasks.Task, req tasks.AddTaskRequest) (*tasks.Task, error)
	Update(ctx context.Context, ownerID, taskID bson.ObjectID, current []tasks.Task, req tasks.UpdateTaskRequest) (*tasks.Task, error)
	Delete(ctx context.Context, ownerID, taskID bson.ObjectID, current []tasks.Task) error
}

// Handlers contains the task HTTP handlers. Every route is guarded by the
// principal middleware, so the handlers only ever touch the task list of the
// user the token resolved to.
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new task handlers
func NewHandlers(service Service, v *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: v,
	}
}

// Add handles task creation
// @Summary Add a task to the authenticated user's list
// @Tags tasks
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body tasks.AddTaskRequest true "Add task request"
// @Success 201 {object} tasks.TaskResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /user/add-task [post]
func (h *Handlers) Add(c *fiber.Ctx) error {
	user, err := handlerutil.Principal(c)
	if err != nil {
		return err
	}

	var req tasks.AddTaskRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Add"); err != nil {
		return err
	}

	task, err := h.service.Add(c.Context(), user.ID, user.Tasks, req)
	if err != nil {
		return h.serviceError(err, "Add", user.ID)
	}

	return c.Status(201).JSON(tasks.TaskResponse{
		Success: true,
		Message: "task has been added",
		Task:    task,
	})
}

// List returns the authenticated user's full task list in insertion order.
// The principal middleware already loaded the document, so no further store
// round trip happens here.
// @Summary List the authenticated user's tasks
// @Tags tasks
// @Produce json
// @Security Bearer
// @Success 200 {object} tasks.ListTasksResponse
// @Failure 401 {object} httperr.E
// @Router /user/tasks [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	user, err := handlerutil.Principal(c)
	if err != nil {
		return err
	}

	list := user.Tasks
	if list == nil {
		list = []tasks.Task{}
	}

	return c.JSON(tasks.ListTasksResponse{
		Success: true,
		Tasks:   list,
	})
}

// Update handles task updates
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security Bearer
// @Param taskId path string true "Task ID"
// @Param request body tasks.UpdateTaskRequest true "Update task request"
// @Success 200 {object} tasks.TaskResponse
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /user/update-task/{taskId} [put]
func (h *Handlers) Update(c *fiber.Ctx) error {
	user, err := handlerutil.Principal(c)
	if err != nil {
		return err
	}

	taskID, err := handlerutil.TaskID(c, "Update", tasks.ErrTaskNotFound)
	if err != nil {
		return err
	}

	var req tasks.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.L().Warn("failed to parse update body", "handler", "Update", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	task, err := h.service.Update(c.Context(), user.ID, taskID, user.Tasks, req)
	if err != nil {
		return h.serviceError(err, "Update", user.ID)
	}

	return c.JSON(tasks.TaskResponse{
		Success: true,
		Message: "task updated successfully",
		Task:    task,
	})
}

// Delete handles task deletion
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security Bearer
// @Param taskId path string true "Task ID"
// @Success 200 {object} tasks.DeleteTaskResponse
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /user/delete-task/{taskId} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	user, err := handlerutil.Principal(c)
	if err != nil {
		return err
	}

	taskID, err := handlerutil.TaskID(c, "Delete", tasks.ErrTaskNotFound)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Context(), user.ID, taskID, user.Tasks); err != nil {
		return h.serviceError(err, "Delete", user.ID)
	}

	return c.JSON(tasks.DeleteTaskResponse{
		Success: true,
		Message: "task deleted successfully",
	})
}

func (h *Handlers) serviceError(err error, handlerName string, userID bson.ObjectID) error {
	if errors.Is(err, tasks.ErrTaskNotFound) {
		return handlerutil.NotFoundError(err)
	}
	logger.L().Error("task service failed", "handler", handlerName, "userID", userID.Hex(), "error", err)
	return httperr.Fail(httperr.New(500, err.Error()))
}
