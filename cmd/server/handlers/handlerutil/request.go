package handlerutil

import (
	"tasknest/cmd/server/ctxkeys"
	"tasknest/cmd/server/handlers/httperr"
	"tasknest/internal/logger"
	"tasknest/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// NotFoundError wraps an error into a 404 envelope.
func NotFoundError(err error) error {
	return httperr.Fail(httperr.New(404, err.Error()))
}

// Principal returns the authenticated user the middleware resolved for this
// request. A missing principal means the route was wired without the
// middleware, which is a server bug, not a client error.
func Principal(c *fiber.Ctx) (*auth.User, error) {
	user, ok := c.Locals(ctxkeys.PrincipalKey).(*auth.User)
	if !ok || user == nil {
		logger.L().Error("principal not found in context", "path", c.Path())
		return nil, httperr.Fail(httperr.ErrUserNotAuthenticated)
	}
	return user, nil
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, v *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := v.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// TaskID extracts and parses the :taskId path parameter. A missing or
// malformed id cannot match any task, so both map to the not-found error.
func TaskID(c *fiber.Ctx, handlerName string, notFoundErr error) (bson.ObjectID, error) {
	raw := c.Params("taskId")
	if raw == "" {
		logger.L().Warn("missing task ID parameter", "handler", handlerName, "path", c.Path())
		return bson.ObjectID{}, NotFoundError(notFoundErr)
	}

	taskID, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		logger.L().Warn("invalid task ID parameter", "handler", handlerName, "taskID", raw, "error", err)
		return bson.ObjectID{}, NotFoundError(notFoundErr)
	}

	return taskID, nil
}
