package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// E is the error envelope every failing request resolves to. The zero value
// of Success keeps the body at {"success":false,"message":...} regardless of
// where the error came from.
type E struct {
	Status  int    `json:"-" example:"400"`
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Bad Request"`
}

// Error implements the error interface
func (e E) Error() string {
	return e.Message
}

// JSON writes the envelope with its status code.
func (e E) JSON(c *fiber.Ctx) error {
	return c.Status(e.Status).JSON(e)
}

// Fail returns the error for Fiber's global error handler to process
func Fail(err E) error {
	return err
}

// New builds an envelope from a status code and message.
func New(status int, message string) E {
	return E{Status: status, Message: message}
}

// InvalidInput wraps a validation error and returns the standard response.
func InvalidInput(err error) error {
	return Fail(New(400, "Invalid input: "+err.Error()))
}

// Pre-defined HTTP errors
var (
	ErrBadRequest           = New(400, "Bad Request")
	ErrUnauthorized         = New(401, "Unauthorized")
	ErrUserNotAuthenticated = New(401, "User not authenticated")
	ErrInternal             = New(500, "Internal Server Error")
)

// Handler is the global error handler for Fiber. Every error that escapes a
// handler is flattened into the envelope here; nothing propagates past the
// request boundary.
func Handler(c *fiber.Ctx, err error) error {
	var e E
	if errors.As(err, &e) {
		return e.JSON(c)
	}

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return New(fiberError.Code, fiberError.Message).JSON(c)
	}

	return ErrInternal.JSON(c)
}
