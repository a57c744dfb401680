package auth

import (
	"context"
	"errors"

	"tasknest/cmd/server/handlers/handlerutil"
	"tasknest/cmd/server/handlers/httperr"
	"tasknest/internal/logger"
	"tasknest/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Service defines the interface for the auth service
type Service interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.Response, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.Response, error)
}

// Handlers contains the auth HTTP handlers
type Handlers struct {
	service   Service
	validator *validator.Validate
}

// NewHandlers creates new auth handlers
func NewHandlers(service Service, v *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: v,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "Register request"
// @Success 201 {object} auth.Response
// @Failure 400 {object} httperr.E
// @Router /user/register [post]
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Register"); err != nil {
		return err
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			return httperr.Fail(httperr.New(400, err.Error()))
		}
		logger.L().Error("register service failed", "handler", "Register", "email", req.Email, "error", err)
		return httperr.Fail(httperr.New(500, err.Error()))
	}

	return c.Status(201).JSON(resp)
}

// Login handles user authentication. Success replies 201, matching the
// register path; the single-page client treats both the same.
// @Summary Authenticate a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Login request"
// @Success 201 {object} auth.Response
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /user/login [post]
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "Login"); err != nil {
		return err
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return handlerutil.NotFoundError(err)
		case errors.Is(err, auth.ErrBadCredentials):
			return httperr.Fail(httperr.New(401, err.Error()))
		}
		logger.L().Error("login service failed", "handler", "Login", "email", req.Email, "error", err)
		return httperr.Fail(httperr.New(500, err.Error()))
	}

	return c.Status(201).JSON(resp)
}
