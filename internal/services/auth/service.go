package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tasknest/internal/config"
	"tasknest/internal/services/tasks"
	"tasknest/internal/utils/crypto"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles registration and login
type Service struct {
	repo   UsersRepo
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(repo UsersRepo, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
		log:    log,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	UserName string `json:"userName" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required,email" example:"a@x.com"`
	Password string `json:"password" validate:"required" example:"pw1"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"a@x.com"`
	Password string `json:"password" validate:"required" example:"pw1"`
}

// Response represents a successful authentication response
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"user has been registered successfully"`
	User    *User  `json:"user"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Register creates a new user and issues a bearer token. Duplicate emails
// are rejected both by the pre-insert lookup and, for the race two
// concurrent registrations can win, by the unique index on email.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateUser
	}

	hashed, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		return nil, errors.New("failed to process password")
	}

	user := &User{
		ID:           bson.NewObjectID(),
		UserName:     req.UserName,
		Email:        email,
		PasswordHash: hashed,
		Tasks:        []tasks.Task{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		s.log.Error("failed to create user", "error", err)
		return nil, errors.New("failed to create user")
	}

	token, err := IssueToken(s.config, user.ID)
	if err != nil {
		s.log.Error(ErrGenToken.Error(), "error", err, "user_id", user.ID.Hex())
		return nil, ErrGenToken
	}

	return &Response{
		Success: true,
		Message: "user has been registered successfully",
		User:    user,
		Token:   token,
	}, nil
}

// Login authenticates a user by email and password and issues a token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Response, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.Error("failed to find user by email", "error", err)
		return nil, errors.New("failed to look up user")
	}

	if err := crypto.CheckPassword(req.Password, user.PasswordHash); err != nil {
		s.log.Info("password mismatch", "user_id", user.ID.Hex())
		return nil, ErrBadCredentials
	}

	token, err := IssueToken(s.config, user.ID)
	if err != nil {
		s.log.Error(ErrGenToken.Error(), "error", err, "user_id", user.ID.Hex())
		return nil, ErrGenToken
	}

	return &Response{
		Success: true,
		Message: "user logged in successfully",
		User:    user,
		Token:   token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
