package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
)

// UserService is the user directory: registration, credential login and
// token-to-identity resolution.
type UserService struct {
	users repository.Users
}

// UserServiceConfig holds configuration for the user service.
type UserServiceConfig struct {
	Users repository.Users
}

// NewUserService creates a new user service.
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{users: cfg.Users}
}

// Register creates a new account. The password is hashed here; stores only
// ever see the opaque credential.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, model.NewInvalidArgument("user missing a valid username, password and email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, model.NewInternal("hashing password", err)
	}

	return s.users.Create(ctx, username, string(hash), email)
}

// Login verifies a username/password pair and returns the matching user,
// including the bearer token for subsequent calls.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NewInvalidUser("invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, model.NewInvalidUser("invalid username or password")
	}
	return user, nil
}

// RequireByToken resolves a bearer token to a user, failing with UserNotFound
// when the token matches nobody. Every group-scoped operation goes through
// this single resolution point.
func (s *UserService) RequireByToken(ctx context.Context, token string) (*model.User, error) {
	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NewUserNotFound(token)
	}
	return user, nil
}

// GetByUsername resolves a username; returns (nil, nil) when absent.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// GetByEmail resolves an email; returns (nil, nil) when absent.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}
