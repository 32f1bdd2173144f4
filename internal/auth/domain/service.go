package domain

import (
	"context"
	"time"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Authenticate validates a session token and returns its principal.
	Authenticate(ctx context.Context, rawToken string) (*Principal, error)
	Me(ctx context.Context, userID string) (*User, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error

	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
	// EnsureAdmin creates the bootstrap admin when no admin exists yet.
	EnsureAdmin(ctx context.Context, req CreateUserRequest) error
}

type CreateUserRequest struct {
	Email    string
	Name     string
	Password string
	Role     Role
}

type LoginRequest struct {
	Email     string
	Password  string
	IPAddress string
}

type LoginResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

type ChangePasswordRequest struct {
	CurrentPassword string
	NewPassword     string
}
