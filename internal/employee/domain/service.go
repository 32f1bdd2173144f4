package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req Request) (*Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context, req ListRequest) (pagination.Result[Employee], error)
	Update(ctx context.Context, id string, patch Patch) (*Employee, error)
	Delete(ctx context.Context, id string) error
}

// Request creates an employee. Active defaults to true when nil.
type Request struct {
	FullName string
	Position string
	Phone    string
	Email    string
	Salary   decimal.Decimal
	JoinedAt *time.Time
	Active   *bool
	Notes    string
}

type Patch struct {
	FullName *string
	Position *string
	Phone    *string
	Email    *string
	Salary   *decimal.Decimal
	JoinedAt *time.Time
	Active   *bool
	Notes    *string
}

type ListRequest struct {
	pagination.Page
	Q      string
	Active *bool
}

var (
	ErrInvalidID     = errors.New("invalid_id")
	ErrInvalidName   = errors.New("invalid_full_name")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrInvalidSalary = errors.New("invalid_salary")
	ErrNotFound      = errors.New("not_found")
)
