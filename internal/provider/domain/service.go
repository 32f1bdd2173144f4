package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req Request) (*Provider, error)
	Get(ctx context.Context, id string) (*Provider, error)
	List(ctx context.Context, req ListRequest) (pagination.Result[Provider], error)
	Update(ctx context.Context, id string, patch Patch) (*Provider, error)
	Delete(ctx context.Context, id string) error
}

type Request struct {
	Name        string
	Category    string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Notes       string
}

type Patch struct {
	Name        *string
	Category    *string
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	Notes       *string
}

type ListRequest struct {
	pagination.Page
	Q        string
	Category string
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrNotFound     = errors.New("not_found")
)
