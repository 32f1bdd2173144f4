package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

// Catalog manages the bookable services.
type Catalog interface {
	Create(ctx context.Context, req CreateRequest) (*Service, error)
	Get(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, req ListRequest) (pagination.Result[Service], error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Service, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name         string
	Description  string
	AllowOverlap bool
	Variants     []Variant
}

// UpdateRequest applies only the fields that are set. Restore clears the
// soft-delete marker.
type UpdateRequest struct {
	Name         *string
	Description  *string
	AllowOverlap *bool
	Variants     *[]Variant
	Restore      bool
}

type ListRequest struct {
	pagination.Page
	Q              string
	IncludeDeleted bool
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidVariants  = errors.New("invalid_variants")
	ErrInvalidPriceType = errors.New("invalid_price_type")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrNotFound         = errors.New("not_found")
)
