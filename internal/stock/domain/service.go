package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Stock, error)
	Get(ctx context.Context, id string) (*Stock, error)
	List(ctx context.Context, req ListRequest) (pagination.Result[Stock], error)
	Update(ctx context.Context, id string, patch Patch) (*Stock, error)
	Delete(ctx context.Context, id string) error
	// Adjust adds delta to the quantity and audits it with reason as note.
	Adjust(ctx context.Context, id string, req AdjustRequest) (*Stock, error)
	Audit(ctx context.Context, id string, limit int) ([]auditdomain.Record, error)
}

type CreateRequest struct {
	Name      string
	SKU       string
	Unit      string
	Quantity  decimal.Decimal
	Threshold decimal.Decimal
	Notes     string
}

type Patch struct {
	Name      *string
	SKU       *string
	Unit      *string
	Quantity  *decimal.Decimal
	Threshold *decimal.Decimal
	Notes     *string
}

type ListRequest struct {
	pagination.Page
	Q   string
	Low bool
}

type AdjustRequest struct {
	Delta  decimal.Decimal
	Reason string
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidThreshold = errors.New("invalid_threshold")
	ErrInvalidDelta     = errors.New("invalid_delta")
	ErrInvalidReason    = errors.New("invalid_reason")
	ErrNotFound         = errors.New("not_found")
)
