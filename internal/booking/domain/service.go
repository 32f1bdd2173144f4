package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	auditdomain "github.com/smallbiznis/hoteldesk/internal/audit/domain"
	catalogdomain "github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Get(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, req ListRequest) (pagination.Result[Booking], error)
	Update(ctx context.Context, id string, patch Patch) (*Booking, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, req AvailabilityRequest) (*Availability, error)
	Audit(ctx context.Context, id string, limit int) ([]auditdomain.Record, error)
}

// ItemInput is a requested line. UnitPrice falls back to the catalog price of
// the variant when omitted.
type ItemInput struct {
	ServiceID      snowflake.ID
	VariantName    string
	PriceType      pricing.PriceType
	UnitPrice      *decimal.Decimal
	Units          decimal.Decimal
	CustomPrice    decimal.Decimal
	DiscountAmount decimal.Decimal
}

type CreateRequest struct {
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	EventName      string
	Notes          string
	StartAt        time.Time
	EndAt          time.Time
	Status         Status
	Items          []ItemInput
	DiscountAmount decimal.Decimal
}

// Patch lists the fields a booking update may touch. Nil means untouched.
// Restore clears the soft-delete marker.
type Patch struct {
	CustomerName   *string
	CustomerPhone  *string
	CustomerEmail  *string
	EventName      *string
	Notes          *string
	Status         *Status
	StartAt        *time.Time
	EndAt          *time.Time
	Items          *[]ItemInput
	DiscountAmount *decimal.Decimal
	Restore        bool
}

type ListRequest struct {
	pagination.Page
	Q              string
	Status         Status
	From           *time.Time
	To             *time.Time
	IncludeDeleted bool
}

type AvailabilityRequest struct {
	StartAt time.Time
	EndAt   time.Time
	Q       string
}

type Availability struct {
	NonOverlapServices     []catalogdomain.Service `json:"nonOverlapServices"`
	OverlapAllowedServices []catalogdomain.Service `json:"overlapAllowedServices"`
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidCustomer      = errors.New("invalid_customer")
	ErrInvalidTimeRange     = errors.New("invalid_time_range")
	ErrInvalidItems         = errors.New("invalid_items")
	ErrInvalidService       = errors.New("invalid_service")
	ErrInvalidVariant       = errors.New("invalid_variant")
	ErrInvalidPriceType     = errors.New("invalid_price_type")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrNotFound             = errors.New("not_found")
	ErrServicesNotAvailable = errors.New("services_not_available")
)

// ConflictError names the services that are already booked in the range.
// It matches ErrServicesNotAvailable with errors.Is.
type ConflictError struct {
	ServiceIDs []snowflake.ID
}

func (e *ConflictError) Error() string {
	return ErrServicesNotAvailable.Error()
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrServicesNotAvailable
}
