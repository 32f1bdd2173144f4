package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type Service interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	ListPayments(ctx context.Context, req ListPaymentsRequest) (pagination.Result[Payment], error)
	UpdatePayment(ctx context.Context, id string, patch PaymentPatch) (*Payment, error)
	// DeletePayment removes the logs of the payment and then the payment in
	// one transaction.
	DeletePayment(ctx context.Context, id string) error

	ListLogs(ctx context.Context, paymentID string) ([]Log, error)
	CreateLog(ctx context.Context, paymentID string, req LogRequest) (*Log, error)
	DeleteLog(ctx context.Context, paymentID, logID string) error

	ListBookingPayments(ctx context.Context, bookingID string) (*BookingPaymentSummary, error)
	CreateBookingPayment(ctx context.Context, bookingID string, req BookingPaymentRequest) (*BookingPayment, error)
}

type PaymentRequest struct {
	Name        string
	Description string
	Kind        Kind
	Frequency   Frequency
	Direction   Direction
	Amount      decimal.Decimal
	StartDate   time.Time
	EndDate     *time.Time
}

// PaymentPatch sets the non-nil fields. ClearEndDate removes the end date.
type PaymentPatch struct {
	Name         *string
	Description  *string
	Kind         *Kind
	Frequency    *Frequency
	Direction    *Direction
	Amount       *decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
}

type ListPaymentsRequest struct {
	pagination.Page
	Q         string
	Kind      Kind
	Direction Direction
}

type LogRequest struct {
	Amount    decimal.Decimal
	PaidAt    time.Time
	Type      LogType
	Mode      Mode
	Reference string
	Notes     string
}

type BookingPaymentRequest struct {
	Type   BookingPaymentType
	Amount decimal.Decimal
	Mode   Mode
	PaidAt time.Time
	Notes  string
	// Images are data URLs or base64 strings.
	Images []string
}

type BookingPaymentSummary struct {
	Items    []BookingPayment `json:"items"`
	Total    decimal.Decimal  `json:"total"`
	Paid     decimal.Decimal  `json:"paid"`
	Refunded decimal.Decimal  `json:"refunded"`
	Balance  decimal.Decimal  `json:"balance"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidKind        = errors.New("invalid_kind")
	ErrInvalidFrequency   = errors.New("invalid_frequency")
	ErrInvalidDirection   = errors.New("invalid_direction")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidStartDate   = errors.New("invalid_start_date")
	ErrInvalidDateRange   = errors.New("invalid_date_range")
	ErrInvalidLogType     = errors.New("invalid_log_type")
	ErrInvalidMode        = errors.New("invalid_mode")
	ErrInvalidPaymentType = errors.New("invalid_payment_type")
	ErrMissingProof       = errors.New("missing_proof")
	ErrNotFound           = errors.New("not_found")
	ErrBookingNotFound    = errors.New("booking_not_found")
)
