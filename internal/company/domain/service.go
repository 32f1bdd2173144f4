package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Get returns the stored profile, or an unsaved default when none exists.
	Get(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, req UpdateRequest) (*Profile, error)
	UploadLogo(ctx context.Context, encoded string) (*Profile, error)
	// EnsureDefault stores the default profile if the table is empty.
	EnsureDefault(ctx context.Context, name string) error
}

type UpdateRequest struct {
	Name        string
	LegalName   string
	Address     string
	Phone       string
	Email       string
	TaxID       string
	Currency    string
	BankDetails string
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidCurrency = errors.New("invalid_currency")
)
