// Package pdf renders printable hotel documents with maroto.
package pdf

import "context"

type Provider interface {
	BookingReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
	PaymentStatement(ctx context.Context, data StatementData) ([]byte, error)
}

// Company is the letterhead printed on every document.
type Company struct {
	Name        string
	LegalName   string
	Address     string
	Phone       string
	Email       string
	TaxID       string
	BankDetails string
	// LogoPath is a local image file; empty prints no logo.
	LogoPath string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}
