package documents

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	bookingdomain "github.com/smallbiznis/hoteldesk/internal/booking/domain"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	companydomain "github.com/smallbiznis/hoteldesk/internal/company/domain"
	paymentdomain "github.com/smallbiznis/hoteldesk/internal/payment/domain"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"github.com/smallbiznis/hoteldesk/internal/providers/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookings struct {
	bookingdomain.Service
	booking *bookingdomain.Booking
}

func (s stubBookings) Get(ctx context.Context, id string) (*bookingdomain.Booking, error) {
	if s.booking == nil {
		return nil, bookingdomain.ErrNotFound
	}
	return s.booking, nil
}

type stubPayments struct {
	paymentdomain.Service
	summary *paymentdomain.BookingPaymentSummary
	payment *paymentdomain.Payment
	logs    []paymentdomain.Log
}

func (s stubPayments) ListBookingPayments(ctx context.Context, bookingID string) (*paymentdomain.BookingPaymentSummary, error) {
	return s.summary, nil
}

func (s stubPayments) GetPayment(ctx context.Context, id string) (*paymentdomain.Payment, error) {
	return s.payment, nil
}

func (s stubPayments) ListLogs(ctx context.Context, paymentID string) ([]paymentdomain.Log, error) {
	return s.logs, nil
}

type stubCompany struct {
	companydomain.Service
	profile companydomain.Profile
}

func (s stubCompany) Get(ctx context.Context) (*companydomain.Profile, error) {
	p := s.profile
	return &p, nil
}

type capturePDF struct {
	receipt   pdf.ReceiptData
	statement pdf.StatementData
}

func (c *capturePDF) BookingReceipt(ctx context.Context, data pdf.ReceiptData) ([]byte, error) {
	c.receipt = data
	return []byte("%PDF-receipt"), nil
}

func (c *capturePDF) PaymentStatement(ctx context.Context, data pdf.StatementData) ([]byte, error) {
	c.statement = data
	return []byte("%PDF-statement"), nil
}

type stubLogos map[string]string

func (s stubLogos) LocalPath(url string) (string, bool) {
	p, ok := s[url]
	return p, ok
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatMoney(t *testing.T) {
	cases := map[string]struct {
		amount   decimal.Decimal
		currency string
		want     string
	}{
		"zero":      {decimal.Zero, "IDR", "IDR 0.00"},
		"hundreds":  {d("999.5"), "IDR", "IDR 999.50"},
		"thousands": {d("1500000"), "IDR", "IDR 1,500,000.00"},
		"negative":  {d("-12345.678"), "USD", "USD -12,345.68"},
		"no code":   {d("1000"), "", "1,000.00"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatMoney(tc.currency, tc.amount))
		})
	}
}

func TestBookingReceipt(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	booking := &bookingdomain.Booking{
		ID:           snowflake.ID(42),
		CustomerName: "Dewi",
		EventName:    "Wedding",
		StartAt:      now.Add(24 * time.Hour),
		EndAt:        now.Add(30 * time.Hour),
		Status:       bookingdomain.StatusConfirmed,
		Items: []bookingdomain.Item{
			{ServiceName: "Ballroom", VariantName: "Full day", PriceType: pricing.PriceTypeFixed, UnitPrice: d("1000000"), Total: d("1000000")},
			{ServiceName: "Chairs", PriceType: pricing.PriceTypePerUnit, UnitPrice: d("5000"), Units: d("100"), Total: d("500000")},
		},
		Subtotal: d("1500000"),
		Total:    d("1500000"),
	}
	summary := &paymentdomain.BookingPaymentSummary{
		Items: []paymentdomain.BookingPayment{
			{Type: paymentdomain.BookingPaymentReceipt, Mode: paymentdomain.ModeBankTransfer, Amount: d("500000"), PaidAt: now},
		},
		Total:    d("1500000"),
		Paid:     d("500000"),
		Refunded: decimal.Zero,
		Balance:  d("1000000"),
	}
	renderer := &capturePDF{}
	svc := NewService(Params{
		Log:      zap.NewNop(),
		Bookings: stubBookings{booking: booking},
		Payments: stubPayments{summary: summary},
		Company:  stubCompany{profile: companydomain.Profile{Name: "Grand Hotel", LogoURL: "/uploads/company/logo.jpg"}},
		PDF:      renderer,
		Clock:    clock.NewFakeClock(now),
		Logos:    stubLogos{"/uploads/company/logo.jpg": "/data/company/logo.jpg"},
	})

	out, name, err := svc.BookingReceipt(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-receipt", string(out))
	assert.Equal(t, "receipt-42.pdf", name)

	data := renderer.receipt
	assert.Equal(t, "/data/company/logo.jpg", data.Company.LogoPath)
	assert.Equal(t, "IDR 1,500,000.00", data.Total)
	assert.Equal(t, "IDR 1,000,000.00", data.Balance)
	require.Len(t, data.Items, 2)
	assert.Equal(t, "Ballroom / Full day", data.Items[0].Description)
	assert.Equal(t, "1", data.Items[0].Quantity)
	assert.Equal(t, "100", data.Items[1].Quantity)
	assert.Equal(t, "IDR 5,000.00", data.Items[1].UnitPrice)
	require.Len(t, data.Payments, 1)
	assert.Equal(t, "bank transfer", data.Payments[0].Mode)
}

func TestBookingReceiptRejectsDeletedBooking(t *testing.T) {
	deletedAt := time.Now()
	svc := NewService(Params{
		Log:      zap.NewNop(),
		Bookings: stubBookings{booking: &bookingdomain.Booking{ID: 7, DeletedAt: &deletedAt}},
		PDF:      &capturePDF{},
		Clock:    clock.NewFakeClock(deletedAt),
	})

	_, _, err := svc.BookingReceipt(context.Background(), "7")
	assert.ErrorIs(t, err, bookingdomain.ErrNotFound)
}

func TestPaymentStatement(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	payment := &paymentdomain.Payment{
		ID:        snowflake.ID(9),
		Name:      "Electricity",
		Kind:      paymentdomain.KindRecurring,
		Frequency: paymentdomain.FrequencyMonthly,
		Direction: paymentdomain.DirectionSent,
		Amount:    d("2000000"),
		StartDate: now,
	}
	logs := []paymentdomain.Log{
		{Type: paymentdomain.LogTypeExpense, Mode: paymentdomain.ModeCash, Amount: d("2000000"), PaidAt: now},
		{Type: paymentdomain.LogTypeIncome, Mode: paymentdomain.ModeCash, Amount: d("250000"), PaidAt: now},
	}
	renderer := &capturePDF{}
	svc := NewService(Params{
		Log:      zap.NewNop(),
		Payments: stubPayments{payment: payment, logs: logs},
		Company:  stubCompany{profile: companydomain.Profile{Name: "Grand Hotel", Currency: "USD"}},
		PDF:      renderer,
		Clock:    clock.NewFakeClock(now),
	})

	_, name, err := svc.PaymentStatement(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "statement-9.pdf", name)

	data := renderer.statement
	assert.Equal(t, "monthly", data.Schedule)
	assert.Contains(t, data.Period, "open")
	assert.Equal(t, "USD 250,000.00", data.TotalIncome)
	assert.Equal(t, "USD 2,000,000.00", data.TotalExpense)
	assert.Equal(t, "USD -1,750,000.00", data.Net)
	assert.Len(t, data.Lines, 2)
}
