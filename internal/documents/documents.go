// Package documents assembles printable booking receipts and payment
// statements.
package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	bookingdomain "github.com/smallbiznis/hoteldesk/internal/booking/domain"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	companydomain "github.com/smallbiznis/hoteldesk/internal/company/domain"
	paymentdomain "github.com/smallbiznis/hoteldesk/internal/payment/domain"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"github.com/smallbiznis/hoteldesk/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	dateLayout     = "02 Jan 2006"
	dateTimeLayout = "02 Jan 2006 15:04"
)

// LogoResolver maps a stored logo URL to a local file.
type LogoResolver interface {
	LocalPath(url string) (string, bool)
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Bookings bookingdomain.Service
	Payments paymentdomain.Service
	Company  companydomain.Service
	PDF      pdf.Provider
	Clock    clock.Clock
	Logos    LogoResolver `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	bookings bookingdomain.Service
	payments paymentdomain.Service
	company  companydomain.Service
	pdf      pdf.Provider
	clock    clock.Clock
	logos    LogoResolver
}

func NewService(p Params) *Service {
	return &Service{
		log:      p.Log.Named("documents.service"),
		bookings: p.Bookings,
		payments: p.Payments,
		company:  p.Company,
		pdf:      p.PDF,
		clock:    p.Clock,
		logos:    p.Logos,
	}
}

// BookingReceipt renders the receipt of one booking and returns the file name.
func (s *Service) BookingReceipt(ctx context.Context, bookingID string) ([]byte, string, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if booking.Deleted() {
		return nil, "", bookingdomain.ErrNotFound
	}
	summary, err := s.payments.ListBookingPayments(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	company, currency, err := s.letterhead(ctx)
	if err != nil {
		return nil, "", err
	}

	data := pdf.ReceiptData{
		Company:       company,
		BookingNumber: booking.ID.String(),
		IssuedAt:      s.clock.Now().Format(dateTimeLayout),
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		CustomerEmail: booking.CustomerEmail,
		EventName:     booking.EventName,
		Period:        booking.StartAt.Format(dateTimeLayout) + " - " + booking.EndAt.Format(dateTimeLayout),
		Status:        string(booking.Status),
		Subtotal:      FormatMoney(currency, booking.Subtotal),
		Discount:      FormatMoney(currency, booking.DiscountAmount),
		Total:         FormatMoney(currency, booking.Total),
		Paid:          FormatMoney(currency, summary.Paid),
		Refunded:      FormatMoney(currency, summary.Refunded),
		Balance:       FormatMoney(currency, summary.Balance),
	}
	for _, item := range booking.Items {
		data.Items = append(data.Items, receiptItem(currency, item))
	}
	for _, payment := range summary.Items {
		data.Payments = append(data.Payments, pdf.ReceiptPayment{
			Date:   payment.PaidAt.Format(dateLayout),
			Type:   string(payment.Type),
			Mode:   humanize(string(payment.Mode)),
			Amount: FormatMoney(currency, payment.Amount),
		})
	}

	out, err := s.pdf.BookingReceipt(ctx, data)
	if err != nil {
		s.log.Error("failed to render booking receipt", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, "", fmt.Errorf("render receipt: %w", err)
	}
	return out, fmt.Sprintf("receipt-%s.pdf", booking.ID), nil
}

// PaymentStatement renders every log of one payment definition.
func (s *Service) PaymentStatement(ctx context.Context, paymentID string) ([]byte, string, error) {
	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, "", err
	}
	logs, err := s.payments.ListLogs(ctx, paymentID)
	if err != nil {
		return nil, "", err
	}
	company, currency, err := s.letterhead(ctx)
	if err != nil {
		return nil, "", err
	}

	schedule := humanize(string(payment.Kind))
	if payment.Kind == paymentdomain.KindRecurring {
		schedule = humanize(string(payment.Frequency))
	}
	period := payment.StartDate.Format(dateLayout) + " - open"
	if payment.EndDate != nil {
		period = payment.StartDate.Format(dateLayout) + " - " + payment.EndDate.Format(dateLayout)
	}

	income, expense := decimal.Zero, decimal.Zero
	data := pdf.StatementData{
		Company:     company,
		PaymentName: payment.Name,
		Description: payment.Description,
		Schedule:    schedule,
		Direction:   string(payment.Direction),
		Amount:      FormatMoney(currency, payment.Amount),
		Period:      period,
		IssuedAt:    s.clock.Now().Format(dateTimeLayout),
	}
	for _, entry := range logs {
		switch entry.Type {
		case paymentdomain.LogTypeIncome:
			income = income.Add(entry.Amount)
		case paymentdomain.LogTypeExpense:
			expense = expense.Add(entry.Amount)
		}
		data.Lines = append(data.Lines, pdf.StatementLine{
			Date:      entry.PaidAt.Format(dateLayout),
			Type:      string(entry.Type),
			Mode:      humanize(string(entry.Mode)),
			Reference: entry.Reference,
			Amount:    FormatMoney(currency, entry.Amount),
		})
	}
	data.TotalIncome = FormatMoney(currency, income)
	data.TotalExpense = FormatMoney(currency, expense)
	data.Net = FormatMoney(currency, income.Sub(expense))

	out, err := s.pdf.PaymentStatement(ctx, data)
	if err != nil {
		s.log.Error("failed to render payment statement", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, "", fmt.Errorf("render statement: %w", err)
	}
	return out, fmt.Sprintf("statement-%s.pdf", payment.ID), nil
}

func (s *Service) letterhead(ctx context.Context) (pdf.Company, string, error) {
	profile, err := s.company.Get(ctx)
	if err != nil {
		return pdf.Company{}, "", err
	}
	company := pdf.Company{
		Name:        profile.Name,
		LegalName:   profile.LegalName,
		Address:     profile.Address,
		Phone:       profile.Phone,
		Email:       profile.Email,
		TaxID:       profile.TaxID,
		BankDetails: profile.BankDetails,
	}
	if profile.LogoURL != "" && s.logos != nil {
		if path, ok := s.logos.LocalPath(profile.LogoURL); ok {
			company.LogoPath = path
		}
	}
	currency := profile.Currency
	if currency == "" {
		currency = companydomain.DefaultCurrency
	}
	return company, currency, nil
}

func receiptItem(currency string, item bookingdomain.Item) pdf.ReceiptItem {
	description := item.ServiceName
	if item.VariantName != "" {
		description += " / " + item.VariantName
	}
	quantity := "1"
	unitPrice := item.UnitPrice
	switch item.PriceType {
	case pricing.PriceTypePerUnit, pricing.PriceTypePerHour:
		quantity = item.Units.String()
	case pricing.PriceTypeCustom:
		unitPrice = item.CustomPrice
	}
	return pdf.ReceiptItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   FormatMoney(currency, unitPrice),
		Amount:      FormatMoney(currency, item.Total),
	}
}

// FormatMoney renders amount with two decimals and thousands separators,
// e.g. "IDR 1,250,000.00".
func FormatMoney(currency string, amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return strings.TrimSpace(currency + " " + sign + b.String() + "." + frac)
}

func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
