package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingReceiptRendersPDF(t *testing.T) {
	out, err := New().BookingReceipt(context.Background(), ReceiptData{
		Company:       Company{Name: "Hotel Kencana", Address: "Jl. Raya 1", LogoPath: "/does/not/exist.png"},
		BookingNumber: "1745",
		CustomerName:  "Ayu",
		Items:         []ReceiptItem{{Description: "Ballroom / Full day", Quantity: "1", UnitPrice: "IDR 1,000.00", Amount: "IDR 900.00"}},
		Subtotal:      "IDR 1,000.00",
		Discount:      "IDR 100.00",
		Total:         "IDR 900.00",
		Payments:      []ReceiptPayment{{Date: "2024-01-05", Type: "receipt", Mode: "cash", Amount: "IDR 500.00"}},
		Paid:          "IDR 500.00",
		Refunded:      "IDR 0.00",
		Balance:       "IDR 400.00",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPaymentStatementWithoutLines(t *testing.T) {
	out, err := New().PaymentStatement(context.Background(), StatementData{
		Company:     Company{Name: "Hotel Kencana"},
		PaymentName: "Hall rent",
		Schedule:    "monthly",
		Direction:   "sent",
		Amount:      "IDR 2,500,000.00",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
