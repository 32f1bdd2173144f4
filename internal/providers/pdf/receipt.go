package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReceiptData is a booking with its line items and payments, already
// formatted for print.
type ReceiptData struct {
	Company       Company
	BookingNumber string
	IssuedAt      string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	EventName     string
	Period        string
	Status        string

	Items    []ReceiptItem
	Subtotal string
	Discount string
	Total    string

	Payments []ReceiptPayment
	Paid     string
	Refunded string
	Balance  string
}

type ReceiptItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

type ReceiptPayment struct {
	Date   string
	Type   string
	Mode   string
	Amount string
}

func (p *PDFProvider) BookingReceipt(ctx context.Context, data ReceiptData) ([]byte, error) {
	m := newDocument()
	letterhead(m, "Booking receipt", data.Company)

	m.AddRow(28,
		col.New(6).Add(
			text.New("Booking: "+data.BookingNumber, props.Text{Size: 9}),
			text.New("Issued: "+data.IssuedAt, props.Text{Size: 9, Top: 4}),
			text.New("Status: "+data.Status, props.Text{Size: 9, Top: 8}),
			text.New("Event: "+data.EventName, props.Text{Size: 9, Top: 12}),
			text.New("Period: "+data.Period, props.Text{Size: 9, Top: 16}),
		),
		col.New(6).Add(
			text.New("Billed to", header),
			text.New(data.CustomerName, props.Text{Size: 9, Top: 4}),
			text.New(data.CustomerPhone, props.Text{Size: 9, Top: 8}),
			text.New(data.CustomerEmail, props.Text{Size: 9, Top: 12}),
		),
	)

	m.AddRow(8,
		text.NewCol(6, "Description", header),
		text.NewCol(2, "Qty", hRight),
		text.NewCol(2, "Unit price", hRight),
		text.NewCol(2, "Amount", hRight),
	)
	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(6, item.Description, small),
			text.NewCol(2, item.Quantity, right),
			text.NewCol(2, item.UnitPrice, right),
			text.NewCol(2, item.Amount, right),
		)
	}
	totalRow(m, "Subtotal", data.Subtotal, false)
	totalRow(m, "Discount", data.Discount, false)
	totalRow(m, "Total", data.Total, true)

	if len(data.Payments) > 0 {
		m.AddRow(10, text.NewCol(12, "Payments", props.Text{Size: 11, Top: 3, Style: header.Style}))
		m.AddRow(8,
			text.NewCol(4, "Date", header),
			text.NewCol(3, "Type", header),
			text.NewCol(3, "Mode", header),
			text.NewCol(2, "Amount", hRight),
		)
		for _, payment := range data.Payments {
			m.AddRow(7,
				text.NewCol(4, payment.Date, small),
				text.NewCol(3, payment.Type, small),
				text.NewCol(3, payment.Mode, small),
				text.NewCol(2, payment.Amount, right),
			)
		}
	}
	totalRow(m, "Paid", data.Paid, false)
	totalRow(m, "Refunded", data.Refunded, false)
	totalRow(m, "Balance due", data.Balance, true)

	if data.Company.BankDetails != "" {
		m.AddRow(20, text.NewCol(12, data.Company.BankDetails, props.Text{Size: 9, Top: 5}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
