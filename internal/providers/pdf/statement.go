package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// StatementData lists every log recorded against one payment definition.
type StatementData struct {
	Company     Company
	PaymentName string
	Description string
	Schedule    string
	Direction   string
	Amount      string
	Period      string
	IssuedAt    string

	Lines        []StatementLine
	TotalIncome  string
	TotalExpense string
	Net          string
}

type StatementLine struct {
	Date      string
	Type      string
	Mode      string
	Reference string
	Amount    string
}

func (p *PDFProvider) PaymentStatement(ctx context.Context, data StatementData) ([]byte, error) {
	m := newDocument()
	letterhead(m, "Payment statement", data.Company)

	m.AddRow(24,
		col.New(12).Add(
			text.New(data.PaymentName, header),
			text.New(data.Description, props.Text{Size: 9, Top: 4}),
			text.New(data.Schedule+", "+data.Direction+", expected "+data.Amount, props.Text{Size: 9, Top: 8}),
			text.New("Period: "+data.Period, props.Text{Size: 9, Top: 12}),
			text.New("Issued: "+data.IssuedAt, props.Text{Size: 9, Top: 16}),
		),
	)

	m.AddRow(8,
		text.NewCol(3, "Date", header),
		text.NewCol(2, "Type", header),
		text.NewCol(2, "Mode", header),
		text.NewCol(3, "Reference", header),
		text.NewCol(2, "Amount", hRight),
	)
	if len(data.Lines) == 0 {
		m.AddRow(7, text.NewCol(12, "No transactions recorded.", small))
	}
	for _, line := range data.Lines {
		m.AddRow(7,
			text.NewCol(3, line.Date, small),
			text.NewCol(2, line.Type, small),
			text.NewCol(2, line.Mode, small),
			text.NewCol(3, line.Reference, small),
			text.NewCol(2, line.Amount, right),
		)
	}
	totalRow(m, "Income", data.TotalIncome, false)
	totalRow(m, "Expense", data.TotalExpense, false)
	totalRow(m, "Net", data.Net, true)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
