package pdf

import (
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	small  = props.Text{Size: 9}
	right  = props.Text{Size: 9, Align: align.Right}
	header = props.Text{Size: 9, Style: fontstyle.Bold}
	hRight = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
)

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

// letterhead prints the title next to the company logo and the company
// contact block below it.
func letterhead(m core.Maroto, title string, company Company) {
	titleCol := text.NewCol(8, title, props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Left})
	if company.LogoPath != "" && fileExists(company.LogoPath) {
		m.AddRow(30, titleCol, image.NewFromFileCol(4, company.LogoPath, props.Rect{Percent: 80}))
	} else {
		m.AddRow(20, titleCol, col.New(4))
	}

	block := col.New(12).Add(text.New(company.Name, props.Text{Style: fontstyle.Bold}))
	top := 5.0
	for _, line := range []string{company.LegalName, company.Address, company.Phone, company.Email, taxLine(company.TaxID)} {
		if line == "" {
			continue
		}
		block.Add(text.New(line, props.Text{Top: top, Size: 9}))
		top += 4
	}
	m.AddRow(top+5, block)
}

func totalRow(m core.Maroto, label, value string, bold bool) {
	style := small
	valueStyle := right
	if bold {
		style = header
		valueStyle = hRight
	}
	m.AddRow(7,
		col.New(7),
		text.NewCol(3, label, style),
		text.NewCol(2, value, valueStyle),
	)
}

func taxLine(taxID string) string {
	if taxID == "" {
		return ""
	}
	return "Tax ID: " + taxID
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
