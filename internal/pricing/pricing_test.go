package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		name string
		line Line
		want string
	}{
		{"fixed", Line{Type: PriceTypeFixed, UnitPrice: d("1000"), Discount: d("100")}, "900"},
		{"fixed ignores units", Line{Type: PriceTypeFixed, UnitPrice: d("1000"), Units: d("5")}, "1000"},
		{"per unit", Line{Type: PriceTypePerUnit, UnitPrice: d("250"), Units: d("4"), Discount: d("50")}, "950"},
		{"per hour fractional", Line{Type: PriceTypePerHour, UnitPrice: d("100"), Units: d("1.5")}, "150"},
		{"per unit missing units", Line{Type: PriceTypePerUnit, UnitPrice: d("250")}, "0"},
		{"custom", Line{Type: PriceTypeCustom, CustomPrice: d("700"), Discount: d("200")}, "500"},
		{"unknown falls back to custom", Line{Type: "weird", UnitPrice: d("999"), CustomPrice: d("10")}, "10"},
		{"clamped at zero", Line{Type: PriceTypeFixed, UnitPrice: d("100"), Discount: d("150")}, "0"},
		{"all missing", Line{}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LineTotal(tc.line)
			assert.True(t, got.Equal(d(tc.want)), "got %s want %s", got, tc.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestTotals(t *testing.T) {
	subtotal, total := Totals([]decimal.Decimal{d("900"), d("150")}, d("50"))
	assert.True(t, subtotal.Equal(d("1050")))
	assert.True(t, total.Equal(d("1000")))

	subtotal, total = Totals(nil, d("10"))
	assert.True(t, subtotal.IsZero())
	assert.True(t, total.IsZero())

	_, total = Totals([]decimal.Decimal{d("100")}, d("500"))
	assert.True(t, total.IsZero())
}

func TestPriceTypeValid(t *testing.T) {
	assert.True(t, PriceTypePerHour.Valid())
	assert.False(t, PriceType("hourly").Valid())
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	raw, err := json.Marshal(map[string]decimal.Decimal{"total": d("900.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":900.5}`, string(raw))
}
