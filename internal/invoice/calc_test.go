package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
)

func TestComputeLine(t *testing.T) {
	type testCase struct {
		name string
		item invoice.LineItem
		want invoice.LineAmounts
	}

	tests := []testCase{
		{
			name: "WithTax",
			item: invoice.LineItem{Quantity: 2, UnitPrice: 100, TaxRate: 21},
			want: invoice.LineAmounts{Subtotal: 200, Tax: 42, Total: 242},
		},
		{
			name: "NoTax",
			item: invoice.LineItem{Quantity: 3, UnitPrice: 12.5},
			want: invoice.LineAmounts{Subtotal: 37.5, Tax: 0, Total: 37.5},
		},
		{
			name: "ZeroQuantity",
			item: invoice.LineItem{Quantity: 0, UnitPrice: 99, TaxRate: 21},
			want: invoice.LineAmounts{},
		},
		{
			name: "ZeroPrice",
			item: invoice.LineItem{Quantity: 5, UnitPrice: 0, TaxRate: 10},
			want: invoice.LineAmounts{},
		},
		{
			name: "FullTax",
			item: invoice.LineItem{Quantity: 1, UnitPrice: 50, TaxRate: 100},
			want: invoice.LineAmounts{Subtotal: 50, Tax: 50, Total: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.ComputeLine(tt.item)

			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.Tax, got.Tax, 1e-9)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
			assert.GreaterOrEqual(t, got.Total, got.Subtotal)
		})
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	assert.Equal(t, invoice.Totals{}, invoice.ComputeTotals(nil))
	assert.Equal(t, invoice.Totals{}, invoice.ComputeTotals([]invoice.LineItem{}))
}

func TestComputeTotals_Additive(t *testing.T) {
	items := []invoice.LineItem{
		{Quantity: 2, UnitPrice: 100, TaxRate: 21},
		{Quantity: 1, UnitPrice: 19.99, TaxRate: 10},
		{Quantity: 7, UnitPrice: 3.3, TaxRate: 0},
		{Quantity: 4, UnitPrice: 250, TaxRate: 4},
	}

	whole := invoice.ComputeTotals(items)

	for k := 0; k <= len(items); k++ {
		split := invoice.ComputeTotals(items[:k]).Add(invoice.ComputeTotals(items[k:]))

		assert.InDelta(t, whole.Subtotal, split.Subtotal, 1e-9)
		assert.InDelta(t, whole.Tax, split.Tax, 1e-9)
		assert.InDelta(t, whole.Total, split.Total, 1e-9)
	}

	reversed := make([]invoice.LineItem, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}

	got := invoice.ComputeTotals(reversed)
	assert.InDelta(t, whole.Total, got.Total, 1e-9)
	assert.InDelta(t, whole.Subtotal+whole.Tax, whole.Total, 1e-9)
}

func TestBuildLines(t *testing.T) {
	lines := invoice.BuildLines([]invoice.LineItem{
		{Description: "Design", Quantity: 2, UnitPrice: 100, TaxRate: 21},
		{Description: "Hosting", Quantity: 1, UnitPrice: 10},
	})

	assert.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Order)
	assert.Equal(t, 2, lines[1].Order)
	assert.InDelta(t, 242, lines[0].Amounts.Total, 1e-9)
	assert.Equal(t, "Hosting", lines[1].Item.Description)
}
