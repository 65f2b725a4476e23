package invoice

// LineItem is a single editable row of an invoice draft.
// Quantity, UnitPrice and TaxRate are taken as-is by the calculators; use
// NewLineItem at input boundaries to reject out-of-domain values.
type LineItem struct {
	ID          string
	Description string
	Quantity    float64
	UnitPrice   float64
	TaxRate     float64 // percentage, 0..100
}

// LineAmounts are the derived amounts of a single line item.
type LineAmounts struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeLine derives subtotal, tax and total for a line item.
// No rounding is applied; formatting is left to the money package.
func ComputeLine(item LineItem) LineAmounts {
	subtotal := item.Quantity * item.UnitPrice
	tax := subtotal * (item.TaxRate / 100)

	return LineAmounts{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// ComputeTotals folds line items into invoice totals. An empty slice yields zero totals.
func ComputeTotals(items []LineItem) Totals {
	var t Totals

	for _, item := range items {
		line := ComputeLine(item)
		t.Subtotal += line.Subtotal
		t.Tax += line.Tax
	}

	t.Total = t.Subtotal + t.Tax

	return t
}

// BuildLines computes the amounts for each item and assigns a 1-based order.
func BuildLines(items []LineItem) []Line {
	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{
			Order:   i + 1,
			Item:    item,
			Amounts: ComputeLine(item),
		}
	}

	return lines
}
