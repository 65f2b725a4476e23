// Package money formats invoice amounts for display. Amounts are carried
// unrounded everywhere else; rounding to the currency's minor unit happens here.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrInvalidAmount = errors.New("invalid amount")

// defaultScale is used for codes that are not valid ISO 4217 currencies.
const defaultScale = 2

// symbols is deliberately narrower than browser Intl en-US output: currencies
// missing here (JPY, CHF, ...) print as a code prefix ("JPY 1,235", not "¥1,235"),
// and MXN shares the bare "$" instead of "MX$".
var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"MXN": "$",
	"COP": "$",
	"ARS": "$",
	"CLP": "$",
	"BRL": "R$",
	"PEN": "S/",
}

// Symbol returns the display symbol for code, or the upper-cased code when none is known.
func Symbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := symbols[code]; ok {
		return s
	}

	return code
}

// Scale returns the number of minor-unit digits used by code.
func Scale(code string) int {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return defaultScale
	}

	scale, _ := currency.Standard.Rounding(unit)

	return scale
}

// Round rounds amount half away from zero to the minor unit of code.
func Round(amount float64, code string) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(int32(Scale(code)))
}

// Format renders amount with the currency symbol and thousands grouping, e.g. "€1,234.50"
// or "-$20.00". Codes without a known symbol are written as a prefix: "CHF 10.00".
func Format(amount float64, code string) string {
	scale := Scale(code)
	d := Round(amount, code)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(int32(scale))
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder

	b.WriteString(sign)

	symbol := Symbol(code)
	b.WriteString(symbol)

	if _, known := symbols[strings.ToUpper(strings.TrimSpace(code))]; !known && symbol != "" {
		b.WriteByte(' ')
	}

	b.WriteString(group(intPart))

	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}

	return b.String()
}

// group inserts a comma every three digits from the right.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// Parse reads a user-typed amount such as "1.234,56", "1,234.56", "€ 99" or "12,5".
// When both separators appear the rightmost is the decimal one. A lone separator
// occurring once is decimal unless exactly three digits follow a non-zero integer
// part ("1,234" and "1.234" are 1234, "0,125" and "12,5" stay decimal); repeated
// it groups thousands.
func Parse(s string) (float64, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			return r
		}

		return -1
	}, s)

	dot, comma := strings.LastIndex(clean, "."), strings.LastIndex(clean, ",")

	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case comma >= 0 && strings.Count(clean, ",") == 1 && groupsThousands(clean, comma):
		clean = strings.Replace(clean, ",", "", 1)
	case comma >= 0 && strings.Count(clean, ",") == 1:
		clean = strings.Replace(clean, ",", ".", 1)
	case comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case dot >= 0 && strings.Count(clean, ".") == 1 && groupsThousands(clean, dot):
		clean = strings.Replace(clean, ".", "", 1)
	case dot >= 0 && strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d.InexactFloat64(), nil
}

// groupsThousands reports whether the single separator at i splits a thousands group.
func groupsThousands(clean string, i int) bool {
	intPart := strings.TrimPrefix(clean[:i], "-")
	if intPart == "" || strings.TrimLeft(intPart, "0") == "" {
		return false
	}

	frac := clean[i+1:]
	if len(frac) != 3 {
		return false
	}

	for _, r := range frac {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
