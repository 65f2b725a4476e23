package locale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/billkerfy/internal/locale"
)

func TestMatch(t *testing.T) {
	tests := map[string]string{
		"en":                "Aug",
		"es":                "Ago",
		"es-ES":             "Ago",
		"es-MX":             "Ago",
		"en-GB,en;q=0.8":    "Aug",
		"fr":                "Aug",
		"":                  "Aug",
		"es-AR,en-US;q=0.5": "Ago",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, locale.Match(in).Month(time.August))
		})
	}
}

func TestLabels_CustomerSince(t *testing.T) {
	en := locale.Match("en")
	es := locale.Match("es")

	assert.Equal(t, "Customer since Jan 26", en.CustomerSince(time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Cliente desde Sept 05", es.CustomerSince(time.Date(2005, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "No invoices", en.CustomerSince(time.Time{}))
	assert.Equal(t, "Sin facturas", es.CustomerSince(time.Time{}))
	assert.Empty(t, en.Month(0))
}
