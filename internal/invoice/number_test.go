package invoice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
)

func TestNumberGenerator_Next(t *testing.T) {
	gen, err := invoice.NewNumberGenerator("INV-", 1)
	require.NoError(t, err)

	issued := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	first := gen.Next(issued)
	second := gen.Next(issued)

	assert.Regexp(t, `^INV-2026-\d{6}$`, first)
	assert.Regexp(t, `^INV-2026-\d{6}$`, second)
	assert.NotEqual(t, first, second)
}

func TestNewNumberGenerator_InvalidNode(t *testing.T) {
	_, err := invoice.NewNumberGenerator("INV-", -1)
	assert.Error(t, err)
}
