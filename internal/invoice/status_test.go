package invoice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
)

func TestDisplay(t *testing.T) {
	type testCase struct {
		name     string
		status   invoice.Status
		dueDate  string
		now      string
		want     invoice.DisplayStatus
		wantTone invoice.Tone
	}

	tests := []testCase{
		{
			name:     "IssuedPastDue",
			status:   invoice.StatusIssued,
			dueDate:  "2026-01-01T00:00:00Z",
			now:      "2026-02-01T00:00:00Z",
			want:     invoice.DisplayOverdue,
			wantTone: invoice.ToneOverdue,
		},
		{
			name:     "IssuedBeforeDue",
			status:   invoice.StatusIssued,
			dueDate:  "2026-01-01T00:00:00Z",
			now:      "2025-12-01T00:00:00Z",
			want:     invoice.DisplayPending,
			wantTone: invoice.TonePending,
		},
		{
			name:     "IssuedDueExactlyNow",
			status:   invoice.StatusIssued,
			dueDate:  "2026-01-01T00:00:00Z",
			now:      "2026-01-01T00:00:00Z",
			want:     invoice.DisplayPending,
			wantTone: invoice.TonePending,
		},
		{
			name:     "IssuedInvalidDueDate",
			status:   invoice.StatusIssued,
			dueDate:  "not-a-date",
			now:      "2026-02-01T00:00:00Z",
			want:     invoice.DisplayPending,
			wantTone: invoice.TonePending,
		},
		{
			name:     "PaidPastDue",
			status:   invoice.StatusPaid,
			dueDate:  "2026-01-01T00:00:00Z",
			now:      "2026-02-01T00:00:00Z",
			want:     invoice.DisplayPaid,
			wantTone: invoice.TonePaid,
		},
		{
			name:     "Draft",
			status:   invoice.StatusDraft,
			dueDate:  "2026-01-01T00:00:00Z",
			now:      "2026-02-01T00:00:00Z",
			want:     invoice.DisplayDraft,
			wantTone: invoice.ToneDraft,
		},
		{
			name:     "VoidSharesDraftTone",
			status:   invoice.StatusVoid,
			dueDate:  "2026-01-01T00:00:00Z",
			now:      "2026-02-01T00:00:00Z",
			want:     invoice.DisplayVoid,
			wantTone: invoice.ToneDraft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := invoice.ParseDate(tt.now)
			require.True(t, invoice.ValidDate(now))

			got := invoice.Display(tt.status, invoice.ParseDate(tt.dueDate), now)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTone, got.Tone())
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := map[string]time.Time{
		"2026-01-01T00:00:00Z":          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		"2026-01-01T00:00:00.000+00:00": time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		"2026-03-15":                    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		"2026-03-15T10:30:00":           time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		"2026-01-01T02:00:00+02:00":     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		"":                              {},
		"not-a-date":                    {},
		"2026-13-45":                    {},
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.True(t, want.Equal(invoice.ParseDate(in)))
		})
	}
}

func TestTransitionPolicy(t *testing.T) {
	for _, from := range invoice.Statuses {
		for _, to := range invoice.Statuses {
			assert.True(t, invoice.Permissive{}.Allow(from, to), "%s -> %s", from, to)
		}
	}

	allowed := map[[2]invoice.Status]bool{
		{invoice.StatusDraft, invoice.StatusIssued}: true,
		{invoice.StatusDraft, invoice.StatusVoid}:   true,
		{invoice.StatusIssued, invoice.StatusPaid}:  true,
		{invoice.StatusIssued, invoice.StatusVoid}:  true,
		{invoice.StatusPaid, invoice.StatusVoid}:    true,
	}

	for _, from := range invoice.Statuses {
		for _, to := range invoice.Statuses {
			want := from == to || allowed[[2]invoice.Status{from, to}]
			assert.Equal(t, want, invoice.Strict{}.Allow(from, to), "%s -> %s", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	got, err := invoice.ParseStatus(" Paid ")
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, got)

	_, err = invoice.ParseStatus("overdue")
	assert.ErrorIs(t, err, invoice.ErrInvalidStatus)
}
