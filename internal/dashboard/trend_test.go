package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
)

func TestCalculateTrend(t *testing.T) {
	type testCase struct {
		name     string
		current  float64
		previous float64
		want     dashboard.Trend
	}

	tests := []testCase{
		{name: "BothZero", current: 0, previous: 0, want: dashboard.Trend{Value: "0%", Direction: dashboard.Up}},
		{name: "FromZero", current: 150, previous: 0, want: dashboard.Trend{Value: "+100%", Direction: dashboard.Up}},
		{name: "Halved", current: 50, previous: 100, want: dashboard.Trend{Value: "-50%", Direction: dashboard.Down}},
		{name: "Unchanged", current: 10, previous: 10, want: dashboard.Trend{Value: "+0%", Direction: dashboard.Up}},
		{name: "Growth", current: 300, previous: 80, want: dashboard.Trend{Value: "+275%", Direction: dashboard.Up}},
		{name: "RoundsUp", current: 1, previous: 3, want: dashboard.Trend{Value: "-67%", Direction: dashboard.Down}},
		{name: "ToZero", current: 0, previous: 40, want: dashboard.Trend{Value: "-100%", Direction: dashboard.Down}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.CalculateTrend(tt.current, tt.previous))
		})
	}
}
