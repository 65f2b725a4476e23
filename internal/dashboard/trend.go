package dashboard

import (
	"fmt"
	"math"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Trend is a signed, rounded percentage change between two periods.
type Trend struct {
	Value     string
	Direction Direction
}

// CalculateTrend compares current against previous. A zero previous value
// reports "0%" when current is also zero and "+100%" otherwise.
func CalculateTrend(current, previous float64) Trend {
	if previous == 0 && current == 0 {
		return Trend{Value: "0%", Direction: Up}
	}

	if previous == 0 {
		return Trend{Value: "+100%", Direction: Up}
	}

	delta := (current - previous) / previous * 100
	rounded := math.Abs(roundHalfUp(delta))

	if delta >= 0 {
		return Trend{Value: fmt.Sprintf("+%.0f%%", rounded), Direction: Up}
	}

	return Trend{Value: fmt.Sprintf("-%.0f%%", rounded), Direction: Down}
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}
