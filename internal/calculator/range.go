package calculator

import (
	"errors"
	"math"
	"time"

	"CaptionComposer/internal/model"
)

// Pivot holds classic floor-trader pivot levels.
type Pivot struct {
	Pivot       float64
	Resistance1 float64
	Support1    float64
}

// RecentRange returns the highest high and lowest low over the last n bars.
func RecentRange(bars []model.OHLCV, n int) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	start := len(bars) - n
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}

// CalculatePivot derives the pivot with its first resistance and support.
func CalculatePivot(high, low, price float64) Pivot {
	p := (high + low + price) / 3
	return Pivot{
		Pivot:       p,
		Resistance1: 2*p - low,
		Support1:    2*p - high,
	}
}

// DaysUntil returns whole days from now until t, floored, so a date earlier today is -1.
func DaysUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}
