package strategy

import (
	"fmt"
	"math"

	"CaptionComposer/internal/calculator"
	"CaptionComposer/internal/model"
)

// LevelWindow is the number of recent bars the pivot is computed over.
const LevelWindow = 20

const cent = 0.01

// levelBucket maps an RSI ceiling to entry/exit/stop rules. Exit and stop take
// the larger of a pivot level and a fixed percentage move.
type levelBucket struct {
	MaxRSI float64
	Entry  float64
	Exit   func(p calculator.Pivot, price float64) float64
	Stop   func(p calculator.Pivot, price float64) float64
}

var levelBuckets = []levelBucket{
	{
		MaxRSI: 30,
		Entry:  0.99,
		Exit:   func(p calculator.Pivot, price float64) float64 { return math.Max(p.Resistance1, price*1.08) },
		Stop:   func(p calculator.Pivot, price float64) float64 { return math.Max(p.Support1, price*0.94) },
	},
	{
		MaxRSI: 50,
		Entry:  0.97,
		Exit:   func(p calculator.Pivot, price float64) float64 { return math.Max(p.Pivot, price*1.06) },
		Stop:   func(p calculator.Pivot, price float64) float64 { return math.Max(p.Support1, price*0.93) },
	},
	{
		MaxRSI: 70,
		Entry:  1.01,
		Exit:   func(p calculator.Pivot, price float64) float64 { return math.Max(p.Resistance1, price*1.10) },
		Stop:   func(p calculator.Pivot, price float64) float64 { return math.Max(p.Pivot, price*0.95) },
	},
}

// overboughtBucket applies at RSI >= 70 and ignores the pivot.
var overboughtBucket = levelBucket{
	MaxRSI: math.Inf(1),
	Entry:  0.95,
	Exit:   func(_ calculator.Pivot, price float64) float64 { return price * 1.03 },
	Stop:   func(_ calculator.Pivot, price float64) float64 { return price * 0.92 },
}

func mapBucket(rsi float64) levelBucket {
	for _, b := range levelBuckets {
		if rsi < b.MaxRSI {
			return b
		}
	}
	return overboughtBucket
}

// CalculateLevels derives entry, exit and stop from the last 20 bars, the
// current price and RSI. Levels are rounded to cents before the repair, so the
// result satisfies Stop < Entry < Exit for any price of at least one cent.
func CalculateLevels(bars []model.OHLCV, price, rsi float64) (model.Levels, error) {
	high, low, err := calculator.RecentRange(bars, LevelWindow)
	if err != nil {
		return model.Levels{}, fmt.Errorf("recent range: %w", err)
	}
	pivot := calculator.CalculatePivot(high, low, price)

	b := mapBucket(rsi)
	entry := math.Max(calculator.Round2(price*b.Entry), cent)
	exit := calculator.Round2(b.Exit(pivot, price))
	stop := calculator.Round2(b.Stop(pivot, price))
	entry, exit, stop = repairLevels(entry, exit, stop)

	return model.Levels{
		Pivot:       calculator.Round2(pivot.Pivot),
		Resistance1: calculator.Round2(pivot.Resistance1),
		Support1:    calculator.Round2(pivot.Support1),
		Entry:       entry,
		Exit:        exit,
		Stop:        stop,
		UpsidePct:   calculator.Round2((exit - entry) / entry * 100),
	}, nil
}

// repairLevels forces stop below entry and exit above entry on cent-rounded
// levels. When the percentage move rounds back onto entry, it steps one cent.
func repairLevels(entry, exit, stop float64) (float64, float64, float64) {
	if stop >= entry {
		stop = calculator.Round2(entry * 0.93)
		if stop >= entry {
			stop = calculator.Round2(entry - cent)
		}
	}
	if exit <= entry {
		exit = calculator.Round2(entry * 1.05)
		if exit <= entry {
			exit = calculator.Round2(entry + cent)
		}
	}
	return entry, exit, stop
}
