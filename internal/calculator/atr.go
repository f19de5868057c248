package calculator

import (
	"errors"
	"fmt"
	"math"

	"CaptionComposer/internal/model"
)

// TrueRanges returns the true range of every bar in bars. The first bar has no
// previous close and uses its high-low span.
func TrueRanges(bars []model.OHLCV) []float64 {
	trs := make([]float64, len(bars))
	for i, b := range bars {
		tr := b.High - b.Low
		if i > 0 {
			prev := bars[i-1].Close
			tr = math.Max(tr, math.Max(math.Abs(b.High-prev), math.Abs(b.Low-prev)))
		}
		trs[i] = tr
	}
	return trs
}

// CalculateATR averages the true range of the last period bars within the
// trailing window. Requires period+1 bars so every averaged bar has a previous close.
func CalculateATR(bars []model.OHLCV, window, period int) (float64, error) {
	if period <= 0 || window < period {
		return 0, errors.New("window must cover a positive period")
	}
	if len(bars) < period+1 {
		return 0, fmt.Errorf("atr(%d) needs %d bars, got %d: %w", period, period+1, len(bars), ErrInsufficientData)
	}
	start := len(bars) - window
	if start < 0 {
		start = 0
	}
	return CalculateSMA(TrueRanges(bars[start:]), period)
}
