package calculator

import (
	"errors"
	"fmt"

	"CaptionComposer/internal/model"
)

// ErrInsufficientData is returned when a series is too short for the requested lookback.
var ErrInsufficientData = errors.New("insufficient data")

// CalculateRSI computes RSI over the trailing period using a simple rolling
// mean of gains and losses (not Wilder smoothing). Requires period+1 closes.
// A window with no losses returns 100, including a flat one.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("rsi(%d) needs %d closes, got %d: %w", period, period+1, len(closes), ErrInsufficientData)
	}

	deltas := make([]float64, 0, period)
	for i := len(closes) - period; i < len(closes); i++ {
		deltas = append(deltas, closes[i]-closes[i-1])
	}

	gains := make([]float64, period)
	losses := make([]float64, period)
	for i, d := range deltas {
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}
	avgGain, _ := CalculateSMA(gains, period)
	avgLoss, _ := CalculateSMA(losses, period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// CalculateBarsRSI computes RSI over the closes of the given bars.
func CalculateBarsRSI(bars []model.OHLCV, period int) (float64, error) {
	return CalculateRSI(extractCloses(bars), period)
}
