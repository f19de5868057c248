package model

import "time"

// DataSource tells the caller whether a snapshot came from the provider or the synthetic generator.
type DataSource string

const (
	SourceLive      DataSource = "live"
	SourceSimulated DataSource = "simulated"
)

// FallbackReason explains why a snapshot was synthesized.
type FallbackReason string

const (
	ReasonNone             FallbackReason = ""
	ReasonFetchError       FallbackReason = "fetch_error"
	ReasonEmptySeries      FallbackReason = "empty_series"
	ReasonInsufficientData FallbackReason = "insufficient_data"
)

// Levels holds pivot-derived trading levels for one snapshot.
type Levels struct {
	Pivot       float64
	Resistance1 float64
	Support1    float64
	Entry       float64
	Exit        float64
	Stop        float64
	UpsidePct   float64
}

// Snapshot is the per-request view of a ticker: indicators, analyst data and levels.
// It is built once by the collector and never mutated afterwards.
type Snapshot struct {
	Ticker          string
	Name            string
	Price           float64
	RSI             float64
	ATR             float64
	ConsensusRating string
	TargetPrice     *float64
	NumAnalysts     int
	EarningsDate    *time.Time
	DaysToEarnings  *int
	Entry           float64
	Exit            float64
	Stop            float64
	UpsidePct       float64
	DataSource      DataSource
	FallbackReason  FallbackReason
	AsOf            time.Time
}

// Simulated reports whether the snapshot came from the synthetic generator.
func (s *Snapshot) Simulated() bool {
	return s.DataSource == SourceSimulated
}

// UpsideToTarget returns (target - price) / price in percent, or 0 without a target.
func (s *Snapshot) UpsideToTarget() float64 {
	if s.TargetPrice == nil || *s.TargetPrice == 0 || s.Price == 0 {
		return 0
	}
	return (*s.TargetPrice - s.Price) / s.Price * 100
}
