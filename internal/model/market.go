package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// QuoteMeta is the analyst and calendar metadata published alongside a quote.
type QuoteMeta struct {
	Name            string
	ConsensusRating string
	TargetPrice     *float64
	NumAnalysts     int
	EarningsDate    *time.Time
}
