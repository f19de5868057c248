package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CaptionComposer/internal/calculator"
	"CaptionComposer/internal/model"
	"CaptionComposer/internal/strategy"

	"github.com/rs/zerolog/log"
)

const (
	rsiPeriod = 14
	atrWindow = 20
	atrPeriod = 14
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Meta      *model.QuoteMeta
	BarsErr   error
	MetaErr   error
	Calls     int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.OHLCV, error) {
	m.Calls++
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchQuoteMeta(_ context.Context, _ string) (*model.QuoteMeta, error) {
	if m.MetaErr != nil {
		return nil, m.MetaErr
	}
	if m.Meta != nil {
		return m.Meta, nil
	}
	return &model.QuoteMeta{ConsensusRating: "hold"}, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Result is the outcome of a collection. The snapshot is always present; Cause
// carries the live-path error when the snapshot was synthesized.
type Result struct {
	Snapshot *model.Snapshot
	Cause    error
}

// Live reports whether the snapshot came from the provider.
func (r *Result) Live() bool {
	return r.Snapshot.DataSource == model.SourceLive
}

// Collector fetches market data and turns it into a snapshot, degrading to
// synthetic data when the live path fails.
type Collector struct {
	Fetcher         Fetcher
	Timeout         time.Duration
	LookbackDays    int
	SimulateUnknown bool
	Now             func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, timeout time.Duration, lookbackDays int, simulateUnknown bool) *Collector {
	return &Collector{
		Fetcher:         fetcher,
		Timeout:         timeout,
		LookbackDays:    lookbackDays,
		SimulateUnknown: simulateUnknown,
		Now:             time.Now,
	}
}

// Collect fetches and computes a snapshot for ticker. It returns an error only
// when ctx is cancelled by the caller, or when the provider reports an unknown
// ticker and SimulateUnknown is off. Every other failure yields a simulated snapshot.
func (c *Collector) Collect(ctx context.Context, ticker string) (*Result, error) {
	fetchCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	snap, err := c.collectLive(fetchCtx, ticker)
	if err == nil {
		return &Result{Snapshot: snap}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if errors.Is(err, ErrTickerNotFound) && !c.SimulateUnknown {
		return nil, err
	}

	reason := fallbackReason(err)
	log.Warn().Err(err).
		Str("ticker", ticker).
		Str("source", c.Fetcher.Name()).
		Str("reason", string(reason)).
		Msg("live fetch failed, using simulated data")

	snap = Synthesize(ticker, c.Now())
	snap.FallbackReason = reason
	return &Result{Snapshot: snap, Cause: err}, nil
}

func fallbackReason(err error) model.FallbackReason {
	switch {
	case errors.Is(err, calculator.ErrInsufficientData):
		return model.ReasonInsufficientData
	case errors.Is(err, ErrEmptySeries):
		return model.ReasonEmptySeries
	default:
		return model.ReasonFetchError
	}
}

func (c *Collector) collectLive(ctx context.Context, ticker string) (*model.Snapshot, error) {
	meta, err := c.Fetcher.FetchQuoteMeta(ctx, ticker)
	if errors.Is(err, ErrTickerNotFound) {
		return nil, err
	}
	if err != nil {
		log.Debug().Err(err).Str("ticker", ticker).Msg("quote metadata unavailable")
		meta = &model.QuoteMeta{ConsensusRating: "N/A"}
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, c.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}

	rsi, err := calculator.CalculateBarsRSI(bars, rsiPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	atr, err := calculator.CalculateATR(bars, atrWindow, atrPeriod)
	if err != nil {
		return nil, fmt.Errorf("atr: %w", err)
	}

	price := bars[len(bars)-1].Close
	levels, err := strategy.CalculateLevels(bars, price, rsi)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}

	now := c.Now()
	snap := &model.Snapshot{
		Ticker:          ticker,
		Name:            meta.Name,
		Price:           calculator.Round2(price),
		RSI:             calculator.Round2(rsi),
		ATR:             calculator.Round2(atr),
		ConsensusRating: meta.ConsensusRating,
		NumAnalysts:     meta.NumAnalysts,
		EarningsDate:    meta.EarningsDate,
		Entry:           levels.Entry,
		Exit:            levels.Exit,
		Stop:            levels.Stop,
		UpsidePct:       levels.UpsidePct,
		DataSource:      model.SourceLive,
		AsOf:            now,
	}
	if meta.TargetPrice != nil && *meta.TargetPrice > 0 {
		t := calculator.Round2(*meta.TargetPrice)
		snap.TargetPrice = &t
	}
	if meta.EarningsDate != nil {
		d := calculator.DaysUntil(*meta.EarningsDate, now)
		snap.DaysToEarnings = &d
	}
	return snap, nil
}
