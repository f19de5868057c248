package collector

import (
	"context"
	"errors"

	"CaptionComposer/internal/model"
)

var (
	// ErrTickerNotFound is returned when the provider reports that the symbol does not exist.
	ErrTickerNotFound = errors.New("ticker not found")
	// ErrEmptySeries is returned when the provider answers with no bars.
	ErrEmptySeries = errors.New("empty price series")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	FetchQuoteMeta(ctx context.Context, symbol string) (*model.QuoteMeta, error)
	Name() string
}

// runBlocking runs fn on its own goroutine so that a call without context
// support still returns as soon as ctx is done.
func runBlocking[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}
