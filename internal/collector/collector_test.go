package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CaptionComposer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func risingBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = model.OHLCV{
			Time:  fixedNow.AddDate(0, 0, i-n),
			Open:  c - 0.5,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return bars
}

func newTestCollector(f Fetcher) *Collector {
	c := NewCollector(f, time.Second, 90, true)
	c.Now = func() time.Time { return fixedNow }
	return c
}

func TestCollect_Live(t *testing.T) {
	target := 150.0
	earnings := fixedNow.Add(5*24*time.Hour + time.Hour)
	f := &MockFetcher{
		DailyData: risingBars(40),
		Meta: &model.QuoteMeta{
			Name:            "Test Corp",
			ConsensusRating: "buy",
			TargetPrice:     &target,
			NumAnalysts:     31,
			EarningsDate:    &earnings,
		},
	}

	res, err := newTestCollector(f).Collect(context.Background(), "TEST")
	require.NoError(t, err)
	require.True(t, res.Live())
	assert.NoError(t, res.Cause)

	s := res.Snapshot
	assert.Equal(t, model.SourceLive, s.DataSource)
	assert.Equal(t, model.ReasonNone, s.FallbackReason)
	assert.Equal(t, "Test Corp", s.Name)
	assert.Equal(t, 139.0, s.Price)
	assert.Equal(t, 100.0, s.RSI)
	assert.Equal(t, 2.0, s.ATR)
	assert.Equal(t, "buy", s.ConsensusRating)
	require.NotNil(t, s.TargetPrice)
	assert.Equal(t, 150.0, *s.TargetPrice)
	require.NotNil(t, s.DaysToEarnings)
	assert.Equal(t, 5, *s.DaysToEarnings)
	assert.Less(t, s.Stop, s.Entry)
	assert.Less(t, s.Entry, s.Exit)
	// RSI 100 → overbought bucket
	assert.Equal(t, 132.05, s.Entry)
}

func TestCollect_MetadataFailureIsNotFatal(t *testing.T) {
	f := &MockFetcher{DailyData: risingBars(20), MetaErr: errors.New("boom")}
	res, err := newTestCollector(f).Collect(context.Background(), "TEST")
	require.NoError(t, err)
	assert.True(t, res.Live())
	assert.Equal(t, "N/A", res.Snapshot.ConsensusRating)
	assert.Nil(t, res.Snapshot.TargetPrice)
	assert.Nil(t, res.Snapshot.DaysToEarnings)
}

func TestCollect_FallbackReasons(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *MockFetcher
		reason  model.FallbackReason
	}{
		{"fetch error", &MockFetcher{BarsErr: errors.New("network down")}, model.ReasonFetchError},
		{"empty series", &MockFetcher{DailyData: []model.OHLCV{}}, model.ReasonEmptySeries},
		{"insufficient data", &MockFetcher{DailyData: risingBars(10)}, model.ReasonInsufficientData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestCollector(tt.fetcher).Collect(context.Background(), "AAPL")
			require.NoError(t, err)
			assert.False(t, res.Live())
			assert.Error(t, res.Cause)
			assert.Equal(t, tt.reason, res.Snapshot.FallbackReason)

			want := Synthesize("AAPL", fixedNow)
			want.FallbackReason = tt.reason
			assert.Equal(t, want, res.Snapshot)
		})
	}
}

func TestCollect_UnknownTicker(t *testing.T) {
	f := &MockFetcher{MetaErr: fmt.Errorf("yahoo: %w", ErrTickerNotFound)}

	c := newTestCollector(f)
	c.SimulateUnknown = false
	_, err := c.Collect(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrTickerNotFound)
	assert.Zero(t, f.Calls, "bars should not be fetched for an unknown ticker")

	c.SimulateUnknown = true
	res, err := c.Collect(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.True(t, res.Snapshot.Simulated())
	assert.Equal(t, model.ReasonFetchError, res.Snapshot.FallbackReason)
}

func TestCollect_CallerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &MockFetcher{BarsErr: context.Canceled}
	_, err := newTestCollector(f).Collect(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSynthesize_Deterministic(t *testing.T) {
	tests := []struct {
		ticker string
		rsi    float64
		price  float64
		target float64
		entry  float64
		exit   float64
		stop   float64
	}{
		{"AAPL", 70, 260, 299, 254.8, 286, 247},
		{"NVDA", 44, 354, 407.1, 346.92, 389.4, 336.3},
		{"IBIT", 78, 448, 515.2, 439.04, 492.8, 425.6},
	}
	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			a := Synthesize(tt.ticker, fixedNow)
			b := Synthesize(tt.ticker, fixedNow)
			assert.Equal(t, a, b)

			assert.Equal(t, tt.rsi, a.RSI)
			assert.Equal(t, tt.price, a.Price)
			assert.Equal(t, tt.target, *a.TargetPrice)
			assert.Equal(t, tt.entry, a.Entry)
			assert.Equal(t, tt.exit, a.Exit)
			assert.Equal(t, tt.stop, a.Stop)
			assert.Equal(t, 15.0, a.UpsidePct)
			assert.Equal(t, "hold", a.ConsensusRating)
			assert.Equal(t, 10, a.NumAnalysts)
			assert.Nil(t, a.DaysToEarnings)
			assert.Equal(t, model.SourceSimulated, a.DataSource)
		})
	}
}

func TestSynthesize_Ranges(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := Synthesize(fmt.Sprintf("T%d", i), fixedNow)
		assert.GreaterOrEqual(t, s.RSI, 20.0)
		assert.Less(t, s.RSI, 80.0)
		assert.GreaterOrEqual(t, s.Price, 50.0)
		assert.Less(t, s.Price, 550.0)
		assert.Less(t, s.Stop, s.Entry)
		assert.Less(t, s.Entry, s.Exit)
	}
}

func TestRESTFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		symbol := r.URL.Query().Get("symbol")
		if symbol == "NOPE" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.URL.Path {
		case "/api/v1/bars/daily":
			assert.Equal(t, "90", r.URL.Query().Get("limit"))
			fmt.Fprint(w, `[
				{"timestamp": 1717200000, "open": 11, "high": 12, "low": 10, "close": 11.5, "volume": 100},
				{"timestamp": 1717113600, "open": 10, "high": 11, "low": 9, "close": 10.5, "volume": 200}
			]`)
		case "/api/v1/quote":
			fmt.Fprint(w, `{"name": "Acme", "consensus": "strong_buy", "target_price": 14.2, "num_analysts": 7, "earnings_date": "2025-07-30"}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "", time.Second)
	ctx := context.Background()

	bars, err := f.FetchDailyBars(ctx, "ACME", 90)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.True(t, bars[0].Time.Before(bars[1].Time))
	assert.Equal(t, 10.5, bars[0].Close)

	meta, err := f.FetchQuoteMeta(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, "Acme", meta.Name)
	assert.Equal(t, "strong_buy", meta.ConsensusRating)
	assert.Equal(t, 14.2, *meta.TargetPrice)
	assert.Equal(t, 7, meta.NumAnalysts)
	require.NotNil(t, meta.EarningsDate)
	assert.Equal(t, time.July, meta.EarningsDate.Month())

	_, err = f.FetchQuoteMeta(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrTickerNotFound)
	_, err = f.FetchDailyBars(ctx, "NOPE", 90)
	assert.ErrorIs(t, err, ErrTickerNotFound)
}

func TestYahooFetcher_QuoteMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v10/finance/quoteSummary/NOPE" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for ticker symbol: NOPE"}}}`)
			return
		}
		assert.Equal(t, "/v10/finance/quoteSummary/^GSPC", r.URL.Path)
		assert.Equal(t, "financialData,calendarEvents", r.URL.Query().Get("modules"))
		fmt.Fprint(w, `{"quoteSummary":{"result":[{
			"financialData":{"targetMeanPrice":{"raw":6100.5,"fmt":"6,100.50"},"recommendationKey":"none","numberOfAnalystOpinions":{"raw":12,"fmt":"12"}},
			"calendarEvents":{"earnings":{"earningsDate":[{"raw":1753920000,"fmt":"2025-07-31"}]}}
		}],"error":null}}`)
	}))
	defer srv.Close()

	f := NewYahooFetcher("", time.Second)
	f.Client.SetBaseURL(srv.URL)
	f.NameLookup = func(symbol string) (string, error) { return "S&P 500", nil }

	meta, err := f.FetchQuoteMeta(context.Background(), "SPX500")
	require.NoError(t, err)
	assert.Equal(t, "S&P 500", meta.Name)
	assert.Equal(t, "N/A", meta.ConsensusRating)
	assert.Equal(t, 6100.5, *meta.TargetPrice)
	assert.Equal(t, 12, meta.NumAnalysts)
	require.NotNil(t, meta.EarningsDate)
	assert.Equal(t, int64(1753920000), meta.EarningsDate.Unix())

	_, err = f.FetchQuoteMeta(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrTickerNotFound)
}

func TestRunBlocking_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	release := make(chan struct{})
	defer close(release)

	_, err := runBlocking(ctx, func() (int, error) {
		<-release
		return 1, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
