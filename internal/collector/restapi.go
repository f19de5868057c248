package collector

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"CaptionComposer/internal/model"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

// RESTFetcher implements Fetcher against a market data gateway exposing
// /api/v1/bars/daily and /api/v1/quote.
type RESTFetcher struct {
	BaseURL string
	Client  *resty.Client
}

// NewRESTFetcher creates a new fetcher with optional bearer key and proxy.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &RESTFetcher{BaseURL: baseURL, Client: client}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the JSON shape of one bar returned by the gateway.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// restQuote is the JSON shape of the quote metadata endpoint.
type restQuote struct {
	Name         string   `json:"name"`
	Consensus    string   `json:"consensus"`
	TargetPrice  *float64 `json:"target_price"`
	NumAnalysts  int      `json:"num_analysts"`
	EarningsDate string   `json:"earnings_date"`
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	var raw []restBar
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"limit":  strconv.Itoa(days),
		}).
		SetResult(&raw).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if err := checkStatus(resp, symbol); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	bars := make([]model.OHLCV, len(raw))
	for i, rb := range raw {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *RESTFetcher) FetchQuoteMeta(ctx context.Context, symbol string) (*model.QuoteMeta, error) {
	var q restQuote
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&q).
		Get("/api/v1/quote")
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	if err := checkStatus(resp, symbol); err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}

	meta := &model.QuoteMeta{
		Name:            q.Name,
		ConsensusRating: q.Consensus,
		TargetPrice:     q.TargetPrice,
		NumAnalysts:     q.NumAnalysts,
	}
	if meta.ConsensusRating == "" {
		meta.ConsensusRating = "N/A"
	}
	if q.EarningsDate != "" {
		t, err := parseEarningsDate(q.EarningsDate)
		if err != nil {
			return nil, fmt.Errorf("parse earnings date %q: %w", q.EarningsDate, err)
		}
		meta.EarningsDate = &t
	}
	return meta, nil
}

func checkStatus(resp *resty.Response, symbol string) error {
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%s: %w", symbol, ErrTickerNotFound)
	case resp.IsError():
		return fmt.Errorf("status %d, body: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// parseEarningsDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseEarningsDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
