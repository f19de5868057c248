package collector

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"CaptionComposer/internal/model"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog/log"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher on Yahoo Finance: daily bars through the
// finance-go chart API, analyst data through the quoteSummary endpoint.
type YahooFetcher struct {
	Client     *resty.Client
	SymbolMap  map[string]string // maps index aliases to Yahoo tickers
	NameLookup func(symbol string) (string, error)
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	client := resty.New().
		SetBaseURL(yahooBaseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		Client:     client,
		NameLookup: quoteShortName,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"NDX":    "^NDX",
			"DJI":    "^DJI",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// FetchDailyBars returns up to days calendar days of daily bars, oldest first.
func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	params := &chart.Params{
		Symbol:   f.yahooSymbol(symbol),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	bars, err := runBlocking(ctx, func() ([]model.OHLCV, error) {
		iter := chart.Get(params)
		var bars []model.OHLCV
		for iter.Next() {
			bar := iter.Bar()
			c := bar.Close.InexactFloat64()
			if c == 0 {
				continue // null bars (halts, holidays)
			}
			bars = append(bars, model.OHLCV{
				Time:   time.Unix(int64(bar.Timestamp), 0),
				Open:   bar.Open.InexactFloat64(),
				High:   bar.High.InexactFloat64(),
				Low:    bar.Low.InexactFloat64(),
				Close:  c,
				Volume: float64(bar.Volume),
			})
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
		return bars, nil
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// quoteSummary is the subset of the quoteSummary response we read.
type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData struct {
				TargetMeanPrice         rawValue `json:"targetMeanPrice"`
				RecommendationKey       string   `json:"recommendationKey"`
				NumberOfAnalystOpinions rawValue `json:"numberOfAnalystOpinions"`
			} `json:"financialData"`
			CalendarEvents struct {
				Earnings struct {
					EarningsDate []struct {
						Raw int64  `json:"raw"`
						Fmt string `json:"fmt"`
					} `json:"earningsDate"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchQuoteMeta returns analyst consensus, mean target, analyst count, next
// earnings date and display name.
func (f *YahooFetcher) FetchQuoteMeta(ctx context.Context, symbol string) (*model.QuoteMeta, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetPathParam("symbol", f.yahooSymbol(symbol)).
		SetQueryParam("modules", "financialData,calendarEvents").
		Get("/v10/finance/quoteSummary/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, err)
	}

	var summary quoteSummary
	decodeErr := json.Unmarshal(resp.Body(), &summary)
	if e := summary.QuoteSummary.Error; e != nil && strings.EqualFold(e.Code, "Not Found") {
		return nil, fmt.Errorf("yahoo %s: %s: %w", symbol, e.Description, ErrTickerNotFound)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrTickerNotFound)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo quoteSummary: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo quoteSummary decode: %w", decodeErr)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quoteSummary %s: no result", symbol)
	}

	r := summary.QuoteSummary.Result[0]
	meta := &model.QuoteMeta{
		ConsensusRating: r.FinancialData.RecommendationKey,
		TargetPrice:     r.FinancialData.TargetMeanPrice.Raw,
	}
	if meta.ConsensusRating == "" || meta.ConsensusRating == "none" {
		meta.ConsensusRating = "N/A"
	}
	if n := r.FinancialData.NumberOfAnalystOpinions.Raw; n != nil {
		meta.NumAnalysts = int(*n)
	}
	if dates := r.CalendarEvents.Earnings.EarningsDate; len(dates) > 0 && dates[0].Raw > 0 {
		t := time.Unix(dates[0].Raw, 0)
		meta.EarningsDate = &t
	}

	name, err := runBlocking(ctx, func() (string, error) {
		return f.NameLookup(f.yahooSymbol(symbol))
	})
	if err != nil {
		log.Debug().Err(err).Str("ticker", symbol).Msg("quote name lookup failed")
	}
	meta.Name = name
	return meta, nil
}

// quoteShortName looks up the display name through the finance-go quote API.
func quoteShortName(symbol string) (string, error) {
	q, err := quote.Get(symbol)
	if err != nil || q == nil {
		return "", err
	}
	return q.ShortName, nil
}
