package analyzer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"CaptionComposer/internal/caption"
	"CaptionComposer/internal/collector"
	"CaptionComposer/internal/model"
	"CaptionComposer/internal/recorder"
	"CaptionComposer/internal/strategy"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ErrInvalidTicker is returned for an empty, over-long or malformed ticker.
var ErrInvalidTicker = errors.New("invalid ticker symbol")

// MaxTickerLength is the longest ticker accepted.
const MaxTickerLength = 10

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.^=-]+$`)

type tickerRequest struct {
	Ticker string `validate:"required,max=10,ticker"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return tickerPattern.MatchString(fl.Field().String())
	})
	return v
}

// NormalizeTicker trims and upper-cases raw, then validates it.
func NormalizeTicker(raw string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if err := validate.Struct(tickerRequest{Ticker: ticker}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", fmt.Errorf("%w: %q fails %s", ErrInvalidTicker, raw, verrs[0].Tag())
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidTicker, err)
	}
	return ticker, nil
}

// Analyzer runs the full pipeline: collect, evaluate, tone, caption.
type Analyzer struct {
	Collector *collector.Collector
	Composer  *caption.Composer
	Recorder  recorder.Recorder
	Now       func() time.Time
}

// New creates an Analyzer that records nothing.
func New(col *collector.Collector, comp *caption.Composer) *Analyzer {
	return &Analyzer{
		Collector: col,
		Composer:  comp,
		Recorder:  recorder.NewNoopRecorder(),
		Now:       time.Now,
	}
}

// Analyze produces the trading intelligence record for ticker.
func (a *Analyzer) Analyze(ctx context.Context, rawTicker string) (*model.Intelligence, error) {
	ticker, err := NormalizeTicker(rawTicker)
	if err != nil {
		return nil, err
	}

	res, err := a.Collector.Collect(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", ticker, err)
	}
	snap := res.Snapshot

	assessment := strategy.Evaluate(snap)
	tone := a.Composer.ForecastTone(snap.RSI, assessment.Outlook.OverallSentiment)
	poem := a.Composer.Compose(snap.RSI, tone)

	intel := &model.Intelligence{
		Snapshot:    *snap,
		Outlook:     assessment.Outlook,
		Insight:     assessment.Insight,
		Tone:        tone,
		Caption:     poem,
		GeneratedAt: a.Now(),
	}
	if a.Recorder != nil {
		if err := a.Recorder.RecordAnalysis(intel); err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("record analysis failed")
		}
	}
	return intel, nil
}
