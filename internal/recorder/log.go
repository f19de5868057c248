package recorder

import (
	"CaptionComposer/internal/model"

	"github.com/rs/zerolog/log"
)

// LogRecorder writes one structured line per analysis.
type LogRecorder struct{}

func NewLogRecorder() *LogRecorder { return &LogRecorder{} }

func (LogRecorder) RecordAnalysis(intel *model.Intelligence) error {
	s := intel.Snapshot
	ev := log.Info().
		Str("ticker", s.Ticker).
		Str("source", string(s.DataSource)).
		Float64("price", s.Price).
		Float64("rsi", s.RSI).
		Str("motif", intel.Caption.Motif.Name).
		Float64("resonance", intel.Caption.Resonance).
		Str("action", intel.Outlook.Action).
		Str("recommendation", intel.Insight.Recommendation)
	if s.FallbackReason != model.ReasonNone {
		ev = ev.Str("reason", string(s.FallbackReason))
	}
	ev.Msg("analysis recorded")
	return nil
}
