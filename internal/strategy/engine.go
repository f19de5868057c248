package strategy

import "CaptionComposer/internal/model"

// TrendPhases defines the six RSI trend bins.
var TrendPhases = []struct {
	MaxRSI float64
	Label  string
	Emoji  string
}{
	{30, "Oversold Reversal Zone", "📉→📈"},
	{40, "Accumulation Phase", "🔄"},
	{50, "Consolidation Range", "↔️"},
	{60, "Bullish Momentum Building", "📈"},
	{70, "Strong Uptrend", "🚀"},
}

// OverboughtPhase is the trend for RSI >= 70.
var OverboughtPhase = struct {
	Label string
	Emoji string
}{"Overbought Territory", "⚠️"}

// mapTrend maps RSI to a trend label and emoji.
func mapTrend(rsi float64) (label, emoji string) {
	for _, p := range TrendPhases {
		if rsi < p.MaxRSI {
			return p.Label, p.Emoji
		}
	}
	return OverboughtPhase.Label, OverboughtPhase.Emoji
}

// Evaluate computes the outlook and the insight for a snapshot.
func Evaluate(snap *model.Snapshot) *model.Assessment {
	outlook := AnalyzeOutlook(snap)
	return &model.Assessment{
		Outlook: outlook,
		Insight: GenerateInsights(snap, outlook),
	}
}
