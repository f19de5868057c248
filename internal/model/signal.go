package model

import "time"

// Outlook is the qualitative reading of a snapshot.
type Outlook struct {
	Trend            string
	TrendEmoji       string
	OverallSentiment string
	AnalystSentiment string
	RSISentiment     string
	Action           string
	Narrative        string
	EarningsWarning  string
	PriceVsTarget    *float64 // percent, rounded to 1 decimal; nil when zero
}

// FactorScore is one bullish/bearish contribution to an insight.
type FactorScore struct {
	Name       string
	Bullish    int
	Bearish    int
	Commentary string
}

// Insight is the rubric-based recommendation attached to every response.
type Insight struct {
	Recommendation string
	Confidence     int
	Reasoning      string
	BullishSignals int
	BearishSignals int
	Factors        []FactorScore
}

// Assessment bundles the outlook and the insight computed from one snapshot.
type Assessment struct {
	Outlook Outlook
	Insight Insight
}

// Motif is one of the four RSI archetypes.
type Motif struct {
	Name      string
	Emoji     string
	Archetype string
	Color     string
}

// Caption is the rendered poetic line and how well it resonated with the tone.
type Caption struct {
	Motif     Motif
	Text      string
	Resonance float64
}

// Intelligence is the flattened result handed to the HTTP, CLI and Telegram surfaces.
type Intelligence struct {
	Snapshot    Snapshot
	Outlook     Outlook
	Insight     Insight
	Tone        string
	Caption     Caption
	GeneratedAt time.Time
}
