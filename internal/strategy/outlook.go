package strategy

import (
	"strings"

	"CaptionComposer/internal/calculator"
	"CaptionComposer/internal/model"
)

// Analyst sentiment labels.
const (
	SentimentBullish = "Bullish"
	SentimentBearish = "Bearish"
	SentimentNeutral = "Neutral"
)

// Overall sentiment labels.
const (
	OverallBullish     = "🟢 Bullish Alignment"
	OverallBearish     = "🔴 Bearish Alignment"
	OverallConflicting = "🟡 Conflicting Signals"
	OverallNeutral     = "⚪ Neutral Watch"
)

const (
	earningsImminent    = "⚠️ Earnings imminent - elevated volatility expected"
	earningsApproaching = "📅 Earnings approaching - monitor closely"
)

// NormalizeRating folds provider spellings ("Strong Buy", "strong-buy") into "strong_buy".
func NormalizeRating(rating string) string {
	r := strings.ToLower(strings.TrimSpace(rating))
	r = strings.NewReplacer(" ", "_", "-", "_").Replace(r)
	return r
}

// AnalystSentiment classifies a consensus rating.
func AnalystSentiment(rating string) string {
	switch NormalizeRating(rating) {
	case "strong_buy", "buy":
		return SentimentBullish
	case "strong_sell", "sell":
		return SentimentBearish
	default:
		return SentimentNeutral
	}
}

// RSISentiment describes what RSI alone implies.
func RSISentiment(rsi float64) string {
	switch {
	case rsi < 35:
		return "Oversold (Contrarian Bullish)"
	case rsi < 50:
		return "Neutral to Bearish"
	case rsi < 65:
		return "Neutral to Bullish"
	default:
		return "Overbought (Contrarian Bearish)"
	}
}

// OverallSentiment combines analyst sentiment with RSI.
func OverallSentiment(analyst string, rsi float64) string {
	switch {
	case analyst == SentimentBullish && rsi < 60:
		return OverallBullish
	case analyst == SentimentBearish && rsi > 50:
		return OverallBearish
	case analyst == SentimentBullish && rsi >= 70, analyst == SentimentBearish && rsi <= 30:
		return OverallConflicting
	default:
		return OverallNeutral
	}
}

// narrate picks the outlook narrative and action from RSI, price-vs-target and level upside.
func narrate(rsi, priceVsTarget, upside float64) (narrative, action string) {
	switch {
	case rsi < 30 && priceVsTarget > 10:
		return "Compelling value opportunity at oversold levels with analyst support", "Strong Buy on weakness"
	case rsi < 30:
		return "Oversold bounce candidate, but verify fundamental catalyst", "Scale in cautiously"
	case rsi < 50 && priceVsTarget > 15:
		return "Healthy consolidation with significant upside to target", "Accumulate on dips"
	case rsi < 50:
		return "Consolidating in neutral zone, await confirmation", "Wait for setup"
	case rsi < 70 && upside > 8:
		return "Bullish momentum with favorable risk/reward", "Enter with conviction"
	case rsi < 70:
		return "Trending higher, consider trailing stops", "Hold or take partials"
	case priceVsTarget < -5:
		return "Overbought and above analyst targets - caution warranted", "Take profits"
	default:
		return "Extended move, consider profit-taking or wait for pullback", "Reduce or wait"
	}
}

// EarningsWarning returns the proximity notice for days until earnings, if any.
func EarningsWarning(days *int) string {
	if days == nil {
		return ""
	}
	switch d := *days; {
	case d >= 0 && d <= 7:
		return earningsImminent
	case d >= 8 && d <= 14:
		return earningsApproaching
	default:
		return ""
	}
}

// AnalyzeOutlook classifies the snapshot into trend, sentiment and action labels.
func AnalyzeOutlook(snap *model.Snapshot) model.Outlook {
	rsi := snap.RSI
	pvt := snap.UpsideToTarget()

	trend, emoji := mapTrend(rsi)
	analyst := AnalystSentiment(snap.ConsensusRating)
	narrative, action := narrate(rsi, pvt, snap.UpsidePct)

	out := model.Outlook{
		Trend:            trend,
		TrendEmoji:       emoji,
		OverallSentiment: OverallSentiment(analyst, rsi),
		AnalystSentiment: analyst,
		RSISentiment:     RSISentiment(rsi),
		Action:           action,
		Narrative:        narrative,
		EarningsWarning:  EarningsWarning(snap.DaysToEarnings),
	}
	if pvt != 0 {
		v := calculator.Round(pvt, 1)
		out.PriceVsTarget = &v
	}
	return out
}
