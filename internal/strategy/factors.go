package strategy

import (
	"fmt"
	"strings"

	"CaptionComposer/internal/model"
)

// scoreRSI scores momentum and returns the wording used in the reasoning.
func scoreRSI(rsi float64) (model.FactorScore, string) {
	f := model.FactorScore{Name: "RSI"}
	var signal string
	switch {
	case rsi < 30:
		f.Bullish, signal = 2, "deeply oversold"
	case rsi < 40:
		f.Bullish, signal = 1, "oversold"
	case rsi > 70:
		f.Bearish, signal = 2, "overbought"
	case rsi > 60:
		f.Bearish, signal = 1, "elevated"
	default:
		signal = "neutral"
	}
	f.Commentary = fmt.Sprintf("RSI %.1f %s", rsi, signal)
	return f, signal
}

// scoreSentiment scores the overall outlook sentiment.
func scoreSentiment(sentiment string) model.FactorScore {
	f := model.FactorScore{Name: "Sentiment", Commentary: sentiment}
	if strings.Contains(sentiment, SentimentBullish) {
		f.Bullish = 2
	} else if strings.Contains(sentiment, SentimentBearish) {
		f.Bearish = 2
	}
	return f
}

// scoreConsensus scores the analyst rating.
func scoreConsensus(rating string) model.FactorScore {
	f := model.FactorScore{Name: "Consensus", Commentary: rating}
	switch NormalizeRating(rating) {
	case "strong_buy", "buy":
		f.Bullish = 2
	case "sell", "strong_sell":
		f.Bearish = 2
	}
	return f
}

// scoreTarget scores the distance to the analyst target.
func scoreTarget(upsideToTarget float64) model.FactorScore {
	f := model.FactorScore{Name: "Target", Commentary: fmt.Sprintf("%+.1f%% to target", upsideToTarget)}
	switch {
	case upsideToTarget > 15:
		f.Bullish = 2
	case upsideToTarget < -10:
		f.Bearish = 2
	}
	return f
}

// scoreEarnings adds a bearish point when earnings are at most seven days out
// or already past. Zero to three days is an override in GenerateInsights.
func scoreEarnings(days *int) model.FactorScore {
	f := model.FactorScore{Name: "Earnings", Commentary: "none scheduled"}
	if days == nil {
		return f
	}
	f.Commentary = fmt.Sprintf("%d days out", *days)
	if *days != 0 && *days <= 7 {
		f.Bearish = 1
	}
	return f
}
