package strategy

import (
	"fmt"
	"strings"

	"CaptionComposer/internal/model"
)

// earningsBlackoutDays is the horizon within which earnings override every other signal.
const earningsBlackoutDays = 3

// GenerateInsights scores the snapshot with a fixed rubric and turns the net
// bullish/bearish balance into a recommendation with a confidence percentage.
func GenerateInsights(snap *model.Snapshot, outlook model.Outlook) model.Insight {
	rsiFactor, rsiSignal := scoreRSI(snap.RSI)

	if d := snap.DaysToEarnings; d != nil && *d >= 0 && *d <= earningsBlackoutDays {
		rec := "Exercise caution - earnings imminent"
		if *d == 0 {
			rec = "Wait for earnings clarity"
		}
		return model.Insight{
			Recommendation: rec,
			Confidence:     60,
			Reasoning:      fmt.Sprintf("Earnings in %d day(s) - expect high volatility. RSI is %s.", *d, rsiSignal),
			Factors:        []model.FactorScore{rsiFactor},
		}
	}

	upside := snap.UpsideToTarget()
	factors := []model.FactorScore{
		rsiFactor,
		scoreSentiment(outlook.OverallSentiment),
		scoreConsensus(snap.ConsensusRating),
		scoreTarget(upside),
		scoreEarnings(snap.DaysToEarnings),
	}

	var bullish, bearish int
	for _, f := range factors {
		bullish += f.Bullish
		bearish += f.Bearish
	}
	net := bullish - bearish

	in := model.Insight{
		BullishSignals: bullish,
		BearishSignals: bearish,
		Factors:        factors,
	}
	sentiment := outlook.OverallSentiment
	consensus := snap.ConsensusRating

	switch {
	case net >= 4:
		in.Recommendation = "Strong Buy - Multiple bullish indicators align"
		in.Confidence = min(85+net*2, 95)
		in.Reasoning = fmt.Sprintf("RSI is %s (%.1f), %s, with %.1f%% upside to analyst target.",
			rsiSignal, snap.RSI, strings.ToLower(sentiment), upside)
	case net >= 2:
		in.Recommendation = "Buy - Favorable risk/reward setup"
		in.Confidence = 70 + net*3
		in.Reasoning = fmt.Sprintf("Technical momentum (%s RSI) supports %s. Analysts rate: %s.",
			rsiSignal, strings.ToLower(outlook.Action), consensus)
	case net <= -4:
		in.Recommendation = "Strong Sell - Multiple warning signals"
		in.Confidence = min(85-net*2, 95)
		in.Reasoning = fmt.Sprintf("RSI %s (%.1f), %s. Consider reducing exposure.",
			rsiSignal, snap.RSI, strings.ToLower(sentiment))
	case net <= -2:
		in.Recommendation = "Sell - Risk outweighs reward"
		in.Confidence = 70 - net*3
		in.Reasoning = fmt.Sprintf("Technical weakness (%s RSI) suggests %s. Analysts: %s.",
			rsiSignal, strings.ToLower(outlook.Action), consensus)
	default:
		in.Recommendation = "Hold - Mixed signals, monitor closely"
		in.Confidence = 50 + abs(net)*5
		in.Reasoning = fmt.Sprintf("RSI %s at %.1f. %s. Wait for clearer direction.",
			rsiSignal, snap.RSI, sentiment)
	}
	return in
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
