package strategy

import (
	"fmt"
	"testing"
	"time"

	"CaptionComposer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func flatBars(n int, high, low, close float64) []model.OHLCV {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: close, High: high, Low: low, Close: close}
	}
	return bars
}

func TestMapTrend_Bins(t *testing.T) {
	tests := []struct {
		rsi   float64
		label string
		emoji string
	}{
		{0, "Oversold Reversal Zone", "📉→📈"},
		{29.99, "Oversold Reversal Zone", "📉→📈"},
		{30, "Accumulation Phase", "🔄"},
		{40, "Consolidation Range", "↔️"},
		{50, "Bullish Momentum Building", "📈"},
		{60, "Strong Uptrend", "🚀"},
		{70, "Overbought Territory", "⚠️"},
		{100, "Overbought Territory", "⚠️"},
	}
	for _, tt := range tests {
		label, emoji := mapTrend(tt.rsi)
		assert.Equal(t, tt.label, label, "rsi=%v", tt.rsi)
		assert.Equal(t, tt.emoji, emoji, "rsi=%v", tt.rsi)
	}
}

func TestCalculateLevels_OrderingHoldsForEveryBucket(t *testing.T) {
	ranges := []struct{ high, low float64 }{
		{110, 90}, {200, 190}, {101, 99}, {60, 40}, {300, 20},
	}
	for _, rsi := range []float64{5, 29.9, 30, 45, 50, 69.9, 70, 95} {
		for _, r := range ranges {
			t.Run(fmt.Sprintf("rsi=%v/range=%v-%v", rsi, r.high, r.low), func(t *testing.T) {
				lv, err := CalculateLevels(flatBars(25, r.high, r.low, 100), 100, rsi)
				require.NoError(t, err)
				assert.Less(t, lv.Stop, lv.Entry)
				assert.Less(t, lv.Entry, lv.Exit)
				assert.Greater(t, lv.UpsidePct, 0.0)
			})
		}
	}
}

func TestCalculateLevels_OrderingHoldsForSubDollarPrices(t *testing.T) {
	for _, price := range []float64{0.01, 0.02, 0.05, 0.07, 0.1, 0.13, 0.3, 0.55, 0.99, 1.5} {
		for _, rsi := range []float64{5, 29.9, 30, 45, 50, 60, 69.9, 70, 75, 95} {
			t.Run(fmt.Sprintf("price=%v/rsi=%v", price, rsi), func(t *testing.T) {
				lv, err := CalculateLevels(flatBars(20, price*1.1, price*0.9, price), price, rsi)
				require.NoError(t, err)
				assert.Less(t, lv.Stop, lv.Entry)
				assert.Less(t, lv.Entry, lv.Exit)
				assert.Greater(t, lv.UpsidePct, 0.0)
			})
		}
	}
}

func TestCalculateLevels_RepairRunsOnRoundedLevels(t *testing.T) {
	// entry 0.303 and the 0.30 pivot stop both round to 0.30
	lv, err := CalculateLevels(flatBars(20, 0.33, 0.27, 0.3), 0.3, 60)
	require.NoError(t, err)
	assert.Equal(t, 0.3, lv.Entry)
	assert.Equal(t, 0.28, lv.Stop)
	assert.Equal(t, 0.33, lv.Exit)

	lv, err = CalculateLevels(flatBars(20, 0.11, 0.09, 0.1), 0.1, 75)
	require.NoError(t, err)
	assert.Equal(t, 0.1, lv.Entry)
	assert.Equal(t, 0.09, lv.Stop)
	assert.Equal(t, 0.11, lv.Exit)
}

func TestCalculateLevels_Overbought(t *testing.T) {
	lv, err := CalculateLevels(flatBars(20, 110, 90, 100), 100, 75)
	require.NoError(t, err)
	assert.Equal(t, 95.0, lv.Entry)
	assert.Equal(t, 103.0, lv.Exit)
	assert.Equal(t, 92.0, lv.Stop)
	assert.Equal(t, 8.42, lv.UpsidePct)
}

func TestCalculateLevels_NeutralBearishUsesPivot(t *testing.T) {
	// pivot = (130 + 110 + 100) / 3 = 113.33 > 106
	lv, err := CalculateLevels(flatBars(20, 130, 110, 100), 100, 40)
	require.NoError(t, err)
	assert.Equal(t, 97.0, lv.Entry)
	assert.Equal(t, 113.33, lv.Exit)
	assert.Equal(t, 113.33, lv.Pivot)
}

func TestCalculateLevels_RepairsStopAboveEntry(t *testing.T) {
	// price far below the recent range pushes support1 above entry
	lv, err := CalculateLevels(flatBars(20, 200, 190, 150), 100, 20)
	require.NoError(t, err)
	assert.Equal(t, 99.0, lv.Entry)
	assert.Equal(t, 92.07, lv.Stop)
	assert.Equal(t, 136.67, lv.Exit)
}

func TestCalculateLevels_OnlyLastTwentyBars(t *testing.T) {
	bars := append(flatBars(5, 1000, 1, 100), flatBars(20, 110, 90, 100)...)
	lv, err := CalculateLevels(bars, 100, 75)
	require.NoError(t, err)
	assert.Equal(t, 100.0, lv.Pivot)
}

func TestCalculateLevels_NoBars(t *testing.T) {
	_, err := CalculateLevels(nil, 100, 50)
	assert.Error(t, err)
}

func TestRepairLevels(t *testing.T) {
	entry, exit, stop := repairLevels(100, 90, 120)
	assert.Equal(t, 100.0, entry)
	assert.InDelta(t, 105.0, exit, 1e-9)
	assert.InDelta(t, 93.0, stop, 1e-9)

	entry, exit, stop = repairLevels(100, 110, 95)
	assert.Equal(t, []float64{100, 110, 95}, []float64{entry, exit, stop})

	// a percentage move that rounds back onto entry steps one cent
	entry, exit, stop = repairLevels(0.01, 0.01, 0.01)
	assert.Equal(t, []float64{0.01, 0.02, 0}, []float64{entry, exit, stop})
}

func TestAnalystSentiment(t *testing.T) {
	assert.Equal(t, SentimentBullish, AnalystSentiment("strong_buy"))
	assert.Equal(t, SentimentBullish, AnalystSentiment("Buy"))
	assert.Equal(t, SentimentBullish, AnalystSentiment("Strong Buy"))
	assert.Equal(t, SentimentBearish, AnalystSentiment("sell"))
	assert.Equal(t, SentimentBearish, AnalystSentiment("strong-sell"))
	assert.Equal(t, SentimentNeutral, AnalystSentiment("hold"))
	assert.Equal(t, SentimentNeutral, AnalystSentiment("N/A"))
}

func TestOverallSentiment(t *testing.T) {
	tests := []struct {
		analyst string
		rsi     float64
		want    string
	}{
		{SentimentBullish, 59.9, OverallBullish},
		{SentimentBullish, 65, OverallNeutral},
		{SentimentBullish, 70, OverallConflicting},
		{SentimentBearish, 50.1, OverallBearish},
		{SentimentBearish, 40, OverallNeutral},
		{SentimentBearish, 30, OverallConflicting},
		{SentimentNeutral, 10, OverallNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OverallSentiment(tt.analyst, tt.rsi), "%s rsi=%v", tt.analyst, tt.rsi)
	}
}

func TestRSISentiment(t *testing.T) {
	assert.Equal(t, "Oversold (Contrarian Bullish)", RSISentiment(34.9))
	assert.Equal(t, "Neutral to Bearish", RSISentiment(35))
	assert.Equal(t, "Neutral to Bullish", RSISentiment(50))
	assert.Equal(t, "Overbought (Contrarian Bearish)", RSISentiment(65))
}

func TestNarrate_DecisionTable(t *testing.T) {
	tests := []struct {
		rsi, pvt, upside float64
		action           string
	}{
		{25, 11, 0, "Strong Buy on weakness"},
		{25, 10, 0, "Scale in cautiously"},
		{30, 16, 0, "Accumulate on dips"},
		{45, 15, 0, "Wait for setup"},
		{50, 0, 8.1, "Enter with conviction"},
		{69, 0, 8, "Hold or take partials"},
		{70, -6, 0, "Take profits"},
		{80, -5, 0, "Reduce or wait"},
	}
	for _, tt := range tests {
		_, action := narrate(tt.rsi, tt.pvt, tt.upside)
		assert.Equal(t, tt.action, action, "rsi=%v pvt=%v upside=%v", tt.rsi, tt.pvt, tt.upside)
	}
}

func TestEarningsWarning(t *testing.T) {
	assert.Empty(t, EarningsWarning(nil))
	assert.Empty(t, EarningsWarning(ptr(-1)))
	assert.Contains(t, EarningsWarning(ptr(0)), "imminent")
	assert.Contains(t, EarningsWarning(ptr(7)), "imminent")
	assert.Contains(t, EarningsWarning(ptr(8)), "approaching")
	assert.Contains(t, EarningsWarning(ptr(14)), "approaching")
	assert.Empty(t, EarningsWarning(ptr(15)))
}

func TestAnalyzeOutlook_StrongBuyOversold(t *testing.T) {
	snap := &model.Snapshot{
		Ticker:          "TEST",
		Price:           100,
		RSI:             25,
		ConsensusRating: "strong_buy",
		TargetPrice:     ptr(120.0),
		UpsidePct:       9,
	}
	out := AnalyzeOutlook(snap)
	assert.Equal(t, OverallBullish, out.OverallSentiment)
	assert.Contains(t, out.Action, "Buy")
	assert.Equal(t, "Oversold Reversal Zone", out.Trend)
	require.NotNil(t, out.PriceVsTarget)
	assert.Equal(t, 20.0, *out.PriceVsTarget)
}

func TestAnalyzeOutlook_NoTarget(t *testing.T) {
	out := AnalyzeOutlook(&model.Snapshot{Price: 100, RSI: 55, ConsensusRating: "N/A"})
	assert.Nil(t, out.PriceVsTarget)
	assert.Equal(t, SentimentNeutral, out.AnalystSentiment)
	assert.Equal(t, OverallNeutral, out.OverallSentiment)
}

func TestGenerateInsights_EarningsOverride(t *testing.T) {
	snap := &model.Snapshot{
		Price:           100,
		RSI:             20,
		ConsensusRating: "strong_buy",
		TargetPrice:     ptr(150.0),
		DaysToEarnings:  ptr(2),
	}
	in := GenerateInsights(snap, AnalyzeOutlook(snap))
	assert.Equal(t, "Exercise caution - earnings imminent", in.Recommendation)
	assert.Equal(t, 60, in.Confidence)
	assert.Equal(t, "Earnings in 2 day(s) - expect high volatility. RSI is deeply oversold.", in.Reasoning)

	snap.DaysToEarnings = ptr(0)
	in = GenerateInsights(snap, AnalyzeOutlook(snap))
	assert.Equal(t, "Wait for earnings clarity", in.Recommendation)
	assert.Equal(t, 60, in.Confidence)
}

func TestGenerateInsights_StrongBuy(t *testing.T) {
	snap := &model.Snapshot{Price: 100, RSI: 25, ConsensusRating: "strong_buy", TargetPrice: ptr(120.0)}
	in := GenerateInsights(snap, AnalyzeOutlook(snap))
	assert.Equal(t, "Strong Buy - Multiple bullish indicators align", in.Recommendation)
	assert.Equal(t, 95, in.Confidence)
	assert.Equal(t, 8, in.BullishSignals)
	assert.Equal(t, "RSI is deeply oversold (25.0), 🟢 bullish alignment, with 20.0% upside to analyst target.", in.Reasoning)
}

func TestGenerateInsights_StrongSell(t *testing.T) {
	snap := &model.Snapshot{Price: 100, RSI: 75, ConsensusRating: "sell", TargetPrice: ptr(80.0)}
	in := GenerateInsights(snap, AnalyzeOutlook(snap))
	// overbought 2 + bearish alignment 2 + sell 2 + target 2
	assert.Equal(t, 8, in.BearishSignals)
	assert.Equal(t, "Strong Sell - Multiple warning signals", in.Recommendation)
	assert.Equal(t, 95, in.Confidence)
}

func TestGenerateInsights_Hold(t *testing.T) {
	snap := &model.Snapshot{Price: 100, RSI: 45, ConsensusRating: "hold"}
	in := GenerateInsights(snap, AnalyzeOutlook(snap))
	assert.Equal(t, "Hold - Mixed signals, monitor closely", in.Recommendation)
	assert.Equal(t, 50, in.Confidence)
	assert.Equal(t, "RSI neutral at 45.0. ⚪ Neutral Watch. Wait for clearer direction.", in.Reasoning)
}

func TestScoreEarnings(t *testing.T) {
	tests := []struct {
		days    *int
		bearish int
	}{
		{nil, 0},
		{ptr(-3), 1},
		{ptr(0), 0},
		{ptr(4), 1},
		{ptr(7), 1},
		{ptr(8), 0},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.bearish, scoreEarnings(tt.days).Bearish, "case %d", i)
	}
}

func TestGenerateInsights_PastEarningsIsBearish(t *testing.T) {
	snap := &model.Snapshot{Price: 100, RSI: 45, ConsensusRating: "hold", DaysToEarnings: ptr(-2)}
	in := GenerateInsights(snap, AnalyzeOutlook(snap))
	assert.Equal(t, 0, in.BullishSignals)
	assert.Equal(t, 1, in.BearishSignals)
	assert.Equal(t, "Hold - Mixed signals, monitor closely", in.Recommendation)
	assert.Equal(t, 55, in.Confidence)
}

func TestGenerateInsights_BuyAndEarningsWeek(t *testing.T) {
	// oversold 1 + target 2 vs earnings within a week 1
	snap := &model.Snapshot{Price: 100, RSI: 35, ConsensusRating: "hold", TargetPrice: ptr(120.0), DaysToEarnings: ptr(6)}
	in := GenerateInsights(snap, AnalyzeOutlook(snap))
	assert.Equal(t, 3, in.BullishSignals)
	assert.Equal(t, 1, in.BearishSignals)
	assert.Equal(t, "Buy - Favorable risk/reward setup", in.Recommendation)
	assert.Equal(t, 76, in.Confidence)
	assert.Equal(t, "Technical momentum (oversold RSI) supports accumulate on dips. Analysts rate: hold.", in.Reasoning)
}

func TestEvaluate(t *testing.T) {
	snap := &model.Snapshot{Price: 100, RSI: 55, ConsensusRating: "buy", TargetPrice: ptr(110.0), UpsidePct: 10}
	a := Evaluate(snap)
	require.NotNil(t, a)
	assert.Equal(t, "Enter with conviction", a.Outlook.Action)
	assert.NotEmpty(t, a.Insight.Recommendation)
}
