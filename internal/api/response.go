package api

import (
	"CaptionComposer/internal/model"
)

// CaptionResponse is the JSON record returned by the caption endpoints.
type CaptionResponse struct {
	Ticker            string       `json:"ticker"`
	Name              string       `json:"name,omitempty"`
	Price             float64      `json:"price"`
	RSI               float64      `json:"rsi"`
	ATR               float64      `json:"atr"`
	DataSource        string       `json:"dataSource"`
	Motif             MotifView    `json:"motif"`
	TrendPhase        TrendView    `json:"trendPhase"`
	Sentiment         string       `json:"sentiment"`
	ForecastTone      string       `json:"forecastTone"`
	Caption           string       `json:"caption"`
	Resonance         float64      `json:"resonance"`
	Consensus         string       `json:"consensus"`
	NumAnalysts       int          `json:"numAnalysts"`
	TargetPrice       float64      `json:"targetPrice"`
	Upside            float64      `json:"upside"`
	EarningsDate      string       `json:"earningsDate"`
	DaysUntilEarnings *int         `json:"daysUntilEarnings"`
	Entry             float64      `json:"entry"`
	Exit              float64      `json:"exit"`
	Stop              float64      `json:"stop"`
	UpsidePotential   float64      `json:"upsidePotential"`
	AnalystView       string       `json:"analystView"`
	RSISignal         string       `json:"rsiSignal"`
	RecommendedAction string       `json:"recommendedAction"`
	Outlook           string       `json:"outlook"`
	EarningsWarning   string       `json:"earningsWarning,omitempty"`
	AIInsights        InsightsView `json:"aiInsights"`
}

type MotifView struct {
	Emoji     string `json:"emoji"`
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
	Color     string `json:"color"`
}

type TrendView struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

type InsightsView struct {
	Recommendation string `json:"recommendation"`
	Confidence     int    `json:"confidence"`
	Reasoning      string `json:"reasoning"`
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewCaptionResponse flattens an analysis into the wire record. Without an
// analyst target the target price echoes the current price.
func NewCaptionResponse(intel *model.Intelligence) CaptionResponse {
	s := intel.Snapshot
	target := s.Price
	if s.TargetPrice != nil {
		target = *s.TargetPrice
	}
	earnings := "N/A"
	if s.EarningsDate != nil {
		earnings = s.EarningsDate.Format("2006-01-02")
	}

	return CaptionResponse{
		Ticker:     s.Ticker,
		Name:       s.Name,
		Price:      s.Price,
		RSI:        s.RSI,
		ATR:        s.ATR,
		DataSource: string(s.DataSource),
		Motif: MotifView{
			Emoji:     intel.Caption.Motif.Emoji,
			Name:      intel.Caption.Motif.Name,
			Archetype: intel.Caption.Motif.Archetype,
			Color:     intel.Caption.Motif.Color,
		},
		TrendPhase: TrendView{
			Emoji: intel.Outlook.TrendEmoji,
			Name:  intel.Outlook.Trend,
		},
		Sentiment:         intel.Outlook.OverallSentiment,
		ForecastTone:      intel.Tone,
		Caption:           intel.Caption.Text,
		Resonance:         intel.Caption.Resonance,
		Consensus:         s.ConsensusRating,
		NumAnalysts:       s.NumAnalysts,
		TargetPrice:       target,
		Upside:            s.UpsideToTarget(),
		EarningsDate:      earnings,
		DaysUntilEarnings: s.DaysToEarnings,
		Entry:             s.Entry,
		Exit:              s.Exit,
		Stop:              s.Stop,
		UpsidePotential:   s.UpsidePct,
		AnalystView:       intel.Outlook.AnalystSentiment,
		RSISignal:         intel.Outlook.RSISentiment,
		RecommendedAction: intel.Outlook.Action,
		Outlook:           intel.Outlook.Narrative,
		EarningsWarning:   intel.Outlook.EarningsWarning,
		AIInsights: InsightsView{
			Recommendation: intel.Insight.Recommendation,
			Confidence:     intel.Insight.Confidence,
			Reasoning:      intel.Insight.Reasoning,
		},
	}
}
