package caption

import (
	"math"
	"strings"
)

// tonePair holds the phrases for one RSI bucket, split by whether the outlook leans the bucket's way.
type tonePair struct {
	MaxRSI  float64
	Leaning []string
	Other   []string
}

// toneTable: below 70 the leaning set is chosen for bullish outlooks; at 70 and
// above it is chosen for bearish or conflicting ones.
var toneTable = []tonePair{
	{
		MaxRSI: 30,
		Leaning: []string{
			"Deep value emerging from shadows, patience rewarded",
			"Oversold whispers of reversal, strategic accumulation beckons",
			"Market fear creates opportunity, silence before the surge",
			"Contrarian clarity in capitulation, foundation for ascent",
		},
		Other: []string{
			"Reflective stillness with patient observation",
			"Deep introspection meets strategic pause",
			"Caution in oversold territory, await confirmation",
			"Silence before clarity, patience before action",
		},
	},
	{
		MaxRSI: 50,
		Leaning: []string{
			"Strategic clarity with cinematic rhythm, momentum gathering",
			"Balanced discipline meets bullish conviction",
			"Patient alignment with analyst optimism, confluence building",
			"Consolidation before expansion, spring coiling",
		},
		Other: []string{
			"Neutral consolidation, strategic patience required",
			"Balanced discipline with focused observation",
			"Patient alignment awaiting clearer catalyst",
			"Measured caution in transitional phase",
		},
	},
	{
		MaxRSI: 70,
		Leaning: []string{
			"Clear signal alignment with precision, trend confirmed",
			"Strategic clarity meets confident execution, ride the wave",
			"Vision crystallizing into powerful momentum",
			"Bullish confluence with technical strength, trust the trend",
		},
		Other: []string{
			"Momentum strong but mixed signals, trailing stops advised",
			"Technical strength with fundamental caution",
			"Rising price meets analyst skepticism, stay nimble",
			"Clear trend but approach targets, consider scaling",
		},
	},
}

var overboughtTones = tonePair{
	Leaning: []string{
		"Overbought euphoria meets reality check, caution warranted",
		"Extended rally with warning signs, profit-taking zone",
		"Fire peaks but oxygen thins, strategic exit considered",
		"Powerful surge approaching exhaustion, lock in gains",
	},
	Other: []string{
		"Momentum surge with disciplined conviction, strength on strength",
		"Fire meets focus in perfect timing, let winners run",
		"Powerful surge with analyst support, managed aggression",
		"Overbought but supported, tight stops on continued strength",
	},
}

// plainTones are used when no outlook is available.
var plainTones = []struct {
	MaxRSI float64
	Tones  []string
}{
	{30, []string{
		"Reflective stillness with patient observation",
		"Deep introspection meets strategic pause",
		"Silence before clarity, patience before action",
	}},
	{50, []string{
		"Strategic clarity with cinematic rhythm",
		"Balanced discipline with focused intention",
		"Patient alignment awaiting confluence",
	}},
	{70, []string{
		"Clear signal alignment with precision",
		"Strategic clarity meets confident execution",
		"Vision crystallizing into momentum",
	}},
	{math.Inf(1), []string{
		"Momentum surge with disciplined conviction",
		"Fire meets focus in perfect timing",
		"Powerful surge with strategic clarity",
	}},
}

// TonePool returns the candidate forecast tones for an RSI and overall
// sentiment. An empty sentiment selects the plain per-bucket phrases.
func TonePool(rsi float64, sentiment string) []string {
	if sentiment == "" {
		for _, p := range plainTones {
			if rsi < p.MaxRSI {
				return p.Tones
			}
		}
		return plainTones[len(plainTones)-1].Tones
	}

	for _, p := range toneTable {
		if rsi < p.MaxRSI {
			if strings.Contains(sentiment, "Bullish") {
				return p.Leaning
			}
			return p.Other
		}
	}
	if strings.Contains(sentiment, "Bearish") || strings.Contains(sentiment, "Conflicting") {
		return overboughtTones.Leaning
	}
	return overboughtTones.Other
}
