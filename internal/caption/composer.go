package caption

import (
	"math/rand"

	"CaptionComposer/internal/model"
)

// RandomSource picks an index in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// globalSource uses the package-level math/rand functions, which are safe for concurrent use.
type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// Composer renders forecast tones and captions. It holds no per-request state.
type Composer struct {
	Rand RandomSource
}

// NewComposer creates a Composer. A nil source falls back to the shared global generator.
func NewComposer(src RandomSource) *Composer {
	if src == nil {
		src = globalSource{}
	}
	return &Composer{Rand: src}
}

func (c *Composer) pick(options []string) string {
	return options[c.Rand.Intn(len(options))]
}

// ForecastTone picks a tone phrase for the RSI bucket and outlook sentiment.
func (c *Composer) ForecastTone(rsi float64, sentiment string) string {
	return c.pick(TonePool(rsi, sentiment))
}

// SelectCaption picks a sentence from the motif's pool. When the tone resonates
// strongly, the pick is restricted to sentences echoing the tone's keywords.
func (c *Composer) SelectCaption(motif, tone string) string {
	pool := Pools[motif]
	if len(pool) == 0 {
		return FallbackCaption
	}
	if isResonant(resonanceHits(tone, motif)) {
		if echoes := resonantCaptions(pool, toneKeywords(tone)); len(echoes) > 0 {
			return c.pick(echoes)
		}
	}
	return c.pick(pool)
}

// Compose determines the motif for rsi and renders a caption for tone.
func (c *Composer) Compose(rsi float64, tone string) model.Caption {
	motif := DetermineMotif(rsi)
	return model.Caption{
		Motif:     motif,
		Text:      c.SelectCaption(motif.Name, tone),
		Resonance: Resonance(tone, motif.Name),
	}
}
