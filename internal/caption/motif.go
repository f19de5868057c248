package caption

import "CaptionComposer/internal/model"

// MotifColor is the accent color the web front end uses for every motif.
const MotifColor = "#219ebc"

// FallbackCaption is used when a motif has no caption pool.
const FallbackCaption = "I moved with intention, guided by the market's song."

// Motifs partition RSI into four half-open ranges; a boundary value belongs to the upper range.
var Motifs = []struct {
	MaxRSI float64
	Motif  model.Motif
}{
	{30, model.Motif{Name: "Reflection", Emoji: "🪞", Archetype: "observer", Color: MotifColor}},
	{50, model.Motif{Name: "Patience", Emoji: "🧘", Archetype: "seeker", Color: MotifColor}},
	{70, model.Motif{Name: "Clarity", Emoji: "🧭", Archetype: "navigator", Color: MotifColor}},
}

// MomentumMotif is the motif for RSI >= 70.
var MomentumMotif = model.Motif{Name: "Momentum", Emoji: "🔥", Archetype: "warrior", Color: MotifColor}

// Pools holds the caption sentences for each motif.
var Pools = map[string][]string{
	"Reflection": {
		"I stepped back to hear the market's whisper.",
		"I didn't enter. I listened to the silence between candles.",
		"I found strength in stillness, not in the storm.",
		"I turned away from noise to find the signal.",
		"I reflected not on loss, but on lessons waiting.",
		"I paused to let the market reveal its truth.",
	},
	"Patience": {
		"I waited not for price, but for peace.",
		"I held my ground while others chased shadows.",
		"I trusted the process, not the impulse.",
		"I planted seeds in silence, awaiting the harvest.",
		"I let time become my ally, not my adversary.",
		"I breathed through the uncertainty, anchored in discipline.",
	},
	"Clarity": {
		"I didn't chase the breakout. I became the rhythm.",
		"I entered with vision, not with validation.",
		"I saw the pattern before it became obvious.",
		"I moved with precision, guided by alignment.",
		"I trusted the signal that others couldn't see.",
		"I found my edge in strategic stillness.",
	},
	"Momentum": {
		"I entered with fire, not fear.",
		"I rode the wave that others doubted.",
		"I seized the moment when clarity met courage.",
		"I didn't predict the surge. I embodied it.",
		"I moved with conviction, powered by confluence.",
		"I became the momentum I was seeking.",
	},
}

// DetermineMotif maps RSI to its archetypal motif.
func DetermineMotif(rsi float64) model.Motif {
	for _, m := range Motifs {
		if rsi < m.MaxRSI {
			return m.Motif
		}
	}
	return MomentumMotif
}
