package caption

import (
	"math"
	"strings"

	"CaptionComposer/internal/calculator"
)

// toneCategory is a tone name and the vocabulary that echoes it.
type toneCategory struct {
	Name     string
	Keywords []string
}

// ToneCategories is the tone keyword map used for resonance scoring.
var ToneCategories = []toneCategory{
	{"strategic", []string{"precision", "alignment", "vision", "pattern"}},
	{"cinematic", []string{"rhythm", "scene", "moment", "wave"}},
	{"clarity", []string{"signal", "truth", "vision", "pattern"}},
	{"momentum", []string{"surge", "fire", "power", "conviction"}},
	{"discipline", []string{"ground", "process", "anchor", "stillness"}},
	{"reflection", []string{"whisper", "silence", "stillness", "lesson"}},
}

const (
	baseResonance  = 0.5
	resonanceStep  = 0.1
	resonanceLimit = 1.0
	resonantHits   = 3
)

// resonanceHits counts keyword matches in the tone for every category named in
// the tone or the motif. A keyword shared by two active categories counts twice.
func resonanceHits(tone, motif string) int {
	toneLower := strings.ToLower(tone)
	motifLower := strings.ToLower(motif)
	hits := 0
	for _, c := range ToneCategories {
		if !strings.Contains(toneLower, c.Name) && !strings.Contains(motifLower, c.Name) {
			continue
		}
		for _, kw := range c.Keywords {
			if strings.Contains(toneLower, kw) {
				hits++
			}
		}
	}
	return hits
}

func scoreHits(hits int) float64 {
	return math.Min(baseResonance+float64(hits)*resonanceStep, resonanceLimit)
}

// Resonance scores how well a forecast tone echoes a motif, in [0.5, 1.0].
func Resonance(tone, motif string) float64 {
	return calculator.Round2(scoreHits(resonanceHits(tone, motif)))
}

// isResonant reports whether hits lift the score above 0.7; two hits land exactly on it.
func isResonant(hits int) bool {
	return hits >= resonantHits
}

// toneKeywords returns every keyword, from any category, that appears in the tone.
func toneKeywords(tone string) []string {
	toneLower := strings.ToLower(tone)
	var found []string
	for _, c := range ToneCategories {
		for _, kw := range c.Keywords {
			if strings.Contains(toneLower, kw) {
				found = append(found, kw)
			}
		}
	}
	return found
}

// resonantCaptions keeps the sentences that contain at least one of the keywords.
func resonantCaptions(pool, keywords []string) []string {
	var out []string
	for _, sentence := range pool {
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, sentence)
				break
			}
		}
	}
	return out
}
