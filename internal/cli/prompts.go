package cli

import (
	"CaptionComposer/internal/analyzer"

	"github.com/AlecAivazis/survey/v2"
)

// PromptForTicker prompts the user to enter a stock ticker symbol
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "🎯 Enter ticker symbol (e.g., IBIT, AMZN, TSLA):",
		Help:    "1-10 characters: letters, digits, and . ^ = -",
	}
	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		_, err := analyzer.NormalizeTicker(val.(string))
		return err
	}))
	if err != nil {
		return "", err
	}
	return analyzer.NormalizeTicker(ticker)
}

// PromptAnother asks whether to analyze another ticker.
func PromptAnother() (bool, error) {
	again := false
	prompt := &survey.Confirm{
		Message: "🔄 Analyze another ticker?",
		Default: false,
	}
	if err := survey.AskOne(prompt, &again); err != nil {
		return false, err
	}
	return again, nil
}
