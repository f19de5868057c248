package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"CaptionComposer/internal/model"

	"github.com/dustin/go-humanize"
)

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatCaptionCard formats one analysis into a Telegram HTML message.
func FormatCaptionCard(intel *model.Intelligence) string {
	s := intel.Snapshot
	o := intel.Outlook
	var b strings.Builder

	title := html.EscapeString(s.Ticker)
	if s.Name != "" {
		title += " · " + html.EscapeString(s.Name)
	}
	b.WriteString(fmt.Sprintf("🎨 <b>Caption Composer</b> | %s\n", title))
	if s.Simulated() {
		b.WriteString(fmt.Sprintf("⚠️ <i>simulated data (%s)</i>\n", s.FallbackReason))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("💰 Price: %s | RSI: %.1f | ATR: %.2f\n", money(s.Price), s.RSI, s.ATR))
	b.WriteString(fmt.Sprintf("%s Trend: %s\n", o.TrendEmoji, html.EscapeString(o.Trend)))

	b.WriteString(fmt.Sprintf("🏦 Consensus: %s", html.EscapeString(strings.ToUpper(s.ConsensusRating))))
	if s.NumAnalysts > 0 {
		b.WriteString(fmt.Sprintf(" (%d analysts)", s.NumAnalysts))
	}
	if s.TargetPrice != nil {
		b.WriteString(fmt.Sprintf(" | Target %s (%+.1f%%)", money(*s.TargetPrice), s.UpsideToTarget()))
	}
	b.WriteString("\n")

	if s.EarningsDate != nil {
		b.WriteString(fmt.Sprintf("📅 Earnings: %s (%s)\n",
			s.EarningsDate.Format("2006-01-02"),
			humanize.RelTime(*s.EarningsDate, intel.GeneratedAt, "ago", "from now")))
	}
	if o.EarningsWarning != "" {
		b.WriteString(o.EarningsWarning + "\n")
	}

	b.WriteString(fmt.Sprintf("\n🎯 <b>Levels:</b> entry %s | exit %s | stop %s | upside %.1f%%\n",
		money(s.Entry), money(s.Exit), money(s.Stop), s.UpsidePct))
	b.WriteString(fmt.Sprintf("🧭 <b>Outlook:</b> %s\n   %s\n   Action: <b>%s</b>\n",
		o.OverallSentiment, html.EscapeString(o.Narrative), html.EscapeString(o.Action)))
	b.WriteString(fmt.Sprintf("🤖 <b>%s</b> (%d%%)\n   %s\n",
		html.EscapeString(intel.Insight.Recommendation), intel.Insight.Confidence, html.EscapeString(intel.Insight.Reasoning)))

	m := intel.Caption.Motif
	b.WriteString(fmt.Sprintf("\n🎭 %s\n", html.EscapeString(intel.Tone)))
	b.WriteString(fmt.Sprintf("%s <b>%s</b> · %s\n", m.Emoji, m.Name, m.Archetype))
	b.WriteString(fmt.Sprintf("<i>“%s”</i>\n", html.EscapeString(intel.Caption.Text)))
	b.WriteString(fmt.Sprintf("resonance %.2f", intel.Caption.Resonance))
	return b.String()
}

// FormatDigest formats the watchlist digest. failures maps ticker to error.
func FormatDigest(items []*model.Intelligence, failures map[string]error) string {
	var b strings.Builder
	date := ""
	if len(items) > 0 {
		date = " | " + items[0].GeneratedAt.Format("2006-01-02")
	}
	b.WriteString(fmt.Sprintf("📊 <b>Watchlist Digest</b>%s\n\n", date))

	for _, intel := range items {
		s := intel.Snapshot
		flag := ""
		if s.Simulated() {
			flag = " ⚠️sim"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s · RSI %.1f · %s%s\n",
			intel.Caption.Motif.Emoji, html.EscapeString(s.Ticker), money(s.Price), s.RSI,
			html.EscapeString(intel.Outlook.Action), flag))
		b.WriteString(fmt.Sprintf("   <i>%s</i>\n", html.EscapeString(intel.Caption.Text)))
	}

	if len(failures) > 0 {
		tickers := make([]string, 0, len(failures))
		for t := range failures {
			tickers = append(tickers, t)
		}
		sort.Strings(tickers)
		b.WriteString("\n❌ <b>Failed:</b>\n")
		for _, t := range tickers {
			b.WriteString(fmt.Sprintf("  %s: %s\n", html.EscapeString(t), html.EscapeString(failures[t].Error())))
		}
	}
	if len(items) == 0 && len(failures) == 0 {
		b.WriteString("Watchlist is empty.\n")
	}
	return b.String()
}
