package cli

import (
	"fmt"
	"strings"
	"time"

	"CaptionComposer/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const cardWidth = 78

// UI styles
var (
	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#219ebc")).
			Padding(0, 1).
			Width(cardWidth)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB703")).
			Align(lipgloss.Center).
			Width(cardWidth - 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8ECAE6")).
			Align(lipgloss.Center).
			Width(cardWidth - 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("#023047"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(22)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	echoStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#E0E0E0")).
			Width(cardWidth - 4).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label+":"),
		lipgloss.NewStyle().Width(cardWidth-24).Render(value))
}

func dollars(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// RenderCard draws the boxed trading intelligence card.
func RenderCard(intel *model.Intelligence) string {
	s := intel.Snapshot
	o := intel.Outlook
	m := intel.Caption.Motif
	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add(titleStyle.Render("TRADING INTELLIGENCE - " + s.Ticker))
	if s.Name != "" {
		add(mutedStyle.Width(cardWidth - 2).Align(lipgloss.Center).Render(s.Name))
	}

	add(sectionStyle.Render("📊 MARKET DATA"))
	price := dollars(s.Price)
	if s.Simulated() {
		price += " (simulated)"
	}
	add(
		row("Current Price", price),
		row("RSI (14-period)", fmt.Sprintf("%.2f", s.RSI)),
		row("ATR (14-period)", fmt.Sprintf("%.2f", s.ATR)),
		row("Motif", fmt.Sprintf("%s %s (%s)", m.Emoji, m.Name, m.Archetype)),
	)

	add(sectionStyle.Render("🎯 ANALYST CONSENSUS"))
	add(row("Rating", strings.ToUpper(s.ConsensusRating)))
	if s.TargetPrice != nil {
		add(row("Price Target", fmt.Sprintf("%s (%+.1f%%)", dollars(*s.TargetPrice), s.UpsideToTarget())))
	} else {
		add(row("Price Target", "N/A"))
	}
	add(row("Analysts Covering", fmt.Sprintf("%d", s.NumAnalysts)))

	add(sectionStyle.Render("📅 EARNINGS CALENDAR"))
	if s.EarningsDate != nil {
		add(row("Next Earnings", s.EarningsDate.Format("2006-01-02")))
		if s.DaysToEarnings != nil {
			if *s.DaysToEarnings < 0 {
				add(row("Days Until", "Earnings already reported"))
			} else {
				add(row("Days Until", fmt.Sprintf("%d days (%s)", *s.DaysToEarnings,
					humanize.RelTime(*s.EarningsDate, asOf(intel), "ago", "from now"))))
			}
		}
	} else {
		add(row("Next Earnings", "Not available"))
	}

	add(sectionStyle.Render("🎲 RECOMMENDED LEVELS"))
	add(
		row("Entry Point", dollars(s.Entry)),
		row("Exit Target", dollars(s.Exit)),
		row("Stop Loss", dollars(s.Stop)),
	)
	if s.UpsidePct > 0 {
		add(row("Upside Potential", fmt.Sprintf("%.2f%%", s.UpsidePct)))
	}

	add(sectionStyle.Render("🔮 MARKET OUTLOOK"))
	add(
		row("Sentiment", o.OverallSentiment),
		row("Trend", o.TrendEmoji+" "+o.Trend),
		row("Analyst View", o.AnalystSentiment),
		row("RSI Signal", o.RSISentiment),
		row("Recommended Action", o.Action),
		row("Outlook", o.Narrative),
	)
	if o.EarningsWarning != "" {
		add(warnStyle.Render(o.EarningsWarning))
	}
	add(row("AI Insight", fmt.Sprintf("%s (%d%% confidence)", intel.Insight.Recommendation, intel.Insight.Confidence)))
	add(row("Forecast Tone", fmt.Sprintf("%q", intel.Tone)))

	add(sectionStyle.Render("✨ POETIC ECHO"))
	add(echoStyle.Render(intel.Caption.Text))
	add(mutedStyle.Render(fmt.Sprintf("resonance %.2f", intel.Caption.Resonance)))

	out := cardStyle.Render(strings.Join(lines, "\n"))
	if s.Simulated() {
		out += "\n" + warnStyle.Render(fmt.Sprintf("⚠️  Note: using simulated data (%s).", s.FallbackReason))
	}
	return out
}

// RenderCompact is the short form used by the demo.
func RenderCompact(intel *model.Intelligence) string {
	s := intel.Snapshot
	o := intel.Outlook
	m := intel.Caption.Motif
	var b strings.Builder

	b.WriteString(strings.Repeat("─", 80) + "\n")
	b.WriteString(fmt.Sprintf("🎯 %s - %s | RSI: %.2f\n", s.Ticker, dollars(s.Price), s.RSI))
	b.WriteString(fmt.Sprintf("%s %s: %q\n\n", m.Emoji, m.Name, intel.Caption.Text))
	b.WriteString(fmt.Sprintf("   %s | %s %s\n", o.OverallSentiment, o.TrendEmoji, o.Trend))
	b.WriteString(fmt.Sprintf("   → %s\n\n", o.Action))

	if s.ConsensusRating != "N/A" {
		b.WriteString("   Analyst Rating: " + strings.ToUpper(s.ConsensusRating))
		if s.TargetPrice != nil {
			b.WriteString(fmt.Sprintf(" | Target: %s (%+.1f%%)", dollars(*s.TargetPrice), s.UpsideToTarget()))
		}
		b.WriteString("\n")
	}
	if s.DaysToEarnings != nil && *s.DaysToEarnings >= 0 && s.EarningsDate != nil {
		b.WriteString(fmt.Sprintf("   Next Earnings: %s (%d days)\n", s.EarningsDate.Format("2006-01-02"), *s.DaysToEarnings))
		if o.EarningsWarning != "" {
			b.WriteString("   " + o.EarningsWarning + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("   Entry: %s | Exit: %s | Stop: %s\n", dollars(s.Entry), dollars(s.Exit), dollars(s.Stop)))
	b.WriteString(fmt.Sprintf("   Upside Potential: %.2f%%\n", s.UpsidePct))
	return b.String()
}

func asOf(intel *model.Intelligence) time.Time {
	if !intel.Snapshot.AsOf.IsZero() {
		return intel.Snapshot.AsOf
	}
	return intel.GeneratedAt
}
