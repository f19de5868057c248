package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"CaptionComposer/internal/analyzer"
	"CaptionComposer/internal/collector"
	"CaptionComposer/internal/model"
	"CaptionComposer/internal/notifier"
	"CaptionComposer/internal/watchlist"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const sendRetries = 3

// Analyzer produces an analysis for a ticker.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*model.Intelligence, error)
}

// Sender delivers an HTML message to the configured chat.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the digest cron task and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Watchlist *watchlist.Manager
	Notifier  Sender
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, a Analyzer, wl *watchlist.Manager, s Sender) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  a,
		Watchlist: wl,
		Notifier:  s,
		Ctx:       ctx,
	}
}

// RegisterAll registers the watchlist digest.
func (s *Scheduler) RegisterAll(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunDigestNow executes the digest immediately (manual trigger / run-on-start).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Info().Msg("running watchlist digest")
	s.trySend(s.BuildDigest(s.Ctx))
}

// BuildDigest analyzes every watched ticker in order and formats one message.
func (s *Scheduler) BuildDigest(ctx context.Context) string {
	var items []*model.Intelligence
	failures := map[string]error{}
	for _, ticker := range s.Watchlist.Tickers() {
		if ctx.Err() != nil {
			failures[ticker] = ctx.Err()
			continue
		}
		intel, err := s.Analyzer.Analyze(ctx, ticker)
		if err != nil {
			log.Error().Err(err).Str("ticker", ticker).Msg("digest analysis failed")
			failures[ticker] = err
			continue
		}
		items = append(items, intel)
	}
	return notifier.FormatDigest(items, failures)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// "/caption@MyBot AAPL" in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch name {
	case "/caption":
		if arg == "" {
			return "Usage: /caption TICKER"
		}
		return s.captionReply(ctx, arg)
	case "/watchlist", "/digest":
		return s.BuildDigest(ctx)
	case "/watch":
		ticker, err := s.Watchlist.Add(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("👀 Watching %s (%d tickers)", ticker, len(s.Watchlist.Tickers()))
	case "/unwatch":
		ticker, err := s.Watchlist.Remove(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("🗑 Removed %s", ticker)
	default:
		return helpText
	}
}

const helpText = `Available commands:
• /caption TICKER - trading intelligence card
• /watchlist - digest of watched tickers
• /watch TICKER - add a ticker to the watchlist
• /unwatch TICKER - remove a ticker
• /help - this message`

func (s *Scheduler) captionReply(ctx context.Context, raw string) string {
	intel, err := s.Analyzer.Analyze(ctx, raw)
	switch {
	case err == nil:
		return notifier.FormatCaptionCard(intel)
	case errors.Is(err, analyzer.ErrInvalidTicker):
		return "❌ Invalid ticker symbol (1-10 characters)"
	case errors.Is(err, collector.ErrTickerNotFound):
		return fmt.Sprintf("❌ Unable to fetch data for %s", strings.ToUpper(raw))
	default:
		log.Error().Err(err).Str("ticker", raw).Msg("caption command failed")
		return "❌ Internal error while fetching stock data"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
