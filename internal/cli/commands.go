package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"CaptionComposer/internal/analyzer"
	"CaptionComposer/internal/api"
	"CaptionComposer/internal/collector"
	"CaptionComposer/internal/metrics"
	"CaptionComposer/internal/notifier"
	"CaptionComposer/internal/scheduler"
	"CaptionComposer/internal/watchlist"

	"github.com/AlecAivazis/survey/v2/terminal"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var demoTickers = []string{"AAPL", "NVDA"}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze TICKER",
		Short: "Print the trading intelligence card for a ticker",
		Example: `  composer analyze IBIT
  composer analyze aapl --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intel, err := a.newAnalyzer().Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(api.NewCaptionResponse(intel))
			}
			fmt.Fprintln(cmd.OutOrStdout(), RenderCard(intel))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API JSON record instead of the card")
	return cmd
}

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for tickers and print their cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), a)
		},
	}
}

func runInteractive(ctx context.Context, a *app) error {
	out := a.out
	an := a.newAnalyzer()
	fmt.Fprintln(out, titleStyle.Render("✨ Caption Composer - Trading Intelligence ✨"))
	fmt.Fprintln(out, "Welcome, Trader. Let us weave your market moment into myth.")
	fmt.Fprintln(out)

	for {
		ticker, err := PromptForTicker()
		if errors.Is(err, terminal.InterruptErr) {
			fmt.Fprintln(out, mutedStyle.Render("⚠️  Ceremony interrupted. May you find clarity in silence."))
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("🔮 Fetching comprehensive market intelligence for %s...", ticker)))
		intel, err := an.Analyze(ctx, ticker)
		switch {
		case errors.Is(err, collector.ErrTickerNotFound):
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("⚠️  Could not fetch data for %s. Please check the ticker symbol.", ticker)))
		case err != nil:
			return err
		default:
			fmt.Fprintln(out, RenderCard(intel))
			fmt.Fprintln(out, "✨ May your trades be guided by wisdom, not whim. ✨")
		}

		again, err := PromptAnother()
		if errors.Is(err, terminal.InterruptErr) || (err == nil && !again) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Compact intelligence for a few example tickers",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			an := a.newAnalyzer()
			fmt.Fprintln(out, "Caption Composer - Demo Mode (Comprehensive Intelligence)")
			fmt.Fprintln(out)
			for _, ticker := range demoTickers {
				intel, err := an.Analyze(cmd.Context(), ticker)
				if err != nil {
					fmt.Fprintf(out, "⚠️  Could not generate intelligence for %s: %v\n\n", ticker, err)
					continue
				}
				fmt.Fprintln(out, RenderCompact(intel))
			}
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP caption API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			if a.metrics == nil {
				a.metrics = metrics.New()
			}
			handler := api.SetupRoutes(api.NewHandler(a.newAnalyzer()), a.metrics, a.cfg.Server.StaticDir)
			srv := api.NewServer(api.ServerConfig{
				Addr:         a.cfg.Server.Addr,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			}, handler)

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Send scheduled watchlist digests and answer Telegram commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateTelegram(); err != nil {
				return err
			}
			wl, err := watchlist.NewManager(a.cfg.Watchlist.Tickers, analyzer.NormalizeTicker)
			if err != nil {
				return fmt.Errorf("watchlist: %w", err)
			}
			tn, err := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			sched := scheduler.NewScheduler(ctx, a.newAnalyzer(), wl, tn)
			if err := sched.RegisterAll(a.cfg.Schedule.DigestCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Info().Strs("watchlist", wl.Tickers()).Str("cron", a.cfg.Schedule.DigestCron).Msg("watching")

			if runNow {
				go sched.RunDigestNow()
			}

			<-ctx.Done()
			log.Info().Msg("shutdown signal received, stopping")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "Send a digest immediately on start")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Caption Composer v%s\n", version)
		},
	}
}
