package cli

import (
	"fmt"
	"io"
	"os"

	"CaptionComposer/internal/analyzer"
	"CaptionComposer/internal/caption"
	"CaptionComposer/internal/collector"
	"CaptionComposer/internal/config"
	"CaptionComposer/internal/logging"
	"CaptionComposer/internal/metrics"
	"CaptionComposer/internal/recorder"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "2.1"

// app carries what the subcommands share. Fields left nil are built from cfg.
type app struct {
	cfg     *config.Config
	out     io.Writer
	fetcher collector.Fetcher
	metrics *metrics.Metrics
}

func (a *app) newFetcher() collector.Fetcher {
	if a.fetcher != nil {
		return a.fetcher
	}
	ds := a.cfg.DataSource
	if ds.BaseURL != "" {
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, a.cfg.Proxy, a.cfg.Fetch.Timeout)
	}
	return collector.NewYahooFetcher(a.cfg.Proxy, a.cfg.Fetch.Timeout)
}

func (a *app) newAnalyzer() *analyzer.Analyzer {
	fetcher := a.newFetcher()
	log.Debug().Str("source", fetcher.Name()).Msg("data source selected")

	col := collector.NewCollector(fetcher, a.cfg.Fetch.Timeout, a.cfg.Fetch.LookbackDays, a.cfg.Fetch.SimulateUnknown)
	an := analyzer.New(col, caption.NewComposer(nil))
	if a.metrics != nil {
		an.Recorder = recorder.Multi{recorder.NewLogRecorder(), a.metrics}
	}
	return an
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{out: os.Stdout})
}

func newRootCmd(a *app) *cobra.Command {
	var (
		cfgPath string
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:   "composer",
		Short: "Caption Composer - trading intelligence with a poetic echo",
		Long: `Caption Composer fetches a ticker's recent price history, derives RSI, ATR
and support/resistance levels, classifies the market outlook, and renders
a motif caption that echoes the forecast tone.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg == nil {
				path := cfgPath
				if path == "" {
					path = config.Path()
				}
				cfg, err := config.Load(path)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				a.cfg = cfg
			}
			if debug {
				a.cfg.Log.Level = "debug"
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			logging.Setup(a.cfg.Log.Level, a.cfg.Log.Pretty)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return runInteractive(cmd.Context(), a)
		},
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(a),
		newInteractiveCmd(a),
		newDemoCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Configuration file path (default $CONFIG_PATH or configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.SetOut(a.out)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
