package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// EnvPrefix prefixes every environment override, e.g. COMPOSER_SERVER_ADDR.
const EnvPrefix = "COMPOSER"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr" validate:"required"`
		StaticDir    string        `yaml:"static_dir" split_words:"true"`
		ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true" validate:"gt=0"`
		WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true" validate:"gt=0"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL string `yaml:"base_url" split_words:"true" validate:"omitempty,url"`
		APIKey  string `yaml:"api_key" split_words:"true"`
	} `yaml:"data_source" split_words:"true"`
	Fetch struct {
		Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
		LookbackDays    int           `yaml:"lookback_days" split_words:"true" validate:"gte=15"`
		SimulateUnknown bool          `yaml:"simulate_unknown" split_words:"true"`
	} `yaml:"fetch"`
	Telegram struct {
		BotToken string `yaml:"bot_token" split_words:"true"`
		ChatID   int64  `yaml:"chat_id" split_words:"true"`
	} `yaml:"telegram"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron" split_words:"true" validate:"required"`
	} `yaml:"schedule"`
	Watchlist struct {
		Tickers []string `yaml:"tickers" validate:"dive,required,max=10"`
	} `yaml:"watchlist"`
	Log struct {
		Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Fetch.Timeout = 8 * time.Second
	cfg.Fetch.LookbackDays = 90
	cfg.Fetch.SimulateUnknown = true
	cfg.Schedule.DigestCron = "0 0 8 * * 1-5"
	cfg.Watchlist.Tickers = []string{"AAPL", "NVDA", "MSFT"}
	cfg.Log.Level = "info"
	return cfg
}

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads config from a YAML file layered over defaults, then applies
// .env and environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	// conventional proxy variable
	if cfg.Proxy == "" {
		cfg.Proxy = os.Getenv("HTTPS_PROXY")
	}

	for i, t := range cfg.Watchlist.Tickers {
		cfg.Watchlist.Tickers[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	return cfg, nil
}

var validate = validator.New()

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks field constraints and the digest schedule.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s fails %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cronParser.Parse(c.Schedule.DigestCron); err != nil {
		return fmt.Errorf("schedule.digest_cron: %w", err)
	}
	return nil
}

// ValidateTelegram checks the settings the watch mode needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
