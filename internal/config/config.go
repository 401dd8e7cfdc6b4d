package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Lilium-longiflorum/coin/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Backtest BacktestConfig `mapstructure:"backtest"`
	Strategy StrategyConfig `mapstructure:"strategy"`
	Exit     ExitConfig     `mapstructure:"exit"`
	StopLoss StopLossConfig `mapstructure:"stoploss"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// BacktestConfig holds the run parameters of the simulation engine.
type BacktestConfig struct {
	InitialCash float64 `mapstructure:"initial_cash"`
	// FeeRate is the flat proportional fee in [0, 1), applied to the
	// buy notional and to sell proceeds.
	FeeRate float64 `mapstructure:"fee_rate"`
	// MinBuyNotional and MinSellQuantity are the venue minimums;
	// orders below them are skipped.
	MinBuyNotional  float64 `mapstructure:"min_buy_notional"`
	MinSellQuantity float64 `mapstructure:"min_sell_quantity"`
}

// StrategyConfig selects the strategy variant and its parameters.
type StrategyConfig struct {
	Name   string         `mapstructure:"name"`
	Params map[string]any `mapstructure:"params"`
}

// ExitConfig holds the exit thresholds shared by all variants,
// expressed in percent of unrealized gain over cost basis.
type ExitConfig struct {
	ProfitThreshold float64 `mapstructure:"profit_threshold"`
	MinProfitToSell float64 `mapstructure:"min_profit_to_sell"`
	// LossLimit enables a fixed stop-loss exit when negative; zero
	// disables it.
	LossLimit float64 `mapstructure:"loss_limit"`
}

// StopLossConfig parameterizes the sharp-decline detector. The
// lookback is either a direct candle count or a wall-clock window
// divided by the candle interval; the candle count wins when both are
// set.
type StopLossConfig struct {
	DropThreshold   float64       `mapstructure:"drop_threshold"`
	LookbackCandles int           `mapstructure:"lookback_candles"`
	LookbackWindow  time.Duration `mapstructure:"lookback_window"`
	CandleInterval  time.Duration `mapstructure:"candle_interval"`
}

// ArchiveConfig holds result-archive settings.
type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

// S3Config holds S3 connection settings for the archive.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds the prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Backtest: BacktestConfig{
			InitialCash:     1_000_000,
			FeeRate:         0.0005,
			MinBuyNotional:  5000,
			MinSellQuantity: 0.0001,
		},
		Strategy: StrategyConfig{
			Name: "rsi",
		},
		Exit: ExitConfig{
			ProfitThreshold: 3.0,
			MinProfitToSell: 0.5,
		},
		StopLoss: StopLossConfig{
			DropThreshold:  -3.0,
			LookbackWindow: 15 * time.Minute,
			CandleInterval: time.Minute,
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Type:    "localfs",
			Path:    "runs",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Backtest.InitialCash <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial_cash must be positive, got %f", c.Backtest.InitialCash))
	}
	if c.Backtest.FeeRate < 0 || c.Backtest.FeeRate >= 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("fee_rate must be in [0, 1), got %f", c.Backtest.FeeRate))
	}
	if c.Backtest.MinBuyNotional < 0 || c.Backtest.MinSellQuantity < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("venue minimums cannot be negative"))
	}

	if c.Strategy.Name == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("strategy name is required"))
	}

	if c.Exit.LossLimit > 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("loss_limit must be negative (or zero to disable), got %f", c.Exit.LossLimit))
	}

	if c.StopLoss.DropThreshold > 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("stoploss drop_threshold must be negative, got %f", c.StopLoss.DropThreshold))
	}
	if c.StopLoss.LookbackCandles == 0 && c.StopLoss.CandleInterval <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("stoploss needs lookback_candles or a positive candle_interval"))
	}

	switch c.Archive.Type {
	case "localfs", "s3":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("archive type must be localfs or s3, got %q", c.Archive.Type))
	}
	if c.Archive.Enabled && c.Archive.Type == "s3" && c.Archive.S3.Bucket == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("s3 bucket required when archive type is s3"))
	}

	return nil
}
