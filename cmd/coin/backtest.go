package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lilium-longiflorum/coin/internal/archive"
	"github.com/Lilium-longiflorum/coin/internal/backtest"
	"github.com/Lilium-longiflorum/coin/internal/config"
	"github.com/Lilium-longiflorum/coin/internal/dataset"
	"github.com/Lilium-longiflorum/coin/internal/logger"
	"github.com/Lilium-longiflorum/coin/internal/strategy/factory"
)

var (
	backtestData    string
	backtestArchive bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy against historical candles",
	Long:  "Replay a candle CSV through the configured strategy and print the performance summary",
	RunE:  runBacktestCmd,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestData, "data", "", "candle CSV file (required)")
	backtestCmd.Flags().BoolVar(&backtestArchive, "archive", false, "archive the run result")

	backtestCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(backtestCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Defaults(), nil
	}
	return config.Load(cfgFile)
}

func buildStorage(cfg *config.Config) (archive.Storage, error) {
	if cfg.Archive.Type == "s3" {
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		}), nil
	}
	return archive.NewLocalFS(cfg.Archive.Path)
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Must(debug)
	defer log.Sync()

	candles, err := dataset.LoadCSV(backtestData)
	if err != nil {
		return err
	}
	log.Info("candles loaded",
		zap.String("file", backtestData),
		zap.Int("count", len(candles)),
	)

	strat, err := factory.New(cfg)
	if err != nil {
		return err
	}

	engine := backtest.New(backtest.Config{
		InitialCash:     cfg.Backtest.InitialCash,
		FeeRate:         cfg.Backtest.FeeRate,
		MinBuyNotional:  cfg.Backtest.MinBuyNotional,
		MinSellQuantity: cfg.Backtest.MinSellQuantity,
	}, log)

	result, err := engine.Run(cmd.Context(), strat, candles)
	if err != nil {
		return err
	}

	printResult(result, strat.Description())

	if backtestArchive || cfg.Archive.Enabled {
		storage, err := buildStorage(cfg)
		if err != nil {
			return err
		}
		runID, err := archive.NewWriter(storage).SaveRun(cmd.Context(), result)
		if err != nil {
			return err
		}
		fmt.Printf("\nArchived as run %s\n", runID)
	}

	return nil
}

func printResult(r *backtest.Result, description string) {
	fmt.Println("=== Backtest Result ===")
	fmt.Printf("Strategy:      %s (%s)\n", r.Strategy, description)
	fmt.Printf("Initial cash:  %.2f\n", r.InitialCash)
	fmt.Printf("Final value:   %.2f\n", r.FinalValue)
	fmt.Printf("Profit:        %.2f (%.2f%%)\n", r.Profit, r.ROIPercent)
	fmt.Printf("Max drawdown:  %.2f%%\n", r.MDDPercent)
	fmt.Printf("Win rate:      %.2f%%\n", r.WinRatePercent)
	fmt.Printf("Trades:        %d\n", r.NumTrades)
	if r.StrategyErrors > 0 {
		fmt.Printf("Degraded steps:  %d\n", r.StrategyErrors)
	}
	if r.OrdersRejected > 0 {
		fmt.Printf("Rejected orders: %d\n", r.OrdersRejected)
	}
}
