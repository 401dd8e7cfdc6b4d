package archive

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Lilium-longiflorum/coin/internal/backtest"
	"github.com/Lilium-longiflorum/coin/internal/core"
)

func testResult() *backtest.Result {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &backtest.Result{
		Strategy:       "rsi",
		InitialCash:    1_000_000,
		FinalValue:     1_020_000,
		Profit:         20_000,
		ROIPercent:     2.0,
		WinRatePercent: 100,
		NumTrades:      2,
		Trades: []core.Trade{
			{Index: 0, Time: at, Side: core.SideBuy, Price: 50_000_000, Quantity: 0.002, Reason: core.ReasonStrategySignal},
			{Index: 2, Time: at.Add(2 * time.Minute), Side: core.SideSell, Price: 60_000_000, Quantity: 0.002, Reason: core.ReasonTakeProfit},
		},
	}
}

func TestWriter_SaveAndLoad(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	w := NewWriter(fs)
	ctx := context.Background()

	runID, err := w.SaveRun(ctx, testResult())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a run ID")
	}

	loaded, err := w.LoadSummary(ctx, runID)
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if loaded.Strategy != "rsi" || loaded.FinalValue != 1_020_000 || loaded.NumTrades != 2 {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Trades) != 2 || loaded.Trades[1].Reason != core.ReasonTakeProfit {
		t.Errorf("trades = %+v", loaded.Trades)
	}
}

func TestWriter_TradesCSV(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	w := NewWriter(fs)
	ctx := context.Background()

	runID, err := w.SaveRun(ctx, testResult())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	data, err := fs.Get(ctx, runID+"/trades.csv")
	if err != nil {
		t.Fatalf("Get trades.csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "index,time,side,price,quantity,reason" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "BUY") || !strings.Contains(lines[2], "take_profit") {
		t.Errorf("rows = %v", lines[1:])
	}
}

func TestWriter_ListRuns(t *testing.T) {
	fs, _ := NewLocalFS(t.TempDir())
	w := NewWriter(fs)
	ctx := context.Background()

	a, _ := w.SaveRun(ctx, testResult())
	b, _ := w.SaveRun(ctx, testResult())

	runs, err := w.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %v", runs)
	}

	found := map[string]bool{}
	for _, id := range runs {
		found[id] = true
	}
	if !found[a] || !found[b] {
		t.Errorf("runs %v missing %s or %s", runs, a, b)
	}
}
