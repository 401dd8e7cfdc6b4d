package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Lilium-longiflorum/coin/internal/backtest"
	"github.com/Lilium-longiflorum/coin/internal/core"
)

// Writer archives finished backtest runs. Each run gets a generated
// ID and two objects under it: summary.json with the scalar results
// and trades.csv with the full trade log.
type Writer struct {
	storage Storage
}

// NewWriter creates a run writer over the given backend.
func NewWriter(storage Storage) *Writer {
	return &Writer{storage: storage}
}

// SaveRun persists the result and returns the generated run ID.
func (w *Writer) SaveRun(ctx context.Context, result *backtest.Result) (string, error) {
	runID := uuid.NewString()

	summary, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	if err := w.storage.Put(ctx, runID+"/summary.json", summary); err != nil {
		return "", err
	}

	if err := w.storage.Put(ctx, runID+"/trades.csv", tradesCSV(result.Trades)); err != nil {
		return "", err
	}
	return runID, nil
}

// LoadSummary reads back the summary of an archived run.
func (w *Writer) LoadSummary(ctx context.Context, runID string) (*backtest.Result, error) {
	data, err := w.storage.Get(ctx, runID+"/summary.json")
	if err != nil {
		return nil, err
	}

	var result backtest.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	return &result, nil
}

// ListRuns returns the IDs of all archived runs.
func (w *Writer) ListRuns(ctx context.Context) ([]string, error) {
	keys, err := w.storage.List(ctx, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var runs []string
	for _, key := range keys {
		for i := 0; i < len(key); i++ {
			if key[i] == '/' {
				id := key[:i]
				if !seen[id] {
					seen[id] = true
					runs = append(runs, id)
				}
				break
			}
		}
	}
	return runs, nil
}

func tradesCSV(trades []core.Trade) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"index", "time", "side", "price", "quantity", "reason"})
	for _, t := range trades {
		_ = w.Write([]string{
			strconv.Itoa(t.Index),
			t.Time.Format(time.RFC3339),
			string(t.Side),
			formatFloat(t.Price),
			formatFloat(t.Quantity),
			string(t.Reason),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
