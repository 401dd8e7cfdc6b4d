// Package dataset loads candle series from local files.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Lilium-longiflorum/coin/internal/core"
)

// timestampFormats are tried in order after the numeric unix forms.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads a candle series from a CSV file with columns
// timestamp,open,high,low,close,volume. Timestamps may be unix seconds,
// unix milliseconds, or a datetime string; a header row is detected and
// skipped. The rows must already be in chronological order, which the
// engine verifies before a run.
func LoadCSV(path string) ([]core.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(core.ErrInvalidData, err)
	}
	defer f.Close()

	candles, err := readCSV(f)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, core.WrapErrorf(core.ErrNoData, "no candle rows in %s", path)
	}
	return candles, nil
}

func readCSV(r io.Reader) ([]core.Candle, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var candles []core.Candle
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.WrapError(core.ErrInvalidData, err)
		}
		row++

		// First row may be a header; sniff by trying the open column.
		if row == 1 && len(record) > 1 {
			if _, err := strconv.ParseFloat(record[1], 64); err != nil {
				continue
			}
		}

		if len(record) < 6 {
			return nil, core.WrapErrorf(core.ErrInvalidData, "row %d: want 6 columns, got %d", row, len(record))
		}

		candle, err := parseRecord(record)
		if err != nil {
			return nil, core.WrapErrorf(core.ErrInvalidData, "row %d: %v", row, err)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func parseRecord(record []string) (core.Candle, error) {
	ts, err := parseTimestamp(record[0])
	if err != nil {
		return core.Candle{}, err
	}

	fields := [5]float64{}
	for i, name := range [5]string{"open", "high", "low", "close", "volume"} {
		v, err := strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return core.Candle{}, core.WrapErrorf(core.ErrInvalidData, "invalid %s %q", name, record[i+1])
		}
		fields[i] = v
	}

	return core.Candle{
		Time:   ts,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}

// parseTimestamp accepts unix seconds, unix milliseconds, or a
// datetime string.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ts > 10_000_000_000 {
			return time.UnixMilli(ts).UTC(), nil
		}
		return time.Unix(ts, 0).UTC(), nil
	}

	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, core.WrapErrorf(core.ErrInvalidData, "unparseable timestamp %q", s)
}
