// Package provider supplies ordered bar series to the backtest engine.
package provider

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/hindsightlabs/hindsight/internal/core"
)

// CSVProvider loads OHLCV bars from a CSV file with the columns
// timestamp,open,high,low,close,volume. A header row is detected and
// skipped. Timestamps may be RFC 3339, a plain date, or unix seconds.
type CSVProvider struct {
	Symbol   string
	Interval string
}

// Load reads and validates the bar series from path. The returned bars
// are guaranteed non-decreasing in time; a file that is out of order
// fails with core.ErrUnorderedBars instead of being silently resorted.
func (p *CSVProvider) Load(path string) ([]core.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bar file: %w", err)
	}
	defer f.Close()

	bars, err := p.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return bars, nil
}

// Read parses bars from r.
func (p *CSVProvider) Read(r io.Reader) ([]core.Bar, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var bars []core.Bar
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(record) < 6 {
			return nil, fmt.Errorf("line %d: expected 6 columns, got %d", line, len(record))
		}
		if line == 1 && isHeader(record) {
			continue
		}

		bar, err := p.parseBar(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, core.ErrNoData
	}
	if !core.Chronological(bars) {
		return nil, core.ErrUnorderedBars
	}
	return bars, nil
}

func (p *CSVProvider) parseBar(record []string) (core.Bar, error) {
	ts, err := parseTimestamp(record[0])
	if err != nil {
		return core.Bar{}, err
	}

	fields := make([]float64, 4)
	for i := 0; i < 4; i++ {
		fields[i], err = strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return core.Bar{}, fmt.Errorf("parsing price column %d: %w", i+1, err)
		}
	}
	volume, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return core.Bar{}, fmt.Errorf("parsing volume: %w", err)
	}

	bar := core.Bar{
		Symbol:   p.Symbol,
		Interval: p.Interval,
		Open:     fields[0],
		High:     fields[1],
		Low:      fields[2],
		Close:    fields[3],
		Volume:   int64(volume),
		Time:     ts,
	}
	if !bar.IsValid() {
		return core.Bar{}, fmt.Errorf("bar has non-positive prices: %v", record)
	}
	return bar, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func isHeader(record []string) bool {
	_, err := strconv.ParseFloat(record[1], 64)
	return err != nil
}
