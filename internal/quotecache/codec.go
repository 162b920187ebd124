package quotecache

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"StockMind/internal/domain/models"
)

// The cache persists series as CSV. Floats are written with the shortest
// exact representation and timestamps as unix nanoseconds, so a stored
// series reads back bit-identical.

var csvHeader = []string{"time", "open", "high", "low", "close", "volume"}

// EncodeSeries serializes a series to CSV bytes.
func EncodeSeries(series models.Series) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, b := range series {
		rec := []string{
			strconv.FormatInt(b.Time.UnixNano(), 10),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write bar: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSeries parses CSV bytes produced by EncodeSeries.
func DecodeSeries(data []byte) (models.Series, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty cache payload")
	}

	series := make(models.Series, 0, len(records)-1)
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: want %d columns, got %d", i, len(csvHeader), len(rec))
		}
		ns, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d time: %w", i, err)
		}
		bar := models.Bar{Time: time.Unix(0, ns).UTC()}
		if bar.Open, err = strconv.ParseFloat(rec[1], 64); err != nil {
			return nil, fmt.Errorf("row %d open: %w", i, err)
		}
		if bar.High, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, fmt.Errorf("row %d high: %w", i, err)
		}
		if bar.Low, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, fmt.Errorf("row %d low: %w", i, err)
		}
		if bar.Close, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return nil, fmt.Errorf("row %d close: %w", i, err)
		}
		if bar.Volume, err = strconv.ParseFloat(rec[5], 64); err != nil {
			return nil, fmt.Errorf("row %d volume: %w", i, err)
		}
		series = append(series, bar)
	}
	return series, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
