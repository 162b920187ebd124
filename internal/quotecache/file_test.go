package quotecache

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"StockMind/internal/domain/models"
	"StockMind/internal/domain/repository"
)

func sampleSeries() models.Series {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return models.Series{
		{Time: start, Open: 101.5, High: 103.25, Low: 100.1, Close: 102.75, Volume: 120000},
		{Time: start.AddDate(0, 0, 1), Open: 102.75, High: 104, Low: 101, Close: 103.333333333333, Volume: 98000},
		{Time: start.AddDate(0, 0, 2), Open: 103, High: 105.5, Low: 102.2, Close: 1.0 / 3.0, Volume: 150000},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	in := sampleSeries()
	data, err := EncodeSeries(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeSeries(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d bars, got %d", len(in), len(out))
	}
	for i := range in {
		if !out[i].Time.Equal(in[i].Time) {
			t.Fatalf("bar %d: time %v != %v", i, out[i].Time, in[i].Time)
		}
		// Shortest exact float formatting makes values bit-identical.
		if out[i].Close != in[i].Close || out[i].Open != in[i].Open ||
			out[i].High != in[i].High || out[i].Low != in[i].Low ||
			out[i].Volume != in[i].Volume {
			t.Fatalf("bar %d: %+v != %+v", i, out[i], in[i])
		}
	}
}

func TestCodecExtremeValues(t *testing.T) {
	in := models.Series{
		{Time: time.Unix(0, 1).UTC(), Open: math.SmallestNonzeroFloat64, High: math.MaxFloat64, Low: 1e-300, Close: 1e300, Volume: 0},
	}
	data, err := EncodeSeries(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeSeries(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out[0] != in[0] {
		t.Fatalf("round trip changed bar: %+v != %+v", out[0], in[0])
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeSeries([]byte("")); err == nil {
		t.Fatal("expected error on empty payload")
	}
	if _, err := DecodeSeries([]byte("time,open,high,low,close,volume\nnot-a-number,1,2,3,4,5\n")); err == nil {
		t.Fatal("expected error on bad timestamp")
	}
}

func TestFileStorePutGet(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	in := sampleSeries()

	before := time.Now().Add(-time.Second)
	if err := store.Put(ctx, "TCS.NS", in); err != nil {
		t.Fatalf("put: %v", err)
	}

	out, writtenAt, err := store.Get(ctx, "TCS.NS")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d bars, got %d", len(in), len(out))
	}
	if writtenAt.Before(before) {
		t.Fatalf("write time %v predates the put", writtenAt)
	}
}

func TestFileStoreMiss(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, _, err = store.Get(context.Background(), "NEVER")
	if !errors.Is(err, repository.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "TCS", sampleSeries()[:1]); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "TCS", sampleSeries()); err != nil {
		t.Fatalf("second put: %v", err)
	}

	out, _, err := store.Get(ctx, "TCS")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("last write must win, got %d bars", len(out))
	}
}
