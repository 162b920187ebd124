package models

import (
	"math"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		{Time: t0.AddDate(0, 0, 2), Close: 103},
		{Time: t0, Close: 100},
		{Time: t0.AddDate(0, 0, 1), Close: math.NaN()},
		{Time: t0.AddDate(0, 0, 2), Close: 104}, // duplicate, last wins
		{Time: t0.AddDate(0, 0, 3), Close: math.Inf(1)},
	}

	out := s.Sanitize()
	if len(out) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(out))
	}
	if !out[0].Time.Equal(t0) || out[0].Close != 100 {
		t.Fatalf("unexpected first bar: %+v", out[0])
	}
	if out[1].Close != 104 {
		t.Fatalf("duplicate timestamp must keep the later bar, got %+v", out[1])
	}
	for i := 1; i < len(out); i++ {
		if !out[i-1].Time.Before(out[i].Time) {
			t.Fatalf("timestamps not strictly increasing at %d", i)
		}
	}
}

func TestTail(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s := make(Series, 10)
	for i := range s {
		s[i] = Bar{Time: t0.AddDate(0, 0, i), Close: float64(i)}
	}
	if got := s.Tail(3); len(got) != 3 || got[0].Close != 7 {
		t.Fatalf("unexpected tail: %+v", got)
	}
	if got := s.Tail(20); len(got) != 10 {
		t.Fatalf("tail longer than series must return everything, got %d", len(got))
	}
}

func TestLastClose(t *testing.T) {
	if got := (Series{}).LastClose(); got != 0 {
		t.Fatalf("empty series close: %v", got)
	}
	s := Series{{Close: 1}, {Close: 2.5}}
	if got := s.LastClose(); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
}
