package helper

import (
	"math"
	"testing"

	"smc_bot/internal/models"
)

func TestNormTF(t *testing.T) {
	cases := map[string]models.Timeframe{
		"1m":        models.TF1m,
		"5m":        models.TF5m,
		"15m":       models.TF15m,
		"1h":        models.TF1h,
		"60m":       models.TF1h,
		"candle5m":  models.TF5m,
		" 15M ":     models.TF15m,
		"мусор":     models.TF1m,
		"":          models.TF1m,
		"candle60m": models.TF1h,
	}
	for raw, want := range cases {
		if got := NormTF(raw); got != want {
			t.Errorf("NormTF(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestBucketStart(t *testing.T) {
	if got := BucketStart(125, 60); got != 120 {
		t.Errorf("BucketStart(125, 60) = %d, want 120", got)
	}
	if got := BucketStart(120, 60); got != 120 {
		t.Errorf("BucketStart(120, 60) = %d, want 120", got)
	}
	if got := BucketStart(3599, 3600); got != 0 {
		t.Errorf("BucketStart(3599, 3600) = %d, want 0", got)
	}
	// нулевой бакет не трогает значение
	if got := BucketStart(77, 0); got != 77 {
		t.Errorf("BucketStart(77, 0) = %d, want 77", got)
	}
}

func TestRoundToBucket(t *testing.T) {
	if got := RoundToBucket(6004.0, 10); got != 6000.0 {
		t.Errorf("RoundToBucket(6004, 10) = %f, want 6000", got)
	}
	if got := RoundToBucket(6006.0, 10); got != 6010.0 {
		t.Errorf("RoundToBucket(6006, 10) = %f, want 6010", got)
	}
	if got := RoundToBucket(97.0, 5); got != 95.0 {
		t.Errorf("RoundToBucket(97, 5) = %f, want 95", got)
	}
	if got := RoundToBucket(123.0, 0); got != 123.0 {
		t.Errorf("RoundToBucket(123, 0) = %f, want 123", got)
	}
}

func TestRoundToTick(t *testing.T) {
	const eps = 1e-9
	if got := RoundDownToTick(100.07, 0.05); math.Abs(got-100.05) > eps {
		t.Errorf("RoundDownToTick = %f, want 100.05", got)
	}
	if got := RoundUpToTick(100.01, 0.05); math.Abs(got-100.05) > eps {
		t.Errorf("RoundUpToTick = %f, want 100.05", got)
	}
	// цена на сетке не двигается ни вниз, ни вверх
	if got := RoundDownToTick(100.10, 0.05); math.Abs(got-100.10) > eps {
		t.Errorf("RoundDownToTick on grid = %f, want 100.10", got)
	}
	if got := RoundUpToTick(100.10, 0.05); math.Abs(got-100.10) > eps {
		t.Errorf("RoundUpToTick on grid = %f, want 100.10", got)
	}
}
