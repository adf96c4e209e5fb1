package models

import "testing"

func TestCandleValid(t *testing.T) {
	ok := Candle{Open: 100, High: 105, Low: 98, Close: 103}
	if !ok.Valid() {
		t.Error("normal candle must be valid")
	}
	// doji с равными краями тоже валиден
	doji := Candle{Open: 100, High: 100, Low: 100, Close: 100}
	if !doji.Valid() {
		t.Error("flat doji must be valid")
	}
	badHigh := Candle{Open: 100, High: 99, Low: 95, Close: 100}
	if badHigh.Valid() {
		t.Error("high below max(open, close) must be invalid")
	}
	badLow := Candle{Open: 100, High: 105, Low: 101, Close: 103}
	if badLow.Valid() {
		t.Error("low above min(open, close) must be invalid")
	}
}

func TestCandleDirection(t *testing.T) {
	up := Candle{Open: 100, Close: 101, High: 101, Low: 100}
	if !up.Bullish() || up.Bearish() {
		t.Error("close > open must be bullish")
	}
	down := Candle{Open: 101, Close: 100, High: 101, Low: 100}
	if !down.Bearish() || down.Bullish() {
		t.Error("close < open must be bearish")
	}
	flat := Candle{Open: 100, Close: 100, High: 100, Low: 100}
	if flat.Bullish() || flat.Bearish() {
		t.Error("close == open is neither bullish nor bearish")
	}
}

func TestFairValueGapContains(t *testing.T) {
	g := FairValueGap{Bottom: 100, Top: 120}
	for _, px := range []float64{100, 110, 120} {
		if !g.Contains(px) {
			t.Errorf("price %.0f must be inside [100, 120]", px)
		}
	}
	for _, px := range []float64{99.9, 120.1} {
		if g.Contains(px) {
			t.Errorf("price %.1f must be outside [100, 120]", px)
		}
	}
}

func TestNewSessionState(t *testing.T) {
	st := NewSessionState(100000, "2026-08-28")
	if st.Equity != 100000 || st.PeakBalance != 100000 {
		t.Errorf("fresh session: equity=%f peak=%f, want 100000/100000", st.Equity, st.PeakBalance)
	}
	if st.DailyPnlPoints != 0 || st.TradesToday != 0 || st.ConsecutiveLosses != 0 {
		t.Error("fresh session must have zero counters")
	}
	if st.IsPaused || st.IsWeeklyLocked {
		t.Error("fresh session must not be paused or locked")
	}
	if st.SessionDate != "2026-08-28" {
		t.Errorf("session date = %s", st.SessionDate)
	}
}
