package service

import (
	"testing"
	"time"
)

func TestInWindow(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"middle", time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC), true},
		{"start boundary", time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC), true},
		{"end boundary", time.Date(2026, 8, 28, 20, 30, 0, 0, time.UTC), true},
		{"before", time.Date(2026, 8, 28, 17, 59, 0, 0, time.UTC), false},
		{"after", time.Date(2026, 8, 28, 20, 31, 0, 0, time.UTC), false},
		{"morning", time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		got, err := InWindow(c.at, "18:00", "20:30", "UTC")
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: InWindow = %v, want %v", c.name, got, c.want)
		}
	}
}

// границы окна трактуются в зоне окна, а не в зоне времени вызова
func TestInWindowTimezone(t *testing.T) {
	// 13:30 UTC = 19:00 IST
	at := time.Date(2026, 8, 28, 13, 30, 0, 0, time.UTC)
	got, err := InWindow(at, "18:00", "20:30", "Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("13:30 UTC is inside the 18:00-20:30 IST window")
	}
}

func TestInWindowBadInput(t *testing.T) {
	at := time.Now()
	if _, err := InWindow(at, "18:00", "20:30", "Nowhere/Nope"); err == nil {
		t.Error("unknown timezone must error")
	}
	if _, err := InWindow(at, "25:00", "20:30", "UTC"); err == nil {
		t.Error("bad hour must error")
	}
	if _, err := InWindow(at, "18:00", "20-30", "UTC"); err == nil {
		t.Error("bad format must error")
	}
}

func TestSessionDate(t *testing.T) {
	at := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)
	if got := SessionDate(at, "UTC"); got != "2026-08-28" {
		t.Errorf("session date = %s", got)
	}
	// 23:00 UTC уже следующий день в Калькутте
	if got := SessionDate(at, "Asia/Kolkata"); got != "2026-08-29" {
		t.Errorf("session date in IST = %s, want 2026-08-29", got)
	}
}
