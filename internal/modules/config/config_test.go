package config

import (
	"testing"
	"time"
)

func TestIntFromEnv(t *testing.T) {
	if got := intFromEnv("CFG_TEST_INT", 42); got != 42 {
		t.Errorf("unset env: got %d, want default 42", got)
	}
	t.Setenv("CFG_TEST_INT", "7")
	if got := intFromEnv("CFG_TEST_INT", 42); got != 7 {
		t.Errorf("set env: got %d, want 7", got)
	}
	t.Setenv("CFG_TEST_INT", "not-a-number")
	if got := intFromEnv("CFG_TEST_INT", 42); got != 42 {
		t.Errorf("garbage env: got %d, want default 42", got)
	}
}

func TestFloatFromEnv(t *testing.T) {
	if got := floatFromEnv("CFG_TEST_FLOAT", 55.5); got != 55.5 {
		t.Errorf("unset env: got %f, want default 55.5", got)
	}
	t.Setenv("CFG_TEST_FLOAT", "120.25")
	if got := floatFromEnv("CFG_TEST_FLOAT", 55.5); got != 120.25 {
		t.Errorf("set env: got %f, want 120.25", got)
	}
	t.Setenv("CFG_TEST_FLOAT", "oops")
	if got := floatFromEnv("CFG_TEST_FLOAT", 55.5); got != 55.5 {
		t.Errorf("garbage env: got %f, want default 55.5", got)
	}
}

func TestDurationFromEnv(t *testing.T) {
	if got := durationFromEnv("CFG_TEST_DUR", "5m"); got != 5*time.Minute {
		t.Errorf("unset env: got %s, want 5m", got)
	}
	t.Setenv("CFG_TEST_DUR", "90s")
	if got := durationFromEnv("CFG_TEST_DUR", "5m"); got != 90*time.Second {
		t.Errorf("set env: got %s, want 90s", got)
	}
	t.Setenv("CFG_TEST_DUR", "later")
	if got := durationFromEnv("CFG_TEST_DUR", "5m"); got != 5*time.Minute {
		t.Errorf("garbage env: got %s, want default 5m", got)
	}
}
