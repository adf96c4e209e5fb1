package service

import (
	"os"
	"testing"
	"time"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"
	"smc_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func keeperConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Feed.Symbol = "CRUDEOIL"
	cfg.Risk.TradingEnabled = true
	cfg.Risk.AllowedSymbol = "CRUDEOIL"
	cfg.Risk.MaxDailyLossPoints = 30
	cfg.Risk.DailyProfitTargetPoints = 50
	cfg.Risk.MinRiskReward = 2.0
	cfg.Risk.AccountBalance = 100000
	cfg.Risk.MaxEquityDrawdownPercent = 5.0
	cfg.Window.Start = "00:00"
	cfg.Window.End = "23:59"
	cfg.Window.TZ = "UTC"
	return cfg
}

func TestStateKeeperApplyTrade(t *testing.T) {
	k := NewStateKeeper(keeperConfig())
	at := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)

	st := k.ApplyTrade(20, 40, at)
	if st.DailyPnlPoints != 20 || st.TradesToday != 1 {
		t.Errorf("state = %+v", st)
	}
	if st.Equity != 100040 {
		t.Errorf("equity = %.1f, want 100040", st.Equity)
	}
	if st.PeakBalance != 100040 {
		t.Errorf("peak = %.1f, want to follow equity up", st.PeakBalance)
	}
	if !st.LastTradeTime.Equal(at) {
		t.Errorf("last trade time = %s", st.LastTradeTime)
	}

	// лосс двигает equity вниз, peak остаётся
	st = k.ApplyTrade(-10, -20, at.Add(time.Minute))
	if st.Equity != 100020 {
		t.Errorf("equity = %.1f, want 100020", st.Equity)
	}
	if st.PeakBalance != 100040 {
		t.Errorf("peak = %.1f, must not follow equity down", st.PeakBalance)
	}
	if st.ConsecutiveLosses != 1 {
		t.Errorf("losses = %d, want 1", st.ConsecutiveLosses)
	}
}

func TestStateKeeperSnapshotIsolation(t *testing.T) {
	k := NewStateKeeper(keeperConfig())
	snap := k.Snapshot()
	snap.DailyPnlPoints = 999

	if k.Snapshot().DailyPnlPoints != 0 {
		t.Error("mutating a snapshot must not leak into the keeper")
	}
}

func TestStateKeeperPause(t *testing.T) {
	k := NewStateKeeper(keeperConfig())
	k.Pause("manual stop")

	st := k.Snapshot()
	if !st.IsPaused || st.PauseReason != "manual stop" {
		t.Errorf("state = %+v", st)
	}
}

func TestStateKeeperSessionReset(t *testing.T) {
	k := NewStateKeeper(keeperConfig())
	k.ApplyTrade(-10, -20, time.Now())
	k.Pause("manual")
	k.SetWeeklyLock(true)

	// дата сменилась — дневные счётчики и пауза уходят
	next := time.Now().Add(48 * time.Hour)
	if !k.ResetSessionIfNeeded(next) {
		t.Fatal("date change must trigger a reset")
	}
	st := k.Snapshot()
	if st.DailyPnlPoints != 0 || st.TradesToday != 0 || st.IsPaused {
		t.Errorf("state after reset = %+v", st)
	}
	// equity и недельный лок переживают сброс
	if st.Equity != 99980 {
		t.Errorf("equity = %.1f, want 99980", st.Equity)
	}
	if !st.IsWeeklyLocked {
		t.Error("weekly lock must survive the daily reset")
	}

	// повторный вызов в тот же день — no-op
	if k.ResetSessionIfNeeded(next) {
		t.Error("second reset on the same date must be a no-op")
	}
}

func TestStateKeeperRestoreDaily(t *testing.T) {
	k := NewStateKeeper(keeperConfig())
	exit := time.Date(2026, 8, 28, 19, 5, 0, 0, time.UTC)

	k.RestoreDaily([]models.Trade{
		{ProfitLossPoints: 20, ProfitLossAmount: 40, ExitTime: exit},
		{ProfitLossPoints: -5, ProfitLossAmount: -10, ExitTime: exit.Add(10 * time.Minute)},
	})

	st := k.Snapshot()
	if st.DailyPnlPoints != 15 || st.TradesToday != 2 {
		t.Errorf("restored state = %+v", st)
	}
	if st.ConsecutiveLosses != 1 {
		t.Errorf("losses = %d, want 1", st.ConsecutiveLosses)
	}
	if st.Equity != 100030 {
		t.Errorf("equity = %.1f, want 100030", st.Equity)
	}
	if !st.LastTradeTime.Equal(exit.Add(10 * time.Minute)) {
		t.Errorf("last trade time = %s", st.LastTradeTime)
	}
}
