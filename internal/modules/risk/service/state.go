package service

import (
	"sync"
	"time"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"

	"smc_bot/pkg/logger"
)

// StateKeeper — единственный владелец SystemState. Все мутации под
// одним мьютексом; наружу уходят только снапшоты по значению, так что
// валидация и закрытие сделок не гоняются на счётчиках.
type StateKeeper struct {
	mu     sync.Mutex
	st     models.SystemState
	params Params

	balance float64 // стартовый баланс из конфига
}

func NewStateKeeper(cfg *config.Config) *StateKeeper {
	p := ParamsFromConfig(cfg)
	return &StateKeeper{
		st:      models.NewSessionState(cfg.Risk.AccountBalance, SessionDate(time.Now(), p.WindowTZ)),
		params:  p,
		balance: cfg.Risk.AccountBalance,
	}
}

func (k *StateKeeper) Params() Params { return k.params }

// Snapshot — копия состояния для чтения.
func (k *StateKeeper) Snapshot() models.SystemState {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.st
}

// ApplyTrade прогоняет закрытую сделку через UpdateAfterTrade и
// обновляет equity/peak. Возвращает новое состояние.
func (k *StateKeeper) ApplyTrade(pnlPoints, pnlAmount float64, at time.Time) models.SystemState {
	k.mu.Lock()
	defer k.mu.Unlock()

	wasPaused := k.st.IsPaused
	k.st = UpdateAfterTrade(k.st, pnlPoints, k.params)
	k.st.LastTradeTime = at
	k.st.Equity += pnlAmount
	if k.st.Equity > k.st.PeakBalance {
		k.st.PeakBalance = k.st.Equity
	}

	if !wasPaused && k.st.IsPaused {
		logger.Warn("auto-pause: %s", k.st.PauseReason)
	}
	return k.st
}

func (k *StateKeeper) Pause(reason string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.st.IsPaused = true
	k.st.PauseReason = reason
}

func (k *StateKeeper) SetWeeklyLock(v bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.st.IsWeeklyLocked = v
}

// ResetSessionIfNeeded — идемпотентный дневной сброс: если торговая
// дата сменилась, дневные счётчики и автопауза обнуляются. Peak и
// weekly lock переживают сброс. Таймер может дёргать сколько угодно
// раз за период — сработает один.
func (k *StateKeeper) ResetSessionIfNeeded(now time.Time) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	date := SessionDate(now, k.params.WindowTZ)
	if date == k.st.SessionDate {
		return false
	}

	logger.Info("new trading session %s, resetting daily counters", date)
	prevEquity := k.st.Equity
	peak := k.st.PeakBalance
	locked := k.st.IsWeeklyLocked

	k.st = models.NewSessionState(k.balance, date)
	k.st.Equity = prevEquity
	k.st.PeakBalance = peak
	k.st.IsWeeklyLocked = locked
	return true
}

// RestoreDaily восстанавливает дневные счётчики из леджера после
// рестарта процесса (warmup).
func (k *StateKeeper) RestoreDaily(trades []models.Trade) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, t := range trades {
		k.st = UpdateAfterTrade(k.st, t.ProfitLossPoints, k.params)
		k.st.Equity += t.ProfitLossAmount
		if k.st.Equity > k.st.PeakBalance {
			k.st.PeakBalance = k.st.Equity
		}
		if t.ExitTime.After(k.st.LastTradeTime) {
			k.st.LastTradeTime = t.ExitTime
		}
	}
}
