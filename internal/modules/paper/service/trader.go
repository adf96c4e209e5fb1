package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"
	risksvc "smc_bot/internal/modules/risk/service"
)

type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

// TradeStore — персистенция закрытых сделок (pg, best effort).
type TradeStore interface {
	Insert(ctx context.Context, symbol string, t models.Trade) error
}

// Trader — симулятор исполнения. Одна открытая позиция, переходы
// OPEN -> {STOPPED, CLOSED} терминальны, закрытые уходят в леджер.
// Состояние сессии трогаем только через StateKeeper.
type Trader struct {
	cfg    *config.Config
	keeper *risksvc.StateKeeper
	store  TradeStore
	n      ServiceNotifier

	mu          sync.Mutex
	open        *models.Trade
	closed      []models.Trade
	nextID      int64
	cooldownTil time.Time
}

func NewTrader(cfg *config.Config, keeper *risksvc.StateKeeper, store TradeStore, n ServiceNotifier) *Trader {
	return &Trader{
		cfg:    cfg,
		keeper: keeper,
		store:  store,
		n:      n,
		nextID: 1,
	}
}

// TryOpen гонит сигнал через RiskGate и открывает бумажную позицию.
// Отказ — не ошибка: возвращаем причину, сигнал выбрасывается.
func (t *Trader) TryOpen(ctx context.Context, sig *models.TradeSignal, at time.Time) (bool, string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open != nil {
		return false, "position already open"
	}
	if at.Before(t.cooldownTil) {
		return false, fmt.Sprintf("cooldown until %s", t.cooldownTil.Format(time.TimeOnly))
	}

	verdict := risksvc.Validate(t.cfg.Feed.Symbol, sig, t.keeper.Snapshot(), t.keeper.Params(), at)
	if !verdict.IsValid {
		return false, verdict.Reason
	}

	size, why := t.positionSize(sig)
	if size <= 0 {
		return false, why
	}

	t.open = &models.Trade{
		ID:           t.nextID,
		Direction:    sig.Direction,
		EntryPrice:   sig.EntryPrice,
		EntryTime:    at,
		StopLoss:     sig.StopLoss,
		TakeProfit:   sig.TakeProfit,
		PositionSize: size,
		Status:       models.TradeOpen,
	}
	t.nextID++

	log.Printf("[PAPER] open #%d %s entry=%.2f sl=%.2f tp=%.2f size=%.0f",
		t.open.ID, t.open.Direction, t.open.EntryPrice, t.open.StopLoss, t.open.TakeProfit, size)
	if t.n != nil {
		t.n.SendService(ctx, "📥 #%d %s %s @ %.2f | SL %.2f | TP %.2f | %.0f lots\n%s",
			t.open.ID, t.cfg.Feed.Symbol, t.open.Direction, t.open.EntryPrice,
			t.open.StopLoss, t.open.TakeProfit, size, sig.Reason)
	}
	return true, ""
}

// сайзинг по денежному риску: riskPct от баланса на дистанцию стопа,
// кап по максимуму лотов; меньше целого лота не торгуем
func (t *Trader) positionSize(sig *models.TradeSignal) (float64, string) {
	riskDist := math.Abs(sig.EntryPrice - sig.StopLoss)
	if riskDist <= 0 {
		return 0, "zero stop distance"
	}
	riskAmount := t.cfg.Risk.AccountBalance * t.cfg.Risk.RiskPerTradePercent / 100
	size := math.Floor(riskAmount / riskDist)
	if size > t.cfg.Risk.MaxPositionSizeLots {
		size = t.cfg.Risk.MaxPositionSizeLots
	}
	if size < 1 {
		return 0, fmt.Sprintf("risk budget %.0f too small for %.1f point stop", riskAmount, riskDist)
	}
	return size, ""
}

// OnPrice — обновление открытой позиции живой ценой. Пересечение стопа
// побеждает пересечение тейка (гэп через оба уровня закрывается по
// стопу, консервативно); филл симулируется по уровню, не по тику.
func (t *Trader) OnPrice(ctx context.Context, price float64, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open == nil {
		return
	}

	long := t.open.Direction == models.DirectionBullish
	switch {
	case long && price <= t.open.StopLoss:
		t.closeLocked(ctx, t.open.StopLoss, at, models.TradeStopped)
	case long && price >= t.open.TakeProfit:
		t.closeLocked(ctx, t.open.TakeProfit, at, models.TradeClosed)
	case !long && price >= t.open.StopLoss:
		t.closeLocked(ctx, t.open.StopLoss, at, models.TradeStopped)
	case !long && price <= t.open.TakeProfit:
		t.closeLocked(ctx, t.open.TakeProfit, at, models.TradeClosed)
	}
}

// closeLocked под t.mu: финализация сделки, леджер, состояние сессии.
func (t *Trader) closeLocked(ctx context.Context, exit float64, at time.Time, status models.TradeStatus) {
	tr := *t.open
	tr.Status = status
	tr.ExitPrice = exit
	tr.ExitTime = at

	points := exit - tr.EntryPrice
	if tr.Direction == models.DirectionBearish {
		points = tr.EntryPrice - exit
	}
	tr.ProfitLossPoints = points
	tr.ProfitLossAmount = points * tr.PositionSize

	t.closed = append(t.closed, tr)
	t.open = nil
	t.cooldownTil = at.Add(t.cfg.CooldownAfterExit)

	st := t.keeper.ApplyTrade(tr.ProfitLossPoints, tr.ProfitLossAmount, at)

	if t.store != nil {
		if err := t.store.Insert(ctx, t.cfg.Feed.Symbol, tr); err != nil {
			log.Printf("[PAPER] ledger insert failed: %v", err)
		}
	}

	log.Printf("[PAPER] close #%d %s @ %.2f pnl=%.1fpt (%.0f)", tr.ID, status, exit, points, tr.ProfitLossAmount)
	if t.n != nil {
		emoji := "✅"
		if points < 0 {
			emoji = "🛑"
		}
		t.n.SendService(ctx, "%s #%d %s @ %.2f | %.1f pt | день: %.1f pt за %d сделок",
			emoji, tr.ID, status, exit, points, st.DailyPnlPoints, st.TradesToday)
		if st.IsPaused {
			t.n.SendService(ctx, "⏸ Автопауза: %s", st.PauseReason)
		}
	}
}

func (t *Trader) HasOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open != nil
}

// Open — копия открытой позиции для health-лога.
func (t *Trader) Open() (models.Trade, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open == nil {
		return models.Trade{}, false
	}
	return *t.open, true
}

// ClosedTrades — копия леджера.
func (t *Trader) ClosedTrades() []models.Trade {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Trade, len(t.closed))
	copy(out, t.closed)
	return out
}

// RestoreLedger — подгрузка сегодняшних сделок после рестарта.
func (t *Trader) RestoreLedger(trades []models.Trade) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = append(t.closed, trades...)
	for _, tr := range trades {
		if tr.ID >= t.nextID {
			t.nextID = tr.ID + 1
		}
	}
}
