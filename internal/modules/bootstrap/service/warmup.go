package service

import (
	"context"
	"fmt"
	"time"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"

	candlesvc "smc_bot/internal/modules/candles/service"
	candlepg "smc_bot/internal/modules/candles/service/pg"
	healthsvc "smc_bot/internal/modules/health/service"
	papersvc "smc_bot/internal/modules/paper/service"
	paperpg "smc_bot/internal/modules/paper/service/pg"
	risksvc "smc_bot/internal/modules/risk/service"
)

type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

// Warmuper поднимает пайплайн после рестарта: сажает историю свечей в
// агрегаторы и восстанавливает дневные счётчики риска из леджера.
// Анализ до конца прогрева блокируется health-флагом ready.
type Warmuper struct {
	cfg     *config.Config
	candles *candlepg.Candles
	trades  *paperpg.Trades
	store   *candlesvc.Store
	keeper  *risksvc.StateKeeper
	trader  *papersvc.Trader
	health  *healthsvc.State
	n       ServiceNotifier
}

func NewWarmuper(
	cfg *config.Config,
	candles *candlepg.Candles,
	trades *paperpg.Trades,
	store *candlesvc.Store,
	keeper *risksvc.StateKeeper,
	trader *papersvc.Trader,
	health *healthsvc.State,
	n ServiceNotifier,
) *Warmuper {
	return &Warmuper{
		cfg:     cfg,
		candles: candles,
		trades:  trades,
		store:   store,
		keeper:  keeper,
		trader:  trader,
		health:  health,
		n:       n,
	}
}

func (w *Warmuper) Warmup(ctx context.Context) error {
	total := 0
	for _, tf := range models.AllTimeframes() {
		hist, err := w.candles.ListRecent(ctx, w.cfg.Feed.Symbol, tf, w.cfg.ConfirmedKeep)
		if err != nil {
			return fmt.Errorf("warmup candles %s: %w", tf, err)
		}
		w.store.Aggregator(tf).InitializeHistory(hist)
		total += len(hist)
	}

	// сегодняшние сделки — обратно в счётчики сессии и леджер
	sessionStart, err := sessionStart(time.Now(), w.cfg.Window.TZ)
	if err != nil {
		return err
	}
	todays, err := w.trades.ListSince(ctx, w.cfg.Feed.Symbol, sessionStart)
	if err != nil {
		return fmt.Errorf("warmup trades: %w", err)
	}
	w.keeper.RestoreDaily(todays)
	w.trader.RestoreLedger(todays)

	w.health.SetReady(true)
	if w.n != nil {
		w.n.SendService(ctx, "🔥 Warmup done: %d свечей, %d сделок за сегодня восстановлено", total, len(todays))
	}
	return nil
}

func sessionStart(now time.Time, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("load tz %q: %w", tz, err)
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
}
