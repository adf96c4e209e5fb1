package runner

import (
	"context"
	"log"
	"time"
)

// healthLoop — периодический лог живости: возраст последнего тика,
// открытая позиция, дроп-счётчики агрегаторов.
func (r *Router) healthLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			last := r.health.LastTick()
			age := time.Duration(0)
			if !last.IsZero() {
				age = time.Since(last)
			}

			open := "none"
			if t, ok := r.trader.Open(); ok {
				open = string(t.Direction)
			}

			st := r.keeper.Snapshot()
			log.Printf("[HEALTH] tick_age=%s position=%s day_pnl=%.1f paused=%v",
				age.Round(time.Second), open, st.DailyPnlPoints, st.IsPaused)
		}
	}
}

// sessionLoop — таймерная идемпотентная проверка смены торгового дня.
func (r *Router) sessionLoop(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.SessionResetEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// слепок до сброса: если день сменился, это итог ушедшего дня
			prev := r.keeper.Snapshot()
			if r.keeper.ResetSessionIfNeeded(time.Now()) {
				if err := r.sessionsPg.Insert(ctx, r.cfg.Feed.Symbol, prev); err != nil {
					log.Printf("[RUNNER] session journal insert failed: %v", err)
				}
				if r.n != nil {
					r.n.SendService(ctx, "🌅 Новая торговая сессия, дневные лимиты сброшены")
				}
			}
		}
	}
}
