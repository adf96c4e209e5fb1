package runner

import (
	"context"
	"log"
	"sync"
	"time"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"

	candlesvc "smc_bot/internal/modules/candles/service"
	candlepg "smc_bot/internal/modules/candles/service/pg"
	healthsvc "smc_bot/internal/modules/health/service"
	papersvc "smc_bot/internal/modules/paper/service"
	risksvc "smc_bot/internal/modules/risk/service"
	riskpg "smc_bot/internal/modules/risk/service/pg"
	strategysvc "smc_bot/internal/modules/strategy/service"
)

// Router — склейка пайплайна: тики -> агрегаторы -> (на закрытии 1m)
// анализ -> риск-гейт -> бумажный трейдер. Открытая позиция блокирует
// новый анализ (политика одной позиции).
type Router struct {
	cfg        *config.Config
	store      *candlesvc.Store
	engine     *strategysvc.Engine
	trader     *papersvc.Trader
	keeper     *risksvc.StateKeeper
	candlePg   *candlepg.Candles
	sessionsPg *riskpg.Sessions
	health     *healthsvc.State
	n          papersvc.ServiceNotifier

	mu           sync.Mutex
	lastAnalysis time.Time
	lastReason   string
}

func NewRouter(
	cfg *config.Config,
	store *candlesvc.Store,
	engine *strategysvc.Engine,
	trader *papersvc.Trader,
	keeper *risksvc.StateKeeper,
	candlePg *candlepg.Candles,
	sessionsPg *riskpg.Sessions,
	health *healthsvc.State,
	n papersvc.ServiceNotifier,
) *Router {
	return &Router{
		cfg:        cfg,
		store:      store,
		engine:     engine,
		trader:     trader,
		keeper:     keeper,
		candlePg:   candlePg,
		sessionsPg: sessionsPg,
		health:     health,
		n:          n,
	}
}

// OnTick — горячий путь: фан-аут в агрегаторы + обновление открытой
// позиции живой ценой.
func (r *Router) OnTick(ctx context.Context, t models.Tick) {
	r.health.TouchTick(time.Unix(t.Time, 0))
	r.store.OnTick(t)
	r.trader.OnPrice(ctx, t.Price, time.Now())
}

// OnClosed — подтверждённая свеча: в БД, и на 1m — проход анализа.
func (r *Router) OnClosed(ctx context.Context, ev candlesvc.ClosedEvent) {
	if err := r.candlePg.Insert(ctx, r.cfg.Feed.Symbol, ev.TF, ev.Candle); err != nil {
		log.Printf("[RUNNER] candle persist failed %s: %v", ev.TF, err)
	}

	if ev.TF != models.TF1m {
		return
	}
	r.maybeAnalyze(ctx, ev.Candle.Close)
}

func (r *Router) maybeAnalyze(ctx context.Context, price float64) {
	if !r.health.Ready() {
		return
	}
	// пока позиция открыта, новые сигналы не рассматриваем
	if r.trader.HasOpen() {
		return
	}

	r.mu.Lock()
	if time.Since(r.lastAnalysis) < r.cfg.AnalysisMinGap {
		r.mu.Unlock()
		return
	}
	r.lastAnalysis = time.Now()
	r.mu.Unlock()

	res := r.engine.RunAnalysis(ctx, price)
	if res.Signal == nil || !res.Signal.ShouldTrade {
		r.logNoSignal(res.Reason)
		return
	}

	log.Printf("[RUNNER] signal %s conf=%.0f entry=%.2f sl=%.2f tp=%.2f",
		res.Signal.Direction, res.Signal.Confidence,
		res.Signal.EntryPrice, res.Signal.StopLoss, res.Signal.TakeProfit)

	if ok, why := r.trader.TryOpen(ctx, res.Signal, time.Now()); !ok {
		log.Printf("[RUNNER] signal rejected: %s", why)
		if r.n != nil {
			r.n.SendService(ctx, "⛔️ Сигнал отклонён: %s", why)
		}
	}
}

// одинаковые причины не спамим в лог на каждой свече
func (r *Router) logNoSignal(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reason == r.lastReason {
		return
	}
	r.lastReason = reason
	log.Printf("[RUNNER] no signal: %s", reason)
}
