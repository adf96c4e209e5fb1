package service

import (
	"context"
	"log"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"
)

// ClosedEvent — подтверждённая свеча одного таймфрейма.
type ClosedEvent struct {
	TF     models.Timeframe
	Candle models.Candle
}

// Store — четыре независимых агрегатора (1m/5m/15m/1h) над одним
// потоком тиков. У каждого таймфрейма своя горутина и свой канал:
// таймфреймы не делят мутабельное состояние.
type Store struct {
	cfg  *config.Config
	aggs map[models.Timeframe]*Aggregator
	ins  map[models.Timeframe]chan models.Tick

	closed chan ClosedEvent
}

func NewStore(cfg *config.Config) *Store {
	s := &Store{
		cfg:    cfg,
		aggs:   make(map[models.Timeframe]*Aggregator),
		ins:    make(map[models.Timeframe]chan models.Tick),
		closed: make(chan ClosedEvent, 1024),
	}
	for _, tf := range models.AllTimeframes() {
		s.aggs[tf] = NewAggregator(tf, cfg.ConfirmedKeep)
		s.ins[tf] = make(chan models.Tick, 4096)
	}
	return s
}

// Start поднимает по воркеру на таймфрейм.
func (s *Store) Start(ctx context.Context) {
	for tf, in := range s.ins {
		go s.runTimeframe(ctx, tf, in)
	}
}

func (s *Store) runTimeframe(ctx context.Context, tf models.Timeframe, in <-chan models.Tick) {
	agg := s.aggs[tf]
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-in:
			if !ok {
				return
			}
			res := agg.ProcessTick(t)
			if res.LastConfirmed == nil {
				continue
			}
			select {
			case s.closed <- ClosedEvent{TF: tf, Candle: *res.LastConfirmed}:
			default:
				log.Printf("[CANDLES] closed channel full, drop %s %d", tf, res.LastConfirmed.Time)
			}
		}
	}
}

// OnTick — фан-аут тика во все таймфреймы. Не блокирует продюсера:
// переполненный воркер теряет тик с логом, а не стопорит фид.
func (s *Store) OnTick(t models.Tick) {
	for tf, in := range s.ins {
		select {
		case in <- t:
		default:
			log.Printf("[CANDLES] %s tick queue full, drop tick t=%d", tf, t.Time)
		}
	}
}

// Closed — поток подтверждённых свечей для раннера.
func (s *Store) Closed() <-chan ClosedEvent { return s.closed }

// Aggregator — доступ к конкретному таймфрейму (warmup, чтение для чартов).
func (s *Store) Aggregator(tf models.Timeframe) *Aggregator { return s.aggs[tf] }

// Snapshots — copy-on-read срезы всех таймфреймов для прохода анализа.
func (s *Store) Snapshots() map[models.Timeframe][]models.Candle {
	out := make(map[models.Timeframe][]models.Candle, len(s.aggs))
	for tf, agg := range s.aggs {
		out[tf] = agg.Snapshot()
	}
	return out
}
