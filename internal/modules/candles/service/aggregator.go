package service

import (
	"fmt"
	"sync"

	"smc_bot/internal/helper"
	"smc_bot/internal/models"
)

// Result — итог обработки одного тика одним агрегатором.
// Live и LastConfirmed — копии: живой список остаётся во владении агрегатора.
type Result struct {
	Accepted        bool
	NewCandleFormed bool
	Live            models.Candle
	LastConfirmed   *models.Candle
}

// Aggregator сворачивает поток тиков в свечи одного таймфрейма.
// Ровно одна живая свеча; подтверждённые — иммутабельный хвост.
// Вся обработка тиков сериализована: один продюсер на таймфрейм.
type Aggregator struct {
	mu sync.RWMutex

	tf   models.Timeframe
	keep int // ёмкость подтверждённого списка

	confirmed    []models.Candle
	live         *models.Candle
	lastBoundary int64 // последний наблюдавшийся бакет (unix сек)

	droppedStale     int64
	droppedMalformed int64
}

func NewAggregator(tf models.Timeframe, keep int) *Aggregator {
	if keep <= 0 {
		keep = 500
	}
	return &Aggregator{
		tf:           tf,
		keep:         keep,
		lastBoundary: -1,
	}
}

// InitializeHistory — прогрев историческими свечами. Все помечаются
// неживыми, последняя задаёт стартовую границу бакета.
func (a *Aggregator) InitializeHistory(candles []models.Candle) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range candles {
		c.IsLive = false
		c.Time = helper.BucketStart(c.Time, a.tf.Seconds())
		a.confirmed = append(a.confirmed, c)
		if c.Time > a.lastBoundary {
			a.lastBoundary = c.Time
		}
	}
	a.trim()
}

// ProcessTick — единственная точка мутации живой свечи.
//
// Политики (см. DESIGN.md):
//   - tick.Volume — дельта за тик, просто суммируем;
//   - цена <= 0 — дропаем (malformed);
//   - тик из бакета СТАРШЕ живой свечи — дропаем (out-of-order),
//     тик того же бакета доливается, более новый бакет финализирует.
func (a *Aggregator) ProcessTick(t models.Tick) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	if t.Price <= 0 {
		a.droppedMalformed++
		return Result{}
	}

	bucket := helper.BucketStart(t.Time, a.tf.Seconds())

	if a.live != nil && bucket < a.live.Time {
		a.droppedStale++
		return Result{}
	}
	// без живой свечи границу держит lastBoundary: тик из бакета, уже
	// закрытого прогревом, открыл бы дубль подтверждённой свечи
	if a.live == nil && bucket <= a.lastBoundary {
		a.droppedStale++
		return Result{}
	}

	res := Result{Accepted: true}

	// граница ушла вперёд — закрываем живую свечу
	if a.live != nil && bucket != a.live.Time {
		res.LastConfirmed = a.finalizeLive()
	}

	if a.live == nil {
		a.live = &models.Candle{
			Time:   bucket,
			Open:   t.Price,
			High:   t.Price,
			Low:    t.Price,
			Close:  t.Price,
			Volume: t.Volume,
			IsLive: true,
		}
		if bucket > a.lastBoundary {
			res.NewCandleFormed = true
			a.lastBoundary = bucket
		}
	} else {
		if t.Price > a.live.High {
			a.live.High = t.Price
		}
		if t.Price < a.live.Low {
			a.live.Low = t.Price
		}
		a.live.Close = t.Price
		a.live.Volume += t.Volume
	}

	res.Live = *a.live
	return res
}

// finalizeLive под a.mu. Копия уходит в confirmed, живая очищается.
func (a *Aggregator) finalizeLive() *models.Candle {
	c := *a.live
	c.IsLive = false
	if !c.Valid() {
		// state-corruption: это баг агрегатора, не рыночные данные
		panic(fmt.Sprintf("candle invariant violated: tf=%s time=%d o=%.2f h=%.2f l=%.2f c=%.2f",
			a.tf, c.Time, c.Open, c.High, c.Low, c.Close))
	}
	a.confirmed = append(a.confirmed, c)
	a.trim()
	a.live = nil
	return &c
}

func (a *Aggregator) trim() {
	if len(a.confirmed) > a.keep {
		// не держим хвост старше keep: анализ дальше не смотрит
		tail := make([]models.Candle, a.keep)
		copy(tail, a.confirmed[len(a.confirmed)-a.keep:])
		a.confirmed = tail
	}
}

// Snapshot — копия подтверждённых свечей (copy-on-read для анализа).
func (a *Aggregator) Snapshot() []models.Candle {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.Candle, len(a.confirmed))
	copy(out, a.confirmed)
	return out
}

// Live — копия живой свечи, ok=false если её ещё нет.
func (a *Aggregator) Live() (models.Candle, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.live == nil {
		return models.Candle{}, false
	}
	return *a.live, true
}

func (a *Aggregator) ConfirmedCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.confirmed)
}

// Dropped — (stale, malformed) счётчики для health-лога.
func (a *Aggregator) Dropped() (int64, int64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.droppedStale, a.droppedMalformed
}

func (a *Aggregator) Timeframe() models.Timeframe { return a.tf }
