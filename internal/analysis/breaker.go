package analysis

import (
	"sort"

	"smc_bot/internal/helper"
	"smc_bot/internal/models"
)

const (
	breakerBucket     = 10.0 // ценовой бакет уровня, пункты
	breakerMinTouches = 2
	breakerRejectIn   = 10 // свечей на отбой после пробоя
	breakerConfidence = 0.70
)

// DetectBreakerBlocks ищет пробитые и затем отвергнутые с другой стороны
// уровни. Уровень — бакет в 10 пунктов, который лои (или хаи) трогали
// минимум дважды; после закрытия сквозь него цена в пределах 10 свечей
// должна вернуться к уровню и отбиться с противоположной стороны.
func DetectBreakerBlocks(candles []models.Candle, lookback int) []models.BreakerBlock {
	if lookback <= 0 {
		lookback = 50
	}
	start := 0
	if len(candles) > lookback {
		start = len(candles) - lookback
	}
	window := candles[start:]
	if len(window) < breakerMinTouches+breakerRejectIn {
		return nil
	}

	var out []models.BreakerBlock
	out = append(out, brokenSupports(window)...)
	out = append(out, brokenResistances(window)...)
	return out
}

// медвежьи брейкеры: бывшая поддержка, пробитая вниз и отвергнутая снизу
func brokenSupports(window []models.Candle) []models.BreakerBlock {
	touches := map[float64]int{}
	for _, c := range window {
		touches[helper.RoundToBucket(c.Low, breakerBucket)]++
	}

	var out []models.BreakerBlock
	for _, level := range sortedLevels(touches) {
		n := touches[level]
		if n < breakerMinTouches {
			continue
		}
		for i, c := range window {
			if c.Close >= level {
				continue
			}
			// пробой вниз на i: ждём отбой от уровня снизу
			to := i + 1 + breakerRejectIn
			if to > len(window) {
				to = len(window)
			}
			for j := i + 1; j < to; j++ {
				if window[j].High >= level && window[j].Close < level {
					out = append(out, models.BreakerBlock{
						Type:        models.DirectionBearish,
						Level:       level,
						Touches:     n,
						CandleIndex: j,
						Confidence:  breakerConfidence,
					})
					break
				}
			}
			break // интересует только первый пробой уровня
		}
	}
	return out
}

func brokenResistances(window []models.Candle) []models.BreakerBlock {
	touches := map[float64]int{}
	for _, c := range window {
		touches[helper.RoundToBucket(c.High, breakerBucket)]++
	}

	var out []models.BreakerBlock
	for _, level := range sortedLevels(touches) {
		n := touches[level]
		if n < breakerMinTouches {
			continue
		}
		for i, c := range window {
			if c.Close <= level {
				continue
			}
			to := i + 1 + breakerRejectIn
			if to > len(window) {
				to = len(window)
			}
			for j := i + 1; j < to; j++ {
				if window[j].Low <= level && window[j].Close > level {
					out = append(out, models.BreakerBlock{
						Type:        models.DirectionBullish,
						Level:       level,
						Touches:     n,
						CandleIndex: j,
						Confidence:  breakerConfidence,
					})
					break
				}
			}
			break
		}
	}
	return out
}

// map-итерация недетерминирована — для воспроизводимости сортируем уровни
func sortedLevels(m map[float64]int) []float64 {
	levels := make([]float64, 0, len(m))
	for l := range m {
		levels = append(levels, l)
	}
	sort.Float64s(levels)
	return levels
}
