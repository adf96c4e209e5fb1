// Package analysis — чистые функции над срезом свечей: паттерны
// (FVG, ордер-блоки, свипы ликвидности, брейкеры, поглощение) и
// свинговая структура рынка. Никакого состояния и побочных эффектов:
// одинаковый срез -> одинаковый результат.
package analysis

import "smc_bot/internal/models"

// DetectFairValueGaps ищет трёхсвечные имбалансы в последних lookback
// свечах. Гэп бычий, когда high первой свечи ниже low третьей; границы
// гэпа — эти два уровня. Гэп считается покрытым с первого же захода
// любой последующей свечи в диапазон [bottom, top]; покрытые не отдаём.
func DetectFairValueGaps(candles []models.Candle, lookback int) []models.FairValueGap {
	if len(candles) < 3 {
		return nil
	}

	start := 2
	if lookback > 0 && len(candles)-lookback > start {
		start = len(candles) - lookback
	}

	var gaps []models.FairValueGap
	for i := start; i < len(candles); i++ {
		first := candles[i-2]
		third := candles[i]

		if first.High < third.Low {
			g := models.FairValueGap{
				Type:        models.DirectionBullish,
				Top:         third.Low,
				Bottom:      first.High,
				CandleIndex: i,
			}
			if !filledBullish(candles, i, g) {
				gaps = append(gaps, g)
			}
		}

		if first.Low > third.High {
			g := models.FairValueGap{
				Type:        models.DirectionBearish,
				Top:         first.Low,
				Bottom:      third.High,
				CandleIndex: i,
			}
			if !filledBearish(candles, i, g) {
				gaps = append(gaps, g)
			}
		}
	}
	return gaps
}

// бычий гэп покрыт, если после него low вернулся в диапазон гэпа
func filledBullish(candles []models.Candle, idx int, g models.FairValueGap) bool {
	for j := idx + 1; j < len(candles); j++ {
		if candles[j].Low <= g.Top {
			return true
		}
	}
	return false
}

func filledBearish(candles []models.Candle, idx int, g models.FairValueGap) bool {
	for j := idx + 1; j < len(candles); j++ {
		if candles[j].High >= g.Bottom {
			return true
		}
	}
	return false
}
