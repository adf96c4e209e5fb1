package analysis

import "smc_bot/internal/models"

// фиксированная уверенность свипа: подтверждение даёт следующая свеча,
// градаций внутри паттерна нет
const grabConfidence = 0.75

// DetectLiquidityGrabs ищет свипы экстремума окна: прокол ниже/выше
// минимума/максимума предыдущих lookback свечей, close обратно внутри
// диапазона и подтверждающая следующая свеча. ReversalStrength — доля
// отката в диапазоне свип-свечи, идёт в сигнал как evidence.
func DetectLiquidityGrabs(candles []models.Candle, lookback int) []models.LiquidityGrab {
	if lookback <= 0 {
		lookback = 20
	}
	if len(candles) < lookback+2 {
		return nil
	}

	var grabs []models.LiquidityGrab
	// i — свеча-свип; после неё обязана быть подтверждающая
	for i := lookback; i < len(candles)-1; i++ {
		window := candles[i-lookback : i]
		priorLow, priorHigh := windowExtremes(window)

		sweep := candles[i]
		next := candles[i+1]

		rng := sweep.High - sweep.Low
		if rng <= 0 {
			continue
		}

		// бычий: сняли лои, закрылись обратно выше, следующая бычья
		if sweep.Low < priorLow && sweep.Close > priorLow && next.Bullish() {
			grabs = append(grabs, models.LiquidityGrab{
				Type:             models.DirectionBullish,
				SweepLevel:       priorLow,
				ExtremePrice:     sweep.Low,
				CandleIndex:      i,
				Confidence:       grabConfidence,
				ReversalStrength: (sweep.Close - sweep.Low) / rng,
			})
		}

		if sweep.High > priorHigh && sweep.Close < priorHigh && next.Bearish() {
			grabs = append(grabs, models.LiquidityGrab{
				Type:             models.DirectionBearish,
				SweepLevel:       priorHigh,
				ExtremePrice:     sweep.High,
				CandleIndex:      i,
				Confidence:       grabConfidence,
				ReversalStrength: (sweep.High - sweep.Close) / rng,
			})
		}
	}
	return grabs
}

func windowExtremes(window []models.Candle) (low, high float64) {
	low = window[0].Low
	high = window[0].High
	for _, c := range window[1:] {
		if c.Low < low {
			low = c.Low
		}
		if c.High > high {
			high = c.High
		}
	}
	return low, high
}
