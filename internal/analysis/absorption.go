package analysis

import "smc_bot/internal/models"

const (
	absVolumeWindow = 10
	absVolumeRatio  = 1.5 // объём заметно выше среднего
	absMaxBodyFrac  = 0.3 // при этом тело сжато
)

// DetectAbsorption ищет поглощение потока: аномальный объём при сжатом
// теле свечи — крупный пассивный интерес съедает агрессию. Направление
// по положению close в диапазоне: закрытие в верхней половине — продажи
// поглощены (бычье), в нижней — медвежье.
func DetectAbsorption(candles []models.Candle, lookback int) []models.Absorption {
	if len(candles) < absVolumeWindow+1 {
		return nil
	}

	start := absVolumeWindow
	if lookback > 0 && len(candles)-lookback > start {
		start = len(candles) - lookback
	}

	var out []models.Absorption
	for i := start; i < len(candles); i++ {
		c := candles[i]
		rng := c.High - c.Low
		if rng <= 0 {
			continue
		}

		var sum float64
		for _, p := range candles[i-absVolumeWindow : i] {
			sum += float64(p.Volume)
		}
		avg := sum / float64(absVolumeWindow)
		if avg <= 0 {
			continue
		}

		ratio := float64(c.Volume) / avg
		body := c.Close - c.Open
		if body < 0 {
			body = -body
		}
		if ratio < absVolumeRatio || body/rng > absMaxBodyFrac {
			continue
		}

		dir := models.DirectionBearish
		if c.Close >= c.Low+rng/2 {
			dir = models.DirectionBullish
		}
		out = append(out, models.Absorption{
			Type:        dir,
			Price:       c.Close,
			CandleIndex: i,
			VolumeRatio: ratio,
		})
	}
	return out
}
