package analysis

import "smc_bot/internal/models"

const (
	obVolumeWindow  = 10  // трейлинг-окно среднего объёма
	obRespectWindow = 10  // сколько свечей после блока проверяем на respect
	obVolumeCap     = 2.0 // ratio выше капа не добавляет силы
)

// DetectOrderBlocks ищет последнюю контртрендовую свечу перед импульсом:
// свеча i-2 против движения, i-1 и i — по движению, и close свечи i
// пробивает экстремум контртрендовой. Сила блока — среднее объёмного
// ratio (кап 2.0, нормирован в [0..1]) и доли следующих 10 свечей,
// уважающих границу блока.
func DetectOrderBlocks(candles []models.Candle, lookback int) []models.OrderBlock {
	if len(candles) < 3 {
		return nil
	}

	start := 2
	if lookback > 0 && len(candles)-lookback > start {
		start = len(candles) - lookback
	}

	var blocks []models.OrderBlock
	for i := start; i < len(candles); i++ {
		counter := candles[i-2]
		mid := candles[i-1]
		last := candles[i]

		// бычий блок: медвежья свеча, затем две бычьих, пробой её high
		if counter.Bearish() && mid.Bullish() && last.Bullish() && last.Close > counter.High {
			blocks = append(blocks, models.OrderBlock{
				Type:        models.DirectionBullish,
				Price:       counter.Low,
				CandleIndex: i - 2,
				Strength:    blockStrength(candles, i-2, true),
			})
		}

		if counter.Bullish() && mid.Bearish() && last.Bearish() && last.Close < counter.Low {
			blocks = append(blocks, models.OrderBlock{
				Type:        models.DirectionBearish,
				Price:       counter.High,
				CandleIndex: i - 2,
				Strength:    blockStrength(candles, i-2, false),
			})
		}
	}
	return blocks
}

func blockStrength(candles []models.Candle, idx int, bullish bool) float64 {
	return (volumeScore(candles, idx) + respectScore(candles, idx, bullish)) / 2
}

// объём блока против трейлинг-среднего предыдущих 10 свечей
func volumeScore(candles []models.Candle, idx int) float64 {
	from := idx - obVolumeWindow
	if from < 0 {
		from = 0
	}
	if from == idx {
		return 0
	}

	var sum float64
	for _, c := range candles[from:idx] {
		sum += float64(c.Volume)
	}
	avg := sum / float64(idx-from)
	if avg <= 0 {
		return 0
	}

	ratio := float64(candles[idx].Volume) / avg
	if ratio > obVolumeCap {
		ratio = obVolumeCap
	}
	return ratio / obVolumeCap
}

// доля следующих 10 свечей, не заступивших за границу блока
func respectScore(candles []models.Candle, idx int, bullish bool) float64 {
	to := idx + 1 + obRespectWindow
	if to > len(candles) {
		to = len(candles)
	}
	if idx+1 >= to {
		return 0
	}

	respected := 0
	for _, c := range candles[idx+1 : to] {
		if bullish && c.Low >= candles[idx].Low {
			respected++
		}
		if !bullish && c.High <= candles[idx].High {
			respected++
		}
	}
	return float64(respected) / float64(to-idx-1)
}
