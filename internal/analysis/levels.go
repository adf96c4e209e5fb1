package analysis

import (
	"smc_bot/internal/helper"
	"smc_bot/internal/models"
)

const (
	pdDefaultRange = 50  // N свечей диапазона premium/discount
	eqBucket       = 5.0 // ценовой бакет equal highs/lows, пункты
	eqMinTouches   = 2
	eqSweepWindow  = 10 // снятость смотрим по последним 10 свечам
)

// PremiumDiscount — equilibrium как середина диапазона последних n
// свечей; ниже — discount, выше — premium.
func PremiumDiscount(candles []models.Candle, n int, price float64) models.PremiumDiscount {
	if n <= 0 {
		n = pdDefaultRange
	}
	start := 0
	if len(candles) > n {
		start = len(candles) - n
	}
	window := candles[start:]
	if len(window) == 0 {
		return models.PremiumDiscount{Zone: models.ZoneEquilibrium}
	}

	lo, hi := windowExtremes(window)
	eq := (hi + lo) / 2

	zone := models.ZoneEquilibrium
	if price < eq {
		zone = models.ZoneDiscount
	} else if price > eq {
		zone = models.ZonePremium
	}

	return models.PremiumDiscount{
		RangeHigh:   hi,
		RangeLow:    lo,
		Equilibrium: eq,
		Zone:        zone,
	}
}

// EqualLevels группирует хаи и лои по бакетам в 5 пунктов: бакет,
// тронутый минимум дважды, — зона ликвидности. Зона "снята", если её
// прошла любая из последних 10 свечей.
func EqualLevels(candles []models.Candle, lookback int) []models.LiquidityZone {
	if lookback <= 0 {
		lookback = pdDefaultRange
	}
	start := 0
	if len(candles) > lookback {
		start = len(candles) - lookback
	}
	window := candles[start:]
	if len(window) == 0 {
		return nil
	}

	highTouch := map[float64]int{}
	lowTouch := map[float64]int{}
	for _, c := range window {
		highTouch[helper.RoundToBucket(c.High, eqBucket)]++
		lowTouch[helper.RoundToBucket(c.Low, eqBucket)]++
	}

	recent := window
	if len(recent) > eqSweepWindow {
		recent = recent[len(recent)-eqSweepWindow:]
	}

	var zones []models.LiquidityZone
	for _, level := range sortedLevels(highTouch) {
		if highTouch[level] < eqMinTouches {
			continue
		}
		zones = append(zones, models.LiquidityZone{
			Level:   level,
			Touches: highTouch[level],
			IsHigh:  true,
			Swept:   sweptAbove(recent, level),
		})
	}
	for _, level := range sortedLevels(lowTouch) {
		if lowTouch[level] < eqMinTouches {
			continue
		}
		zones = append(zones, models.LiquidityZone{
			Level:   level,
			Touches: lowTouch[level],
			IsHigh:  false,
			Swept:   sweptBelow(recent, level),
		})
	}
	return zones
}

func sweptAbove(candles []models.Candle, level float64) bool {
	for _, c := range candles {
		if c.High > level {
			return true
		}
	}
	return false
}

func sweptBelow(candles []models.Candle, level float64) bool {
	for _, c := range candles {
		if c.Low < level {
			return true
		}
	}
	return false
}
