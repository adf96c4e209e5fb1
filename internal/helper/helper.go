package helper

import (
	"math"
	"strings"

	"smc_bot/internal/models"
)

func NormTF(raw string) models.Timeframe {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "candle")
	switch s {
	case "60m", "1h":
		return models.TF1h
	case "15m":
		return models.TF15m
	case "5m":
		return models.TF5m
	default:
		return models.TF1m
	}
}

// BucketStart — начало бакета для unix-секунды.
func BucketStart(sec int64, bucketSec int64) int64 {
	if bucketSec <= 0 {
		return sec
	}
	return sec - sec%bucketSec
}

// RoundToBucket — цена, округлённая к ближайшему ценовому бакету
// (10 пунктов для брейкеров, 5 для equal highs/lows).
func RoundToBucket(px, bucket float64) float64 {
	if bucket <= 0 {
		return px
	}
	return math.Round(px/bucket) * bucket
}

func RoundDownToTick(px, tick float64) float64 {
	if tick <= 0 {
		return px
	}
	steps := math.Floor(px/tick + 1e-12)
	return steps * tick
}

func RoundUpToTick(px, tick float64) float64 {
	if tick <= 0 {
		return px
	}
	steps := math.Ceil(px/tick - 1e-12)
	return steps * tick
}
