package analysis

import (
	"testing"

	"smc_bot/internal/models"
)

// бывшая поддержка на уровне 100 (лои трогали много раз), пробой вниз
// и отбой от уровня снизу в пределах десяти свечей
func candlesWithBrokenSupport() []models.Candle {
	var out []models.Candle
	for i := 0; i < 10; i++ {
		out = append(out, models.Candle{
			Time: int64(i * 300), Open: 105, High: 107, Low: 100, Close: 106, Volume: 100,
		})
	}
	// пробой
	out = append(out, models.Candle{Time: 10 * 300, Open: 99, High: 99, Low: 91, Close: 92, Volume: 150})
	// отбой: high дотянулся до уровня, close остался ниже
	out = append(out, models.Candle{Time: 11 * 300, Open: 96, High: 101, Low: 95, Close: 97, Volume: 130})
	for i := 12; i < 20; i++ {
		out = append(out, models.Candle{
			Time: int64(i * 300), Open: 96, High: 98, Low: 94, Close: 96.5, Volume: 100,
		})
	}
	return out
}

func TestDetectBreakerBlocksBearish(t *testing.T) {
	blocks := DetectBreakerBlocks(candlesWithBrokenSupport(), 0)

	var found *models.BreakerBlock
	for i := range blocks {
		if blocks[i].Type == models.DirectionBearish && blocks[i].Level == 100 {
			found = &blocks[i]
		}
	}
	if found == nil {
		t.Fatalf("no bearish breaker at level 100: %+v", blocks)
	}
	if found.Touches < 2 {
		t.Errorf("touches = %d, want >= 2", found.Touches)
	}
	if found.Confidence != 0.70 {
		t.Errorf("confidence = %.2f, want fixed 0.70", found.Confidence)
	}
	if found.CandleIndex != 11 {
		t.Errorf("candle index = %d, want rejection candle 11", found.CandleIndex)
	}
}

func TestDetectBreakerBlocksBullish(t *testing.T) {
	// зеркало: бывшее сопротивление 100, пробой вверх, отбой сверху
	var out []models.Candle
	for i := 0; i < 10; i++ {
		out = append(out, models.Candle{
			Time: int64(i * 300), Open: 95, High: 100, Low: 93, Close: 94, Volume: 100,
		})
	}
	out = append(out, models.Candle{Time: 10 * 300, Open: 101, High: 109, Low: 101, Close: 108, Volume: 150})
	out = append(out, models.Candle{Time: 11 * 300, Open: 104, High: 105, Low: 99, Close: 103, Volume: 130})
	for i := 12; i < 20; i++ {
		out = append(out, models.Candle{
			Time: int64(i * 300), Open: 104, High: 106, Low: 102, Close: 105, Volume: 100,
		})
	}

	blocks := DetectBreakerBlocks(out, 0)
	var found *models.BreakerBlock
	for i := range blocks {
		if blocks[i].Type == models.DirectionBullish && blocks[i].Level == 100 {
			found = &blocks[i]
		}
	}
	if found == nil {
		t.Fatalf("no bullish breaker at level 100: %+v", blocks)
	}
	if found.CandleIndex != 11 {
		t.Errorf("candle index = %d, want 11", found.CandleIndex)
	}
}

func TestDetectBreakerBlocksNoneOnFlat(t *testing.T) {
	if blocks := DetectBreakerBlocks(flatCandles(30), 0); len(blocks) != 0 {
		t.Errorf("flat series has no breaks, got %+v", blocks)
	}
	// окна меньше минимума недостаточно
	if blocks := DetectBreakerBlocks(flatCandles(5), 0); blocks != nil {
		t.Errorf("short series must yield nil, got %+v", blocks)
	}
}

// отбой позже десяти свечей после пробоя не считается
func TestDetectBreakerBlocksRejectWindow(t *testing.T) {
	var out []models.Candle
	for i := 0; i < 10; i++ {
		out = append(out, models.Candle{
			Time: int64(i * 300), Open: 105, High: 107, Low: 100, Close: 106, Volume: 100,
		})
	}
	out = append(out, models.Candle{Time: 10 * 300, Open: 99, High: 99, Low: 91, Close: 92, Volume: 150})
	// 11 свечей глубоко под уровнем
	for i := 11; i < 22; i++ {
		out = append(out, models.Candle{
			Time: int64(i * 300), Open: 93, High: 94, Low: 91, Close: 93.5, Volume: 100,
		})
	}
	// поздний отбой
	out = append(out, models.Candle{Time: 22 * 300, Open: 96, High: 101, Low: 95, Close: 97, Volume: 130})

	for _, b := range DetectBreakerBlocks(out, 0) {
		if b.Type == models.DirectionBearish && b.Level == 100 {
			t.Errorf("rejection outside the window must not count: %+v", b)
		}
	}
}
