package analysis

import (
	"math"
	"testing"

	"smc_bot/internal/models"
)

// свип лоёв на индексе 20: прокол под минимум окна, close обратно
// в диапазон, следующая свеча подтверждает
func candlesWithBullishGrab() []models.Candle {
	out := flatCandles(20) // окно: low 90, high 100
	out = append(out, models.Candle{
		Time: 20 * 300, Open: 96, High: 106, Low: 85, Close: 95, Volume: 140,
	})
	out = append(out, models.Candle{
		Time: 21 * 300, Open: 95, High: 99, Low: 94, Close: 98, Volume: 110,
	})
	return out
}

func TestDetectLiquidityGrabsBullish(t *testing.T) {
	grabs := DetectLiquidityGrabs(candlesWithBullishGrab(), 20)
	if len(grabs) != 1 {
		t.Fatalf("grabs = %d, want 1: %+v", len(grabs), grabs)
	}

	g := grabs[0]
	if g.Type != models.DirectionBullish {
		t.Errorf("type = %s, want bullish", g.Type)
	}
	if g.SweepLevel != 90 {
		t.Errorf("sweep level = %.1f, want prior low 90", g.SweepLevel)
	}
	if g.ExtremePrice != 85 {
		t.Errorf("extreme = %.1f, want sweep wick 85", g.ExtremePrice)
	}
	if g.CandleIndex != 20 {
		t.Errorf("candle index = %d, want 20", g.CandleIndex)
	}
	if g.Confidence != 0.75 {
		t.Errorf("confidence = %.2f, want fixed 0.75", g.Confidence)
	}
	// откат: (95-85) / (106-85)
	if want := 10.0 / 21.0; math.Abs(g.ReversalStrength-want) > 1e-9 {
		t.Errorf("reversal strength = %.3f, want %.3f", g.ReversalStrength, want)
	}
}

func TestDetectLiquidityGrabsBearish(t *testing.T) {
	out := flatCandles(20)
	// снятие хаёв: прокол над 100, close обратно ниже, следующая медвежья
	out = append(out, models.Candle{
		Time: 20 * 300, Open: 97, High: 108, Low: 92, Close: 96, Volume: 140,
	})
	out = append(out, models.Candle{
		Time: 21 * 300, Open: 96, High: 97, Low: 91, Close: 92, Volume: 110,
	})

	grabs := DetectLiquidityGrabs(out, 20)
	if len(grabs) != 1 {
		t.Fatalf("grabs = %d, want 1: %+v", len(grabs), grabs)
	}
	g := grabs[0]
	if g.Type != models.DirectionBearish || g.SweepLevel != 100 || g.ExtremePrice != 108 {
		t.Errorf("grab = %+v", g)
	}
}

// без подтверждающей свечи свип не считается
func TestDetectLiquidityGrabsNeedsConfirmation(t *testing.T) {
	out := candlesWithBullishGrab()
	out[20] = models.Candle{Time: 20 * 300, Open: 96, High: 99, Low: 85, Close: 95, Volume: 140}
	out[21] = models.Candle{Time: 21 * 300, Open: 95, High: 95.5, Low: 92, Close: 93, Volume: 110}

	if grabs := DetectLiquidityGrabs(out, 20); len(grabs) != 0 {
		t.Errorf("sweep with a bearish follow-up must not count, got %+v", grabs)
	}
}

func TestDetectLiquidityGrabsNoneOnFlat(t *testing.T) {
	if grabs := DetectLiquidityGrabs(flatCandles(40), 20); len(grabs) != 0 {
		t.Errorf("flat series must have no sweeps, got %+v", grabs)
	}
	// данных меньше окна
	if grabs := DetectLiquidityGrabs(flatCandles(10), 20); grabs != nil {
		t.Errorf("short series must yield nil, got %+v", grabs)
	}
}
