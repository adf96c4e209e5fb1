package analysis

import "smc_bot/internal/models"

const (
	swingWindow   = 5  // симметричное окно ±5 свечей для свинга
	breakLookback = 20 // окно BOS/CHOCH
	chochShift    = 5  // сколько баров назад берём close для CHOCH
)

// AnalyzeStructure строит свинговую структуру: тренд по свингам,
// последний BOS/CHOCH и накопленные higher highs / lower lows.
func AnalyzeStructure(candles []models.Candle) models.MarketStructure {
	ms := models.MarketStructure{Trend: models.DirectionNeutral}
	if len(candles) < swingWindow*2+1 {
		return ms
	}

	highs := swingHighs(candles)
	lows := swingLows(candles)

	ascHighs := ascendingCount(highs)
	descLows := descendingCount(lows)

	switch {
	case ascHighs >= 2 && descLows < 2:
		ms.Trend = models.DirectionBullish
	case descLows >= 2 && ascHighs < 2:
		ms.Trend = models.DirectionBearish
	}

	// растущие хаи и падающие лои — как есть, для объяснения сигнала
	for i := 1; i < len(highs); i++ {
		if highs[i] > highs[i-1] {
			ms.HigherHighs = append(ms.HigherHighs, highs[i])
		}
	}
	for i := 1; i < len(lows); i++ {
		if lows[i] < lows[i-1] {
			ms.LowerLows = append(ms.LowerLows, lows[i])
		}
	}

	ms.LastBOS, ms.LastCHOCH = detectBreaks(candles)
	return ms
}

// свинг-хай: экстремум в симметричном окне ±swingWindow
func swingHighs(candles []models.Candle) []float64 {
	var out []float64
	for i := swingWindow; i < len(candles)-swingWindow; i++ {
		isSwing := true
		for j := i - swingWindow; j <= i+swingWindow; j++ {
			if j != i && candles[j].High > candles[i].High {
				isSwing = false
				break
			}
		}
		if isSwing {
			out = append(out, candles[i].High)
		}
	}
	return out
}

func swingLows(candles []models.Candle) []float64 {
	var out []float64
	for i := swingWindow; i < len(candles)-swingWindow; i++ {
		isSwing := true
		for j := i - swingWindow; j <= i+swingWindow; j++ {
			if j != i && candles[j].Low < candles[i].Low {
				isSwing = false
				break
			}
		}
		if isSwing {
			out = append(out, candles[i].Low)
		}
	}
	return out
}

func ascendingCount(levels []float64) int {
	n := 0
	for i := 1; i < len(levels); i++ {
		if levels[i] > levels[i-1] {
			n++
		}
	}
	return n
}

func descendingCount(levels []float64) int {
	n := 0
	for i := 1; i < len(levels); i++ {
		if levels[i] < levels[i-1] {
			n++
		}
	}
	return n
}

// detectBreaks — BOS по пробою экстремума последних 20 свечей (без
// текущей), CHOCH — когда текущий close и close 5 барами раньше стоят
// по разные стороны середины 20-свечного диапазона.
func detectBreaks(candles []models.Candle) (bos, choch *models.StructureBreak) {
	if len(candles) < breakLookback+1 {
		return nil, nil
	}

	last := candles[len(candles)-1]
	window := candles[len(candles)-1-breakLookback : len(candles)-1]
	lo, hi := windowExtremes(window)

	if last.Close > hi {
		bos = &models.StructureBreak{Type: models.DirectionBullish, Level: hi}
	} else if last.Close < lo {
		bos = &models.StructureBreak{Type: models.DirectionBearish, Level: lo}
	}

	if len(candles) > chochShift {
		mid := (hi + lo) / 2
		prev := candles[len(candles)-1-chochShift].Close
		switch {
		case last.Close > mid && prev < mid:
			choch = &models.StructureBreak{Type: models.DirectionBullish, Level: mid}
		case last.Close < mid && prev > mid:
			choch = &models.StructureBreak{Type: models.DirectionBearish, Level: mid}
		}
	}
	return bos, choch
}
