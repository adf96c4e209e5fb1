package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"smc_bot/internal/analysis"
	"smc_bot/internal/models"

	"github.com/opentracing/opentracing-go"
)

// минимум подтверждённых свечей на таймфрейм; 1h без порога —
// структура по нему считается с первых свингов
var minCandles = map[models.Timeframe]int{
	models.TF1m:  100,
	models.TF5m:  50,
	models.TF15m: 30,
	models.TF1h:  0,
}

const (
	patternLookback = 50
	recentGrabIn    = 10 // свип считается свежим в пределах 10 свечей 5m

	fvgStopPad  = 5.0  // стоп за границей гэпа
	grabStopPad = 10.0 // стоп за хвостом свипа
	rewardRatio = 2.0  // тейк всегда 2R

	fvgConfidence = 0.8 // у гэпа нет собственной градации, фикс
	eqConfidence  = 0.6 // равные уровни — косвенное подтверждение
	minConfidence = 60.0
)

// SnapshotProvider — copy-on-read срезы свечей по таймфреймам.
type SnapshotProvider interface {
	Snapshots() map[models.Timeframe][]models.Candle
}

// Engine — комбинатор четырёх таймфреймов в направленный сигнал.
// Сам проход синхронный и read-only: работает только со снапшотами.
type Engine struct {
	snaps SnapshotProvider
}

func NewEngine(snaps SnapshotProvider) *Engine {
	return &Engine{snaps: snaps}
}

// RunAnalysis — один проход анализа по текущим снапшотам.
// Текущая цена — close живой 1m свечи, т.е. последний известный принт.
func (e *Engine) RunAnalysis(ctx context.Context, price float64) models.AnalysisResult {
	span, _ := opentracing.StartSpanFromContext(ctx, "run_analysis")
	defer span.Finish()

	res := Analyze(e.snaps.Snapshots(), price)
	if res.Signal != nil {
		span.SetTag("direction", string(res.Signal.Direction))
		span.SetTag("confidence", res.Signal.Confidence)
	}
	return res
}

// Analyze — чистое ядро движка, вынесено из Engine ради тестов.
// Порядок причин отказа фиксированный: данные -> нейтральный тренд ->
// рассинхрон таймфреймов -> не та зона -> нет паттерна -> слабый скор.
func Analyze(snaps map[models.Timeframe][]models.Candle, price float64) models.AnalysisResult {
	for _, tf := range models.AllTimeframes() {
		if need := minCandles[tf]; len(snaps[tf]) < need {
			return models.AnalysisResult{
				Reason: fmt.Sprintf("insufficient data: %s has %d/%d candles", tf, len(snaps[tf]), need),
			}
		}
	}

	bias := map[models.Timeframe]models.Direction{}
	for _, tf := range models.AllTimeframes() {
		bias[tf] = analysis.AnalyzeStructure(snaps[tf]).Trend
	}

	trendHTF := bias[models.TF1h]
	trendMTF := bias[models.TF15m]
	if trendHTF == models.DirectionNeutral || trendMTF == models.DirectionNeutral {
		return models.AnalysisResult{
			Reason: fmt.Sprintf("neutral trend: 1h=%s 15m=%s, no edge", trendHTF, trendMTF),
		}
	}
	if trendHTF != trendMTF {
		return models.AnalysisResult{
			Reason: fmt.Sprintf("timeframe mismatch: 1h=%s vs 15m=%s", trendHTF, trendMTF),
		}
	}
	overall := trendHTF

	pd := analysis.PremiumDiscount(snaps[models.TF15m], 0, price)
	wantZone := models.ZoneDiscount
	if overall == models.DirectionBearish {
		wantZone = models.ZonePremium
	}
	if pd.Zone != wantZone {
		return models.AnalysisResult{
			Reason: fmt.Sprintf("price in %s zone, %s entries need %s (eq=%.2f)",
				pd.Zone, overall, wantZone, pd.Equilibrium),
		}
	}

	m5 := snaps[models.TF5m]
	gaps := analysis.DetectFairValueGaps(m5, patternLookback)
	grabs := analysis.DetectLiquidityGrabs(m5, 20)
	blocks := analysis.DetectOrderBlocks(m5, patternLookback)

	entryGap := pickEntryGap(gaps, overall, price)
	entryGrab := pickRecentGrab(grabs, overall, len(m5))
	if entryGap == nil && entryGrab == nil {
		return models.AnalysisResult{
			Reason: fmt.Sprintf("no entry pattern: no unfilled %s FVG at price and no recent %s sweep", overall, overall),
		}
	}

	sig := buildSignal(overall, price, entryGap, entryGrab)

	// подтверждающие паттерны в ту же сторону добирают скор
	confidences := []float64{}
	if entryGap != nil {
		sig.PatternsDetected = append(sig.PatternsDetected, "fair_value_gap")
		confidences = append(confidences, fvgConfidence)
	}
	if entryGrab != nil {
		sig.PatternsDetected = append(sig.PatternsDetected, "liquidity_grab")
		confidences = append(confidences, entryGrab.Confidence)
	}
	for _, ob := range blocks {
		if ob.Type == overall {
			sig.PatternsDetected = append(sig.PatternsDetected, "order_block")
			confidences = append(confidences, ob.Strength)
			break
		}
	}
	for _, ab := range analysis.DetectAbsorption(m5, patternLookback) {
		if ab.Type == overall {
			sig.PatternsDetected = append(sig.PatternsDetected, "absorption")
			confidences = append(confidences, math.Min(ab.VolumeRatio/2, 1))
			break
		}
	}
	for _, bb := range analysis.DetectBreakerBlocks(m5, patternLookback) {
		if bb.Type == overall {
			sig.PatternsDetected = append(sig.PatternsDetected, "breaker_block")
			confidences = append(confidences, bb.Confidence)
			break
		}
	}
	// неснятая равная ликвидность на 15m по ходу тренда — магнит для цены
	for _, z := range analysis.EqualLevels(snaps[models.TF15m], patternLookback) {
		if z.Swept {
			continue
		}
		if overall == models.DirectionBullish && z.IsHigh && z.Level > price {
			sig.PatternsDetected = append(sig.PatternsDetected, "equal_highs")
			confidences = append(confidences, eqConfidence)
			break
		}
		if overall == models.DirectionBearish && !z.IsHigh && z.Level < price {
			sig.PatternsDetected = append(sig.PatternsDetected, "equal_lows")
			confidences = append(confidences, eqConfidence)
			break
		}
	}

	aligned := 0
	for _, tf := range models.AllTimeframes() {
		if bias[tf] == overall {
			aligned++
		}
	}
	sig.TimeframeBias = bias
	sig.Confidence = confidenceScore(confidences, aligned)

	if sig.Confidence < minConfidence {
		sig.ShouldTrade = false
		sig.Reason = fmt.Sprintf("confluence too weak: confidence %.0f < %.0f", sig.Confidence, minConfidence)
		return models.AnalysisResult{Signal: sig, Reason: sig.Reason}
	}

	sig.ShouldTrade = true
	sig.Reason = fmt.Sprintf("%s setup in %s zone: %v, 1h/15m aligned, %d/4 timeframes agree",
		overall, wantZone, sig.PatternsDetected, aligned)
	return models.AnalysisResult{Signal: sig, Reason: sig.Reason}
}

// pickEntryGap — непокрытый гэп по тренду, содержащий цену; из
// нескольких берём самый свежий.
func pickEntryGap(gaps []models.FairValueGap, dir models.Direction, price float64) *models.FairValueGap {
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].CandleIndex > gaps[j].CandleIndex })
	for i := range gaps {
		if gaps[i].Type == dir && gaps[i].Contains(price) {
			return &gaps[i]
		}
	}
	return nil
}

func pickRecentGrab(grabs []models.LiquidityGrab, dir models.Direction, total int) *models.LiquidityGrab {
	for i := len(grabs) - 1; i >= 0; i-- {
		g := grabs[i]
		if g.Type == dir && g.CandleIndex >= total-recentGrabIn {
			return &grabs[i]
		}
	}
	return nil
}

// buildSignal — вход по текущей цене, стоп за паттерном, тейк строго 2R.
// Гэп приоритетнее свипа: у него точнее граница для стопа.
func buildSignal(dir models.Direction, price float64, gap *models.FairValueGap, grab *models.LiquidityGrab) *models.TradeSignal {
	var stop float64
	switch {
	case gap != nil && dir == models.DirectionBullish:
		stop = gap.Bottom - fvgStopPad
	case gap != nil:
		stop = gap.Top + fvgStopPad
	case dir == models.DirectionBullish:
		stop = grab.ExtremePrice - grabStopPad
	default:
		stop = grab.ExtremePrice + grabStopPad
	}

	risk := math.Abs(price - stop)
	take := price + rewardRatio*risk
	if dir == models.DirectionBearish {
		take = price - rewardRatio*risk
	}

	return &models.TradeSignal{
		Direction:       dir,
		EntryPrice:      price,
		StopLoss:        stop,
		TakeProfit:      take,
		RiskRewardRatio: rewardRatio,
	}
}

// score = avg(conf)*50 + (aligned/4)*30 + min(count*5, 20), зажат в 0..100
func confidenceScore(confidences []float64, aligned int) float64 {
	var avg float64
	for _, c := range confidences {
		avg += c
	}
	if len(confidences) > 0 {
		avg /= float64(len(confidences))
	}

	score := avg*50 + float64(aligned)/4*30 + math.Min(float64(len(confidences))*5, 20)
	return math.Max(0, math.Min(100, score))
}
