package service

import (
	"fmt"
	"math"
	"time"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/config"
)

// Params — иммутабельный слепок риск-политики. Отдельная структура,
// а не *config.Config, чтобы Validate оставался чистой функцией.
type Params struct {
	TradingEnabled           bool
	AllowedSymbol            string
	MaxDailyLossPoints       float64
	DailyProfitTargetPoints  float64
	MinRiskReward            float64
	MaxEquityDrawdownPercent float64

	WindowStart string
	WindowEnd   string
	WindowTZ    string
}

func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		TradingEnabled:           cfg.Risk.TradingEnabled,
		AllowedSymbol:            cfg.Risk.AllowedSymbol,
		MaxDailyLossPoints:       cfg.Risk.MaxDailyLossPoints,
		DailyProfitTargetPoints:  cfg.Risk.DailyProfitTargetPoints,
		MinRiskReward:            cfg.Risk.MinRiskReward,
		MaxEquityDrawdownPercent: cfg.Risk.MaxEquityDrawdownPercent,
		WindowStart:              cfg.Window.Start,
		WindowEnd:                cfg.Window.End,
		WindowTZ:                 cfg.Window.TZ,
	}
}

// Verdict — исход валидации: пропуск либо структурированная причина.
type Verdict struct {
	IsValid bool
	Reason  string
}

func reject(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

// слишком широкий стоп: риск больше 1.5x от дистанции, которую
// подразумевает тейк при заявленном RR
const maxStopWideFactor = 1.5

// Validate — чистая проверка сигнала против состояния сессии.
// Порядок фиксированный, побеждает первый отказ. Одинаковая пара
// (signal, state) всегда даёт одинаковый вердикт при равном now.
func Validate(symbol string, sig *models.TradeSignal, st models.SystemState, p Params, now time.Time) Verdict {
	if !p.TradingEnabled {
		return reject("trading disabled by config")
	}
	if symbol != p.AllowedSymbol {
		return reject("symbol %s not authorized, only %s is allowed", symbol, p.AllowedSymbol)
	}
	if st.IsPaused {
		return reject("system paused: %s", st.PauseReason)
	}
	if p.DailyProfitTargetPoints > 0 && st.DailyPnlPoints >= p.DailyProfitTargetPoints {
		return reject("daily profit target reached: %.1f >= %.1f points", st.DailyPnlPoints, p.DailyProfitTargetPoints)
	}
	if p.MaxDailyLossPoints > 0 && st.DailyPnlPoints <= -p.MaxDailyLossPoints {
		return reject("daily loss limit hit: %.1f points", st.DailyPnlPoints)
	}
	if st.ConsecutiveLosses >= 2 {
		return reject("%d consecutive losses, standing down", st.ConsecutiveLosses)
	}
	if sig.RiskRewardRatio < p.MinRiskReward {
		return reject("risk:reward %.2f below required %.2f", sig.RiskRewardRatio, p.MinRiskReward)
	}

	riskDist := math.Abs(sig.EntryPrice - sig.StopLoss)
	rewardDist := math.Abs(sig.TakeProfit - sig.EntryPrice)
	if riskDist <= 0 || rewardDist <= 0 {
		return reject("degenerate SL/TP: risk=%.2f reward=%.2f", riskDist, rewardDist)
	}
	if expected := rewardDist / sig.RiskRewardRatio; riskDist > maxStopWideFactor*expected {
		return reject("stop too wide: %.1f points vs expected %.1f", riskDist, expected)
	}

	inWindow, err := InWindow(now, p.WindowStart, p.WindowEnd, p.WindowTZ)
	if err != nil {
		return reject("trading window check failed: %v", err)
	}
	if !inWindow {
		return reject("outside trading window %s-%s %s", p.WindowStart, p.WindowEnd, p.WindowTZ)
	}

	if p.MaxEquityDrawdownPercent > 0 && st.PeakBalance > 0 {
		dd := (st.PeakBalance - st.Equity) / st.PeakBalance * 100
		if dd > p.MaxEquityDrawdownPercent {
			return reject("equity drawdown %.2f%% exceeds %.2f%%", dd, p.MaxEquityDrawdownPercent)
		}
	}

	if st.IsWeeklyLocked {
		return reject("weekly lock active")
	}

	return Verdict{IsValid: true}
}

// UpdateAfterTrade — чистый переход состояния после закрытия сделки:
// PnL копится, счётчик сделок растёт, серия лоссов сбрасывается на
// профите и растёт на лоссе. Автопауза срабатывает, когда НОВОЕ
// состояние впервые пересекает порог.
func UpdateAfterTrade(st models.SystemState, pnlPoints float64, p Params) models.SystemState {
	st.DailyPnlPoints += pnlPoints
	st.TradesToday++

	if pnlPoints > 0 {
		st.ConsecutiveLosses = 0
	} else if pnlPoints < 0 {
		st.ConsecutiveLosses++
	}

	if st.IsPaused {
		return st
	}

	switch {
	case p.DailyProfitTargetPoints > 0 && st.DailyPnlPoints >= p.DailyProfitTargetPoints:
		st.IsPaused = true
		st.PauseReason = fmt.Sprintf("daily profit target reached (%.1f points)", st.DailyPnlPoints)
	case p.MaxDailyLossPoints > 0 && st.DailyPnlPoints <= -p.MaxDailyLossPoints:
		st.IsPaused = true
		st.PauseReason = fmt.Sprintf("daily loss limit hit (%.1f points)", st.DailyPnlPoints)
	case st.ConsecutiveLosses >= 2:
		st.IsPaused = true
		st.PauseReason = fmt.Sprintf("%d consecutive losses", st.ConsecutiveLosses)
	}

	return st
}
