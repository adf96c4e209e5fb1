package models

import "time"

// SystemState — сессионное состояние риска. Единственный владелец —
// risk.StateKeeper; наружу отдаются только снапшоты по значению.
type SystemState struct {
	DailyPnlPoints    float64
	TradesToday       int
	ConsecutiveLosses int
	IsPaused          bool
	PauseReason       string
	IsWeeklyLocked    bool
	Equity            float64 // баланс + накопленный результат в валюте
	PeakBalance       float64
	LastTradeTime     time.Time
	SessionDate       string // YYYY-MM-DD в таймзоне торгов
}

// NewSessionState — чистое состояние на начало торгового дня.
func NewSessionState(balance float64, sessionDate string) SystemState {
	return SystemState{
		Equity:      balance,
		PeakBalance: balance,
		SessionDate: sessionDate,
	}
}
