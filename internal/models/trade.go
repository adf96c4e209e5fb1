package models

import "time"

type TradeStatus string

const (
	TradeOpen    TradeStatus = "OPEN"
	TradeClosed  TradeStatus = "CLOSED" // вышли по тейку
	TradeStopped TradeStatus = "STOPPED"
)

// Trade — бумажная сделка. После перехода в CLOSED/STOPPED иммутабельна,
// попадает в леджер закрытых сделок.
type Trade struct {
	ID           int64
	Direction    Direction
	EntryPrice   float64
	EntryTime    time.Time
	StopLoss     float64
	TakeProfit   float64
	PositionSize float64
	Status       TradeStatus

	ExitPrice        float64
	ExitTime         time.Time
	ProfitLossPoints float64
	ProfitLossAmount float64
}

func (t Trade) IsOpen() bool { return t.Status == TradeOpen }

// Statistics — агрегаты по леджеру закрытых сделок. Производные,
// считаются с нуля на каждый запрос — скрытого состояния нет.
type Statistics struct {
	TotalTrades int
	Wins        int
	Losses      int
	WinRate     float64
	TotalPnL    float64 // пункты
	AvgWin      float64
	AvgLoss     float64
}
