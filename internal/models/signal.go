package models

// TradeSignal — результат одного прохода анализа. Эфемерный value object:
// каждый проход строит свежий, ничего не шарится.
type TradeSignal struct {
	Direction        Direction
	EntryPrice       float64
	StopLoss         float64
	TakeProfit       float64
	Confidence       float64 // 0..100
	Reason           string
	PatternsDetected []string
	TimeframeBias    map[Timeframe]Direction
	RiskRewardRatio  float64
	ShouldTrade      bool
}

// AnalysisResult — сигнал либо объяснение, почему его нет.
// Signal == nil => no-signal, Reason обязателен.
type AnalysisResult struct {
	Signal *TradeSignal
	Reason string
}
