package service

import "smc_bot/internal/models"

// Statistics — агрегаты строго из леджера закрытых сделок, никакого
// скрытого состояния: два вызова подряд дают одно и то же.
func (t *Trader) Statistics() models.Statistics {
	return ComputeStatistics(t.ClosedTrades())
}

func ComputeStatistics(trades []models.Trade) models.Statistics {
	var s models.Statistics
	var winSum, lossSum float64

	for _, tr := range trades {
		s.TotalTrades++
		s.TotalPnL += tr.ProfitLossPoints
		if tr.ProfitLossPoints > 0 {
			s.Wins++
			winSum += tr.ProfitLossPoints
		} else if tr.ProfitLossPoints < 0 {
			s.Losses++
			lossSum += tr.ProfitLossPoints
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	}
	if s.Wins > 0 {
		s.AvgWin = winSum / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossSum / float64(s.Losses)
	}
	return s
}
