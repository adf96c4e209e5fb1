package paper

import (
	"smc_bot/internal/modules/paper/service"
	"smc_bot/internal/modules/paper/service/pg"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("paper",
		fx.Provide(
			pg.NewTrades,
			func(t *pg.Trades) service.TradeStore { return t },
			service.NewTrader,
		),
	)
}
