package strategy

import (
	"smc_bot/internal/modules/strategy/service"

	candlesvc "smc_bot/internal/modules/candles/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(s *candlesvc.Store) service.SnapshotProvider { return s },
			service.NewEngine, // *service.Engine
		),
	)
}
