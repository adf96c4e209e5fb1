package risk

import (
	"smc_bot/internal/modules/risk/service"
	"smc_bot/internal/modules/risk/service/pg"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("risk",
		fx.Provide(
			service.NewStateKeeper,
			pg.NewSessions,
		),
	)
}
