package candles

import (
	"context"

	"smc_bot/internal/modules/candles/service"
	"smc_bot/internal/modules/candles/service/pg"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("candles",
		fx.Provide(
			service.NewStore,
			pg.NewCandles,
		),
		fx.Invoke(func(lc fx.Lifecycle, s *service.Store, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					s.Start(ctx)
					return nil
				},
			})
		}),
	)
}
