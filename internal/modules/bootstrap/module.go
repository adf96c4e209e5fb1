package bootstrap

import (
	"context"

	"smc_bot/internal/modules/bootstrap/service"
	papersvc "smc_bot/internal/modules/paper/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			func(n papersvc.ServiceNotifier) service.ServiceNotifier { return n },
			service.NewWarmuper,
		),
		fx.Invoke(func(lc fx.Lifecycle, w *service.Warmuper, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(startCtx context.Context) error {
					// прогрев до запуска стрима: иначе анализ стартует пустым
					return w.Warmup(ctx)
				},
			})
		}),
	)
}
