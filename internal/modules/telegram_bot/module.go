package telegram

import (
	"context"

	"smc_bot/internal/modules/telegram_bot/service"

	marketsvc "smc_bot/internal/modules/marketdata/service"
	papersvc "smc_bot/internal/modules/paper/service"
	risksvc "smc_bot/internal/modules/risk/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			service.NewTelegram,
			func(t *service.Telegram) papersvc.ServiceNotifier { return t },
			func(t *service.Telegram) marketsvc.ServiceNotifier { return t },
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			t *service.Telegram,
			trader *papersvc.Trader,
			keeper *risksvc.StateKeeper,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					t.Bind(trader, keeper)
					t.Start(ctx)
					return nil
				},
			})
		}),
	)
}
