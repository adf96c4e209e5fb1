package runner

import (
	"context"
	"log"

	"smc_bot/internal/models"

	candlesvc "smc_bot/internal/modules/candles/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewRouter, // *Router
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Router,
			ticks <-chan models.Tick,
			store *candlesvc.Store,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						log.Printf("[RUNNER] tick loop started")
						for {
							select {
							case <-ctx.Done():
								log.Printf("[RUNNER] tick loop stopped")
								return
							case t, ok := <-ticks:
								if !ok {
									return
								}
								r.OnTick(ctx, t)
							}
						}
					}()
					go func() {
						for {
							select {
							case <-ctx.Done():
								return
							case ev, ok := <-store.Closed():
								if !ok {
									return
								}
								r.OnClosed(ctx, ev)
							}
						}
					}()
					go r.healthLoop(ctx)
					go r.sessionLoop(ctx)
					return nil
				},
			})
		}),
	)
}
