package marketdata

import (
	"context"
	"log"

	"smc_bot/internal/models"
	"smc_bot/internal/modules/marketdata/service"

	"go.uber.org/fx"
)

func newTicksChan() chan models.Tick {
	return make(chan models.Tick, 8192)
}
func asRecvOnlyTicks(ch chan models.Tick) <-chan models.Tick { return ch }

func Module() fx.Option {
	return fx.Module("marketdata",
		fx.Provide(
			newTicksChan,    // chan models.Tick
			asRecvOnlyTicks, // <-chan models.Tick (для раннера)
			service.NewClient,
		),
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client, out chan models.Tick, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						log.Printf("[FEED] stream loop started")
						for tick := range c.Stream(ctx) {
							select {
							case out <- tick:
							default:
								log.Printf("[FEED] out channel full, drop t=%d", tick.Time)
							}
						}
						log.Printf("[FEED] stream loop stopped")
					}()
					return nil
				},
			})
		}),
	)
}
