package main

import (
	"context"
	"log"

	"smc_bot/internal/modules/bootstrap"
	"smc_bot/internal/modules/candles"
	"smc_bot/internal/modules/config"
	"smc_bot/internal/modules/health"
	"smc_bot/internal/modules/marketdata"
	"smc_bot/internal/modules/paper"
	"smc_bot/internal/modules/postgres"
	"smc_bot/internal/modules/risk"
	"smc_bot/internal/modules/strategy"
	"smc_bot/internal/runner"
	"smc_bot/pkg/logger"
	"smc_bot/pkg/tracing"

	telegram "smc_bot/internal/modules/telegram_bot"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		health.Module(),
		candles.Module(),
		marketdata.Module(),
		strategy.Module(),
		risk.Module(),
		paper.Module(),
		telegram.Module(),
		bootstrap.Module(),
		runner.Module(),
		fx.Invoke(func(cfg *config.Config) {
			_, closer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				logger.Error("jaeger init failed: %v", err)
				return
			}
			_ = closer
		}),
	)
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
	<-app.Done()
}
