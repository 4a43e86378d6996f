package main

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
	"github.com/2HgO/fixedfloat-go/db"
	"github.com/2HgO/fixedfloat-go/handlers"
	"github.com/2HgO/fixedfloat-go/services"
)

func main() {
	fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Provide(
			config.Load,
			NewHttpServer,
			NewRootHandler,
			fx.Annotate(
				NewServeMux,
				fx.ParamTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewAccountHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewExchangeHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewUtilsHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			handlers.NewMiddlewareHandler,
			fx.Annotate(
				NewGatewayClient,
				fx.As(new(services.Gateway)),
			),
			services.NewExchangeService,
			services.NewAccountService,
			services.NewSchedulerService,
			db.GetDataDBConnection,
			NewScheduler,
			NewRegistry,
			zap.NewProduction,
		),
		fx.Invoke(StartTokenPurge),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}
