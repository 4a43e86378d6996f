package main

import (
	"context"
	"net"
	"net/http"

	gh "github.com/gorilla/handlers"
	"github.com/madflojo/tasks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
	"github.com/2HgO/fixedfloat-go/fixedfloat"
	"github.com/2HgO/fixedfloat-go/handlers"
	"github.com/2HgO/fixedfloat-go/services"
	"github.com/2HgO/fixedfloat-go/utils"
)

func NewHttpServer(lc fx.Lifecycle, cfg *config.Config, handler http.Handler, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Named("http")),
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func NewServeMux(routers []handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, router := range routers {
		router.ServeHttp(mux)
	}
	return mux
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewRootHandler wraps the mux, outermost first, in panic recovery, CORS,
// access logging, request metrics and AppError recovery.
func NewRootHandler(mux *http.ServeMux, middlewares handlers.MiddleWareHandler, reg *prometheus.Registry, cfg *config.Config, log *zap.Logger) http.Handler {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of inbound API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"code", "method"})
	reg.MustRegister(duration)

	return utils.Chain(mux,
		gh.RecoveryHandler(gh.RecoveryLogger(zap.NewStdLog(log.Named("recovery"))), gh.PrintRecoveryStack(true)),
		gh.CORS(
			gh.AllowedOrigins(cfg.HTTP.Origins()),
			gh.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			gh.AllowedHeaders([]string{"Content-Type", "Authorization"}),
			gh.AllowCredentials(),
		),
		middlewares.LogRequests,
		func(h http.Handler) http.Handler { return promhttp.InstrumentHandlerDuration(duration, h) },
		middlewares.RecoverAppError,
	)
}

// NewGatewayClient builds the exchange client on a transport that reports
// round trip counts, latency and in-flight requests.
func NewGatewayClient(cfg *config.Config, reg *prometheus.Registry) (*fixedfloat.Client, error) {
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fixedfloat_in_flight_requests",
		Help: "Exchange API requests currently in flight.",
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fixedfloat_requests_total",
		Help: "Exchange API requests by HTTP status.",
	}, []string{"code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fixedfloat_request_duration_seconds",
		Help:    "Exchange API round trip latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"code"})
	reg.MustRegister(inFlight, requests, duration)

	transport := promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(requests,
			promhttp.InstrumentRoundTripperDuration(duration, http.DefaultTransport),
		),
	)

	return fixedfloat.NewClient(fixedfloat.Config{
		BaseURL:   cfg.FixedFloat.BaseURL,
		APIKey:    cfg.FixedFloat.APIKey,
		APISecret: cfg.FixedFloat.APISecret,
		Timeout:   cfg.FixedFloat.Timeout,
	}, fixedfloat.WithHTTPClient(&http.Client{Timeout: cfg.FixedFloat.Timeout, Transport: transport}))
}

func NewScheduler(lc fx.Lifecycle) *tasks.Scheduler {
	scheduler := tasks.New()
	lc.Append(fx.StopHook(scheduler.Stop))
	return scheduler
}

func StartTokenPurge(lc fx.Lifecycle, scheduler services.SchedulerService, log *zap.Logger) {
	var taskID string
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			id, err := scheduler.ScheduleTokenPurge()
			if err != nil {
				return err
			}
			taskID = id
			log.Info("scheduled access token purge", zap.String("task", taskID))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.DropTask(taskID)
			return nil
		},
	})
}
