package prometheus

// Metrics naming should follow the guidelines from: https://prometheus.io/docs/practices/naming/
// In short:
// 	all metrics should be in base units, do not mix units,
// 	add suffix describing the unit,
// 	use 'total' suffix for accumulating counter

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/stake-ledger/components/prometheus/collector"
	"github.com/iotaledger/stake-ledger/components/ticker"
	"github.com/iotaledger/stake-ledger/pkg/daemon"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func init() {
	Component = &app.Component{
		Name:     "Prometheus",
		DepsFunc: func(cDeps dependencies) { deps = cDeps },
		Params:   params,
		Provide:  provide,
		Run:      run,
		IsEnabled: func(_ *dig.Container) bool {
			return ParamsPrometheus.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Ledger     *ledger.Ledger
	Statistics *ticker.Statistics `optional:"true"`
	Collector  *collector.Collector
}

func provide(c *dig.Container) error {
	return c.Provide(collector.New)
}

func run() error {
	Component.LogInfo("Starting Prometheus exporter ...")

	if err := registerMetrics(); err != nil {
		return err
	}

	return Component.Daemon().BackgroundWorker("Prometheus exporter", func(ctx context.Context) {
		Component.LogInfo("Starting Prometheus exporter ... done")

		engine := echo.New()
		engine.HideBanner = true
		engine.Use(middleware.Recover())
		engine.GET("/metrics", metricsHandler(deps.Collector))

		bindAddr := ParamsPrometheus.BindAddress
		server := &http.Server{Addr: bindAddr, Handler: engine, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}

		go func() {
			Component.LogInfof("You can now access the Prometheus exporter using: http://%s/metrics", bindAddr)
			if err := server.ListenAndServe(); err != nil && !ierrors.Is(err, http.ErrServerClosed) {
				Component.LogErrorf("Stopping Prometheus exporter due to an error: %s", err)
			}
		}()

		<-ctx.Done()
		Component.LogInfo("Stopping Prometheus exporter ...")

		shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCtxCancel()

		//nolint:contextcheck // false positive
		if err := server.Shutdown(shutdownCtx); err != nil {
			Component.LogError(err.Error())
		}

		Component.LogInfo("Stopping Prometheus exporter ... done")
	}, daemon.PriorityMetrics)
}

func registerMetrics() error {
	if ParamsPrometheus.GoMetrics {
		deps.Collector.Registry.MustRegister(collectors.NewGoCollector())
	}
	if ParamsPrometheus.ProcessMetrics {
		deps.Collector.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	if ParamsPrometheus.Collections.Ledger {
		if err := deps.Collector.RegisterCollection(newLedgerMetrics(deps.Ledger, deps.Collector)); err != nil {
			return err
		}
	}

	if ParamsPrometheus.Collections.Ticker && deps.Statistics != nil {
		return deps.Collector.RegisterCollection(newTickerMetrics(deps.Statistics))
	}

	return nil
}

func metricsHandler(c *collector.Collector) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if err := c.Collect(); err != nil {
			Component.LogWarnf("failed to collect metrics: %s", err)
		}

		handler := promhttp.HandlerFor(
			c.Registry,
			promhttp.HandlerOpts{
				EnableOpenMetrics: true,
			},
		)
		if ParamsPrometheus.PromhttpMetrics {
			handler = promhttp.InstrumentMetricHandler(c.Registry, handler)
		}
		handler.ServeHTTP(ctx.Response().Writer, ctx.Request())

		return nil
	}
}
