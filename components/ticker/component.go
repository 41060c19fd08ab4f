package ticker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/stake-ledger/pkg/daemon"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func init() {
	Component = &app.Component{
		Name:     "Ticker",
		DepsFunc: func(cDeps dependencies) { deps = cDeps },
		Params:   params,
		Provide:  provide,
		Run:      run,
		IsEnabled: func(_ *dig.Container) bool {
			return ParamsTicker.Enabled
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
	Statistics *Statistics
}

func provide(c *dig.Container) error {
	return c.Provide(NewStatistics)
}

func run() error {
	return Component.Daemon().BackgroundWorker(Component.Name, func(ctx context.Context) {
		Component.LogInfof("Starting Ticker with interval %v", ParamsTicker.Interval)

		runTicker(ctx, clockwork.NewRealClock(), ParamsTicker.Interval, deps.Ledger, deps.Statistics, Component.Logger)

		Component.LogInfo("Stopping Ticker... done")
	}, daemon.PriorityTicker)
}

// runTicker executes a Tick as the owner of the ledger on every tick of the clock until the context is done.
func runTicker(ctx context.Context, clock clockwork.Clock, interval time.Duration, l *ledger.Ledger, statistics *Statistics, logger log.Logger) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			tick(l, statistics, logger)
		}
	}
}

func tick(l *ledger.Ledger, statistics *Statistics, logger log.Logger) {
	config, err := l.Config()
	if err != nil {
		statistics.recordTick(nil, err)
		logger.LogWarnf("failed to load ledger config: %s", err)

		return
	}

	receipt, err := l.Execute(config.Owner, &ledger.Tick{})
	statistics.recordTick(receipt, err)

	if err != nil {
		logger.LogWarnf("tick failed: %s", err)

		return
	}

	if len(receipt.ExecutedTasks) > 0 {
		logger.LogInfof("tick at height %d executed %v, created %d deposit records", receipt.Height, receipt.ExecutedTasks, len(receipt.CreatedRecords))
	}
}
