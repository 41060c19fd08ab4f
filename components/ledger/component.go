package ledger

import (
	"context"
	"time"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/runtime/timeutil"
	"github.com/iotaledger/stake-ledger/pkg/daemon"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func init() {
	Component = &app.Component{
		Name:      "Ledger",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		Provide:   provide,
		Configure: configure,
		Run:       run,
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Ledger *ledger.Ledger
}

func provide(c *dig.Container) error {
	return c.Provide(func() *ledger.Ledger {
		l := ledger.New(mapdb.NewMapDB(), Component.NewChildLogger("Ledger"))

		imported, err := importSnapshot(l, ParamsLedger.Snapshot.Path)
		if err != nil {
			Component.LogPanicf("failed to import snapshot %s: %s", ParamsLedger.Snapshot.Path, err)
		}

		if !imported {
			Component.LogInfof("snapshot %s not found, initializing a new ledger", ParamsLedger.Snapshot.Path)

			config, err := configFromParams()
			if err != nil {
				Component.LogPanicf("invalid ledger parameters: %s", err)
			}

			if err = l.Initialize(config); err != nil {
				Component.LogPanicf("failed to initialize ledger: %s", err)
			}
		}

		return l
	})
}

func configFromParams() (*ledger.Config, error) {
	owner, err := ledger.AddressFromString(ParamsLedger.Owner)
	if err != nil {
		return nil, err
	}

	return &ledger.Config{
		Owner:                       owner,
		RewardAccrualInterval:       seconds(ParamsLedger.Intervals.RewardAccrual),
		MaturationInterval:          seconds(ParamsLedger.Intervals.Maturation),
		RedemptionRateQueryInterval: seconds(ParamsLedger.Intervals.RedemptionRateQuery),
		RewardsWithdrawalInterval:   seconds(ParamsLedger.Intervals.RewardsWithdrawal),
		RedemptionIntervalThreshold: seconds(ParamsLedger.RedemptionIntervalThreshold),
	}, nil
}

func seconds(duration time.Duration) uint64 {
	if duration < 0 {
		return 0
	}

	return uint64(duration / time.Second)
}

func configure() error {
	deps.Ledger.Events.DepositRecordCreated.Hook(func(record *ledger.DepositRecord) {
		Component.LogDebugf("DepositRecordCreated: %s", record)
	})

	deps.Ledger.Events.DepositRecordCompleted.Hook(func(record *ledger.DepositRecord) {
		Component.LogDebugf("DepositRecordCompleted: %s", record)
	})

	deps.Ledger.Events.TotalLiquidStakeUpdated.Hook(func(total ledger.Amount) {
		Component.LogInfof("TotalLiquidStakeUpdated: %s", total)
	})

	deps.Ledger.Events.StakeRatioUpdated.Hook(func(update *ledger.StakeRatioUpdate) {
		Component.LogInfof("StakeRatioUpdated: %s -> %s, liquidity %s to %s", update.Account, update.Ratio, update.LiquidityAmount, update.LiquidityAddress)
	})

	deps.Ledger.Events.RedemptionRatioUpdated.Hook(func(update *ledger.RedemptionRatioUpdate) {
		Component.LogInfof("RedemptionRatioUpdated: %s -> %s, %s to %s", update.Account, update.Ratio, update.Amount, update.RedemptionAddress)
	})

	deps.Ledger.Events.LiquidStake.Hook(func(event *ledger.LiquidStakeEvent) {
		Component.LogInfof("LiquidStake: total %s, obtained %s, tx %s", event.TotalLiquidStake, event.ObtainedAmount, event.TxHash)
	})

	deps.Ledger.Events.LiquidityDistributed.Hook(func(distributions []*ledger.LiquidityDistribution) {
		Component.LogInfof("LiquidityDistributed: %d addresses", len(distributions))
	})

	deps.Ledger.Events.TaskExecuted.Hook(func(task ledger.TaskName) {
		Component.LogDebugf("TaskExecuted: %s", task)
	})

	return nil
}

func run() error {
	return Component.Daemon().BackgroundWorker(Component.Name, func(ctx context.Context) {
		if ParamsLedger.Snapshot.Interval > 0 {
			ticker := timeutil.NewTicker(writeSnapshot, ParamsLedger.Snapshot.Interval, ctx)
			ticker.WaitForGracefulShutdown()
		}

		<-ctx.Done()
		Component.LogInfo("Gracefully shutting down the Ledger...")

		writeSnapshot()
	}, daemon.PriorityLedger)
}

func writeSnapshot() {
	start := time.Now()

	if err := exportSnapshot(deps.Ledger, ParamsLedger.Snapshot.Path, ParamsLedger.Snapshot.KeepBackup); err != nil {
		Component.LogErrorf("failed to write snapshot %s: %s", ParamsLedger.Snapshot.Path, err)

		return
	}

	Component.LogDebugf("snapshot written to %s, took %v", ParamsLedger.Snapshot.Path, time.Since(start).Truncate(time.Millisecond))
}
