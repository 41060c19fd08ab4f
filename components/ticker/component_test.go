package ticker

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/kvstore/mapdb"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

func TestRunTicker(t *testing.T) {
	clock := clockwork.NewFakeClock()
	logger := log.NewLogger().NewChildLogger(t.Name())

	l := ledger.New(mapdb.NewMapDB(), logger, ledger.WithClock(clock))
	statistics := NewStatistics()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	// every tick fails as long as the ledger is not initialized
	go func() {
		runTicker(ctx, clock, 10*time.Second, l, statistics, logger)
		close(done)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool { return statistics.Ticks.Load() == 1 }, time.Second, time.Millisecond)
	require.EqualValues(t, 1, statistics.Failures.Load())

	require.NoError(t, l.Initialize(&ledger.Config{
		Owner:                 "wasm1ownerxyz",
		RewardAccrualInterval: 10,
		MaturationInterval:    30,
	}))

	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool { return statistics.Ticks.Load() == 2 }, time.Second, time.Millisecond)
	require.EqualValues(t, 1, statistics.Failures.Load())

	executed := statistics.ExecutedTasks()
	require.EqualValues(t, 1, executed[ledger.TaskRewardAccrual])
	require.Zero(t, executed[ledger.TaskMaturation])
	require.Len(t, executed, len(ledger.TaskNames))

	cancel()
	<-done
}
