package ticker

import (
	"go.uber.org/atomic"

	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

// Statistics counts the ticks issued by the ticker.
type Statistics struct {
	Ticks    *atomic.Uint64
	Failures *atomic.Uint64

	executedTasks *shrinkingmap.ShrinkingMap[ledger.TaskName, *atomic.Uint64]
}

func NewStatistics() *Statistics {
	s := &Statistics{
		Ticks:         atomic.NewUint64(0),
		Failures:      atomic.NewUint64(0),
		executedTasks: shrinkingmap.New[ledger.TaskName, *atomic.Uint64](),
	}

	for _, task := range ledger.TaskNames {
		s.executedTasks.Set(task, atomic.NewUint64(0))
	}

	return s
}

// recordTick counts the tick last, so a reader that observed the tick also observes its outcome.
func (s *Statistics) recordTick(receipt *ledger.Receipt, err error) {
	defer s.Ticks.Inc()

	if err != nil {
		s.Failures.Inc()

		return
	}

	for _, task := range receipt.ExecutedTasks {
		if counter, exists := s.executedTasks.Get(task); exists {
			counter.Inc()
		}
	}
}

// ExecutedTasks returns how often each task was executed by a tick.
func (s *Statistics) ExecutedTasks() map[ledger.TaskName]uint64 {
	executed := make(map[ledger.TaskName]uint64, s.executedTasks.Size())
	s.executedTasks.ForEach(func(task ledger.TaskName, counter *atomic.Uint64) bool {
		executed[task] = counter.Load()

		return true
	})

	return executed
}
