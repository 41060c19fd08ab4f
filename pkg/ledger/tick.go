package ledger

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
)

// tick evaluates the gate of every periodic task and runs the ones that are due. The clock of a task
// only moves forward if it ran.
func (u *unitOfWork) tick() error {
	for _, task := range TaskNames {
		interval, err := u.ledgerConfig.Interval(task)
		if err != nil {
			return err
		}

		lastRun, err := u.processingClock.Get(task)
		if err != nil {
			if ierrors.Is(err, kvstore.ErrKeyNotFound) {
				return ierrors.WithMessagef(ErrClockNotSeeded, "task %s", task)
			}

			return ierrors.Wrapf(err, "failed to load clock of task %s", task)
		}

		if !due(lastRun, interval, u.now) {
			continue
		}

		if err = u.runTask(task); err != nil {
			return ierrors.Wrapf(err, "task %s failed", task)
		}

		if err = u.processingClock.Set(task, u.now); err != nil {
			return ierrors.Wrapf(err, "failed to store clock of task %s", task)
		}

		u.receipt.ExecutedTasks = append(u.receipt.ExecutedTasks, task)
		u.queue(func() { u.events.TaskExecuted.Trigger(task) })
	}

	return nil
}

func (u *unitOfWork) runTask(task TaskName) error {
	switch task {
	case TaskRewardAccrual:
		return u.convertRewardsToDeposits()
	case TaskMaturation:
		return u.matureDepositRecords()
	case TaskRedemptionRateQuery, TaskRewardsWithdrawal:
		// placeholders, only the clock advances
		u.LogDebug("task has no effect", "task", task)

		return nil
	default:
		return ierrors.WithMessagef(ErrMalformedInput, "unknown task %q", task)
	}
}
