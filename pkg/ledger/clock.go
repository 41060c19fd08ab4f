package ledger

import (
	"github.com/iotaledger/hive.go/core/safemath"
)

// TaskName is the key of a periodic task in the processing clock.
type TaskName string

const (
	TaskRewardAccrual       TaskName = "reward_accrual"
	TaskMaturation          TaskName = "maturation"
	TaskRedemptionRateQuery TaskName = "redemption_rate_query"
	TaskRewardsWithdrawal   TaskName = "rewards_withdrawal"
)

// TaskNames lists the periodic tasks in the order a Tick evaluates them.
var TaskNames = []TaskName{
	TaskRewardAccrual,
	TaskMaturation,
	TaskRedemptionRateQuery,
	TaskRewardsWithdrawal,
}

func (t TaskName) Bytes() ([]byte, error) {
	return []byte(t), nil
}

func TaskNameFromBytes(b []byte) (TaskName, int, error) {
	return TaskName(b), len(b), nil
}

// due reports whether interval seconds passed since lastRun. A task whose next run does not fit
// into an uint64 is never due.
func due(lastRun uint64, interval uint64, now uint64) bool {
	nextRun, err := safemath.SafeAdd(lastRun, interval)
	if err != nil {
		return false
	}

	return now >= nextRun
}
