package ledger

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersLedger contains the definition of the parameters used by the ledger.
type ParametersLedger struct {
	// Owner is the address allowed to execute the administrative operations of a new ledger.
	Owner string `default:"" usage:"the address allowed to execute the administrative operations of a new ledger"`

	Intervals struct {
		RewardAccrual       time.Duration `default:"1h" usage:"the interval at which pending rewards are converted into deposit records"`
		Maturation          time.Duration `default:"2h" usage:"the interval at which pending deposit records are completed"`
		RedemptionRateQuery time.Duration `default:"3h" usage:"the interval of the redemption rate query task"`
		RewardsWithdrawal   time.Duration `default:"4h" usage:"the interval of the rewards withdrawal task"`
	}

	// RedemptionIntervalThreshold is stored in the config of a new ledger.
	RedemptionIntervalThreshold time.Duration `default:"30m" usage:"the redemption interval threshold stored in the config of a new ledger"`

	Snapshot struct {
		// Path is the path to the snapshot file.
		Path string `default:"./snapshot.bin" usage:"the path of the snapshot file"`
		// Interval defines how often the state is written to the snapshot file. 0 only writes it at shutdown.
		Interval time.Duration `default:"10m" usage:"how often the state is written to the snapshot file, 0 only writes it at shutdown"`
		// KeepBackup defines whether the previous snapshot file is kept as <path>.bak.
		KeepBackup bool `default:"true" usage:"whether the previous snapshot file is kept as <path>.bak"`
	}
}

// ParamsLedger contains the configuration used by the ledger component.
var ParamsLedger = &ParametersLedger{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"ledger": ParamsLedger,
	},
}
