package ticker

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersTicker contains the definition of the parameters used by the ticker.
type ParametersTicker struct {
	// Enabled defines whether the Ticker component is enabled.
	Enabled bool `default:"true" usage:"whether the Ticker component is enabled"`
	// Interval is the interval at which the periodic tasks of the ledger are evaluated.
	Interval time.Duration `default:"10s" usage:"the interval at which the periodic tasks of the ledger are evaluated"`
}

// ParamsTicker contains the configuration used by the ticker component.
var ParamsTicker = &ParametersTicker{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"ticker": ParamsTicker,
	},
}
