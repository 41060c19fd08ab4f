package prometheus

import (
	"github.com/iotaledger/hive.go/app"
)

// ParametersPrometheus contains the definition of the parameters used by the Prometheus exporter.
type ParametersPrometheus struct {
	// Enabled defines whether the Prometheus component is enabled.
	Enabled bool `default:"true" usage:"whether the Prometheus component is enabled"`
	// BindAddress defines the bind address for the Prometheus exporter server.
	BindAddress string `default:"0.0.0.0:9311" usage:"the bind address on which the Prometheus exporter listens on"`

	Collections struct {
		Ledger bool `default:"true" usage:"include the ledger state metrics"`
		Ticker bool `default:"true" usage:"include the tick statistics if the ticker is enabled"`
	}

	GoMetrics       bool `default:"false" usage:"include go metrics"`
	ProcessMetrics  bool `default:"false" usage:"include process metrics"`
	PromhttpMetrics bool `default:"false" usage:"include promhttp metrics"`
}

var ParamsPrometheus = &ParametersPrometheus{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"prometheus": ParamsPrometheus,
	},
}
