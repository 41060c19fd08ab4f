package prometheus

import (
	"github.com/iotaledger/stake-ledger/components/prometheus/collector"
	"github.com/iotaledger/stake-ledger/components/ticker"
)

const (
	tickerNamespace = "ticker"

	ticks         = "ticks"
	tickFailures  = "tick_failures"
	executedTasks = "executed_tasks"
)

func newTickerMetrics(statistics *ticker.Statistics) *collector.Collection {
	return collector.NewCollection(tickerNamespace,
		collector.WithMetric(collector.NewMetric(ticks,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Number of ticks issued since start."),
			collector.WithCollectFunc(func() []collector.Sample {
				return collector.Single(float64(statistics.Ticks.Load()))
			}),
		)),
		collector.WithMetric(collector.NewMetric(tickFailures,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Number of failed ticks since start."),
			collector.WithCollectFunc(func() []collector.Sample {
				return collector.Single(float64(statistics.Failures.Load()))
			}),
		)),
		collector.WithMetric(collector.NewMetric(executedTasks,
			collector.WithType(collector.Gauge),
			collector.WithHelp("Number of executions per periodic task since start."),
			collector.WithLabels("task"),
			collector.WithCollectFunc(func() []collector.Sample {
				executed := statistics.ExecutedTasks()

				samples := make([]collector.Sample, 0, len(executed))
				for task, count := range executed {
					samples = append(samples, collector.Sample{Value: float64(count), LabelValues: []string{string(task)}})
				}

				return samples
			}),
		)),
	)
}
