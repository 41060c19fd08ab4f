package collector

import (
	"github.com/iotaledger/hive.go/runtime/options"
)

// Collection groups the metrics of one namespace.
type Collection struct {
	CollectionName string
	metrics        map[string]*Metric
}

func NewCollection(name string, opts ...options.Option[Collection]) *Collection {
	return options.Apply(&Collection{
		CollectionName: name,
		metrics:        make(map[string]*Metric),
	}, opts, func(c *Collection) {
		for _, metric := range c.metrics {
			metric.Namespace = c.CollectionName
			metric.initPromMetric()
		}
	})
}

func (c *Collection) GetMetric(metricName string) *Metric {
	return c.metrics[metricName]
}

func WithMetric(metric *Metric) options.Option[Collection] {
	return func(c *Collection) {
		if metric != nil {
			c.metrics[metric.Name] = metric
		}
	}
}
