package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/options"
)

type MetricType uint8

const (
	// Gauge is a metric that represents a single numerical value that can arbitrarily go up and down.
	// Collected samples overwrite the previous value.
	Gauge MetricType = iota
	// Counter is a cumulative metric that only ever goes up. It is driven by Increment.
	Counter
)

// Sample is a single value of a metric.
type Sample struct {
	Value       float64
	LabelValues []string
}

// Single returns a sample without labels.
func Single(value float64) []Sample {
	return []Sample{{Value: value}}
}

// Metric is registered to the prometheus registry of the Collector. Gauges are refreshed by their
// collect func on every scrape, counters are incremented from event hooks installed by the init func.
type Metric struct {
	Name      string
	Type      MetricType
	Namespace string

	help        string
	labels      []string
	collectFunc func() []Sample
	initFunc    func()

	// resetEnabled drops all label values before each collect, so labels that vanished are not reported anymore.
	resetEnabled bool

	promMetric prometheus.Collector
}

// NewMetric creates a new metric with given name and options.
func NewMetric(name string, opts ...options.Option[Metric]) *Metric {
	return options.Apply(&Metric{
		Name: name,
	}, opts)
}

func (m *Metric) initPromMetric() {
	if m.promMetric != nil {
		return
	}

	switch m.Type {
	case Gauge:
		opts := prometheus.GaugeOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
		if len(m.labels) > 0 {
			m.promMetric = prometheus.NewGaugeVec(opts, m.labels)
		} else {
			m.promMetric = prometheus.NewGauge(opts)
		}
	case Counter:
		opts := prometheus.CounterOpts{Name: m.Name, Namespace: m.Namespace, Help: m.help}
		if len(m.labels) > 0 {
			m.promMetric = prometheus.NewCounterVec(opts, m.labels)
		} else {
			m.promMetric = prometheus.NewCounter(opts)
		}
	}
}

func (m *Metric) collect() error {
	if m.collectFunc == nil {
		return nil
	}

	if m.resetEnabled {
		if vec, ok := m.promMetric.(*prometheus.GaugeVec); ok {
			vec.Reset()
		}
	}

	for _, sample := range m.collectFunc() {
		if err := m.set(sample); err != nil {
			return err
		}
	}

	return nil
}

func (m *Metric) set(sample Sample) error {
	if len(sample.LabelValues) != len(m.labels) {
		return ierrors.Errorf("metric %s_%s expects %d label values, got %d", m.Namespace, m.Name, len(m.labels), len(sample.LabelValues))
	}

	if m.Type != Gauge {
		return ierrors.Errorf("metric %s_%s is not a gauge", m.Namespace, m.Name)
	}

	switch metric := m.promMetric.(type) {
	case prometheus.Gauge:
		metric.Set(sample.Value)
	case *prometheus.GaugeVec:
		metric.WithLabelValues(sample.LabelValues...).Set(sample.Value)
	default:
		return ierrors.Errorf("metric %s_%s is not a gauge", m.Namespace, m.Name)
	}

	return nil
}

func (m *Metric) increment(labelValues ...string) error {
	if len(labelValues) != len(m.labels) {
		return ierrors.Errorf("metric %s_%s expects %d label values, got %d", m.Namespace, m.Name, len(m.labels), len(labelValues))
	}

	// a prometheus.Gauge satisfies prometheus.Counter as well
	if m.Type != Counter {
		return ierrors.Errorf("metric %s_%s is not a counter", m.Namespace, m.Name)
	}

	switch metric := m.promMetric.(type) {
	case prometheus.Counter:
		metric.Inc()
	case *prometheus.CounterVec:
		metric.WithLabelValues(labelValues...).Inc()
	default:
		return ierrors.Errorf("metric %s_%s is not a counter", m.Namespace, m.Name)
	}

	return nil
}

// WithType sets the metric type: Gauge or Counter.
func WithType(t MetricType) options.Option[Metric] {
	return func(m *Metric) {
		m.Type = t
	}
}

// WithHelp sets the help text for the metric.
func WithHelp(help string) options.Option[Metric] {
	return func(m *Metric) {
		m.help = help
	}
}

// WithLabels defines the labels of the metric, samples need to carry the values in the same order.
func WithLabels(labels ...string) options.Option[Metric] {
	return func(m *Metric) {
		m.labels = labels
	}
}

func WithResetBeforeCollecting(resetEnabled bool) options.Option[Metric] {
	return func(m *Metric) {
		m.resetEnabled = resetEnabled
	}
}

// WithCollectFunc defines the function that is called on every scrape to read the current samples.
func WithCollectFunc(collectFunc func() []Sample) options.Option[Metric] {
	return func(m *Metric) {
		m.collectFunc = collectFunc
	}
}

// WithInitFunc defines a function that is called once the metric is registered, e.g. to hook events.
func WithInitFunc(initFunc func()) options.Option[Metric] {
	return func(m *Metric) {
		m.initFunc = initFunc
	}
}
