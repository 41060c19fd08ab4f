package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/syncutils"
)

// Collector owns the prometheus registry and the registered collections.
type Collector struct {
	Registry *prometheus.Registry

	collections      map[string]*Collection
	collectionsMutex syncutils.RWMutex
}

func New() *Collector {
	return &Collector{
		Registry:    prometheus.NewRegistry(),
		collections: make(map[string]*Collection),
	}
}

func (c *Collector) RegisterCollection(collection *Collection) error {
	c.collectionsMutex.Lock()
	defer c.collectionsMutex.Unlock()

	if _, exists := c.collections[collection.CollectionName]; exists {
		return ierrors.Errorf("collection %s is already registered", collection.CollectionName)
	}

	for _, metric := range collection.metrics {
		if err := c.Registry.Register(metric.promMetric); err != nil {
			return ierrors.Wrapf(err, "failed to register metric %s_%s", collection.CollectionName, metric.Name)
		}
	}

	c.collections[collection.CollectionName] = collection

	for _, metric := range collection.metrics {
		if metric.initFunc != nil {
			metric.initFunc()
		}
	}

	return nil
}

// Collect refreshes every metric that has a collect func.
func (c *Collector) Collect() error {
	c.collectionsMutex.RLock()
	defer c.collectionsMutex.RUnlock()

	var err error
	for _, collection := range c.collections {
		for _, metric := range collection.metrics {
			err = ierrors.Join(err, metric.collect())
		}
	}

	return err
}

// Increment increments the counter metricName of the namespace. The label values must be passed in the
// order the labels were defined in.
func (c *Collector) Increment(namespace string, metricName string, labelValues ...string) error {
	metric := c.metric(namespace, metricName)
	if metric == nil {
		return ierrors.Errorf("metric %s_%s is not registered", namespace, metricName)
	}

	return metric.increment(labelValues...)
}

func (c *Collector) metric(namespace string, metricName string) *Metric {
	c.collectionsMutex.RLock()
	defer c.collectionsMutex.RUnlock()

	if collection, exists := c.collections[namespace]; exists {
		return collection.GetMetric(metricName)
	}

	return nil
}
