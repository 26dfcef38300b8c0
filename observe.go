package pixz

import (
	"image"

	"github.com/zoobzio/metricz"
)

// Metric keys for Observed processors.
const (
	ObserveQueriesTotal  = metricz.Key("observe.queries.total")
	ObserveHitsTotal     = metricz.Key("observe.hits.total")
	ObserveMissesTotal   = metricz.Key("observe.misses.total")
	ObserveFailuresTotal = metricz.Key("observe.failures.total")
)

// Observed is a processor that forwards every query to its source
// unchanged and counts the outcomes: hits (a pixel), misses (no pixel) and
// failures (an error). Counting never influences a result.
//
// Copies of an Observed share one registry.
//
// Example:
//
//	const StageLeaf = "leaf"
//
//	leaf := pixz.Observe[pixz.Gray[uint8]](StageLeaf, frame)
//	pipeline := pixz.NewFilter(leaf, bright)
//	// ... render ...
//	misses := leaf.Metrics().Counter(pixz.ObserveMissesTotal).Value()
type Observed[P any, S Processor[P]] struct {
	source  S
	metrics *metricz.Registry
	name    Name
}

// Observe wraps source with outcome counters. The pixel type is given
// explicitly.
func Observe[P any, S Processor[P]](name Name, source S) Observed[P, S] {
	metrics := metricz.New()
	metrics.Counter(ObserveQueriesTotal)
	metrics.Counter(ObserveHitsTotal)
	metrics.Counter(ObserveMissesTotal)
	metrics.Counter(ObserveFailuresTotal)
	return Observed[P, S]{source: source, metrics: metrics, name: name}
}

// ProcessPixel implements Processor.
func (o Observed[P, S]) ProcessPixel(x, y int) (P, bool, error) {
	p, ok, err := o.source.ProcessPixel(x, y)
	o.metrics.Counter(ObserveQueriesTotal).Inc()
	switch {
	case err != nil:
		o.metrics.Counter(ObserveFailuresTotal).Inc()
	case ok:
		o.metrics.Counter(ObserveHitsTotal).Inc()
	default:
		o.metrics.Counter(ObserveMissesTotal).Inc()
	}
	return p, ok, err
}

// Name returns the stage name.
func (o Observed[P, S]) Name() Name {
	return o.name
}

// Source returns the wrapped processor.
func (o Observed[P, S]) Source() S {
	return o.source
}

// Metrics returns the shared counter registry.
func (o Observed[P, S]) Metrics() *metricz.Registry {
	return o.metrics
}

// Bounds forwards the source's bounds when it has any.
func (o Observed[P, S]) Bounds() image.Rectangle {
	r, _ := boundsOf(o.source)
	return r
}
