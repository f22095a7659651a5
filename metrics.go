package tiercache

import "github.com/rcrowley/go-metrics"

// Metric names registered in the configured registry.
const (
	HitsMetric       = "tiercache.hits"
	MissesMetric     = "tiercache.misses"
	PromotionsMetric = "tiercache.promotions"
	EvictionsMetric  = "tiercache.evictions"
	DropsMetric      = "tiercache.drops"
)

type stats struct {
	hits       metrics.Counter
	misses     metrics.Counter
	promotions metrics.Counter
	// evictions counts tier evictions cascaded to the next tier.
	evictions metrics.Counter
	// drops counts entries permanently pushed out past the last tier.
	drops metrics.Counter
}

func newStats(r metrics.Registry) *stats {
	if r == nil {
		r = metrics.NewRegistry()
	}
	return &stats{
		hits:       metrics.GetOrRegisterCounter(HitsMetric, r),
		misses:     metrics.GetOrRegisterCounter(MissesMetric, r),
		promotions: metrics.GetOrRegisterCounter(PromotionsMetric, r),
		evictions:  metrics.GetOrRegisterCounter(EvictionsMetric, r),
		drops:      metrics.GetOrRegisterCounter(DropsMetric, r),
	}
}
