package tiercache

import (
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"

	"github.com/skipor/tiercache/policy"
)

type Config struct {
	// MaxLevels bounds the number of tiers. At least 1.
	MaxLevels int
	// Capacities holds per tier capacities, fixed at construction.
	// Capacities[0] sizes the first tier; Capacities[i] is consulted only
	// if and when tier i is created. The list may be shorter than
	// MaxLevels, but running out of capacities at tier creation is a fatal
	// configuration error and panics.
	Capacities []int
	// Policy is the eviction policy name used by every tier.
	// Empty means policy.LFU.
	Policy string
	// OnDrop, when set, is called with every entry permanently dropped
	// after the last allowed tier eviction. Called under the cache lock:
	// must not call back into the cache.
	OnDrop func(e policy.Entry)
	// Metrics is the registry for cache counters. Nil means a fresh one.
	Metrics metrics.Registry
}

func (c Config) validate() error {
	if c.MaxLevels < 1 {
		return errors.Errorf("max levels must be at least 1, got %v", c.MaxLevels)
	}
	if len(c.Capacities) == 0 {
		return errors.New("first tier capacity required")
	}
	for i, capacity := range c.Capacities {
		if capacity < 0 {
			return errors.Errorf("tier %v capacity is negative", i)
		}
	}
	return nil
}

func (c Config) policyName() string {
	if c.Policy == "" {
		return policy.LFU
	}
	return c.Policy
}
