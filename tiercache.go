package tiercache

import (
	"sync"

	"github.com/skipor/tiercache/log"
	"github.com/skipor/tiercache/policy"
)

type Cache interface {
	// Read returns value by key, scanning tiers from the fastest.
	// A hit below the first tier promotes the key through the write path.
	Read(key string) (value string, ok bool)
	// Write stores value by key in the first tier, cascading evictions
	// down the tier sequence.
	Write(key, value string)
	// Delete removes key from every tier.
	Delete(key string)
	// Snapshot returns per tier contents ordered by tier index.
	Snapshot() []TierSnapshot
}

func NewCache(l log.Logger, conf Config) (Cache, error) {
	return newCache(l, conf)
}

func newCache(l log.Logger, conf Config) (*cache, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	newPolicy, err := policy.ConstructorByName(conf.policyName())
	if err != nil {
		return nil, err
	}
	c := &cache{
		conf:      conf,
		newPolicy: newPolicy,
		stats:     newStats(conf.Metrics),
		log:       l,
	}
	c.tiers = append(c.tiers, newTier(conf.Capacities[0], newPolicy))
	return c, nil
}

// cache state machine per key: absent <-> present in some tiers,
// transitioning via write cascade, read promotion and delete only.
type cache struct {
	sync.Mutex
	// tiers are append-only: created lazily up to conf.MaxLevels.
	tiers     []*tier
	conf      Config
	newPolicy policy.Constructor
	stats     *stats
	log       log.Logger
}

var _ Cache = (*cache)(nil)

func (c *cache) Read(key string) (string, bool) {
	c.Lock()
	defer c.Unlock()
	return c.read(key)
}

func (c *cache) read(key string) (string, bool) {
	for i, t := range c.tiers {
		value, ok := t.get(key)
		if !ok {
			continue
		}
		c.stats.hits.Inc(1)
		if i > 0 {
			// Reinsert through the regular write path. The tier i copy
			// stays behind until evicted by that tier's own accounting.
			c.log.Debugf("Promote %q from tier %v.", key, i)
			c.stats.promotions.Inc(1)
			c.write(key, value)
		}
		return value, true
	}
	c.stats.misses.Inc(1)
	return "", false
}

func (c *cache) Write(key, value string) {
	c.Lock()
	defer c.Unlock()
	c.write(key, value)
}

func (c *cache) write(key, value string) {
	pending := policy.Entry{Key: key, Value: value}
	for i := 0; ; i++ {
		if i == len(c.tiers) {
			if len(c.tiers) == c.conf.MaxLevels {
				c.drop(pending)
				return
			}
			c.grow()
		}
		var evicted bool
		pending, evicted = c.tiers[i].put(pending.Key, pending.Value)
		if !evicted {
			return
		}
		c.stats.evictions.Inc(1)
		c.log.Debugf("Tier %v evicted %q.", i, pending.Key)
	}
}

func (c *cache) Delete(key string) {
	c.Lock()
	defer c.Unlock()
	// Every tier unconditionally: after promotion the key can be
	// duplicated below its residence tier.
	for _, t := range c.tiers {
		t.delete(key)
	}
}

func (c *cache) Snapshot() []TierSnapshot {
	c.Lock()
	defer c.Unlock()
	snapshots := make([]TierSnapshot, len(c.tiers))
	for i, t := range c.tiers {
		snapshots[i] = t.snapshot(i)
	}
	return snapshots
}

// grow appends the next tier. Running out of configured capacities is fatal.
func (c *cache) grow() {
	next := len(c.tiers)
	if next >= len(c.conf.Capacities) {
		c.log.Panicf("Cannot create tier %v: only %v capacities configured.",
			next, len(c.conf.Capacities))
	}
	capacity := c.conf.Capacities[next]
	c.log.Debugf("Create tier %v with capacity %v.", next, capacity)
	c.tiers = append(c.tiers, newTier(capacity, c.newPolicy))
}

// drop reports entry permanently pushed out past the last allowed tier.
func (c *cache) drop(e policy.Entry) {
	c.log.Debugf("Drop %q: all %v tiers are full.", e.Key, len(c.tiers))
	c.stats.drops.Inc(1)
	if c.conf.OnDrop != nil {
		c.conf.OnDrop(e)
	}
}
