package tiercache

import (
	"fmt"
	"strings"

	"github.com/skipor/tiercache/policy"
)

// tier is one capacity bounded cache segment delegating to its eviction
// policy. Tiers are created once and never shrink or change capacity.
type tier struct {
	capacity int
	policy   policy.Policy
}

func newTier(capacity int, newPolicy policy.Constructor) *tier {
	return &tier{
		capacity: capacity,
		policy:   newPolicy(capacity),
	}
}

func (t *tier) get(key string) (string, bool)              { return t.policy.Get(key) }
func (t *tier) put(key, value string) (policy.Entry, bool) { return t.policy.Put(key, value) }
func (t *tier) delete(key string)                          { t.policy.Delete(key) }

func (t *tier) snapshot(level int) TierSnapshot {
	return TierSnapshot{
		Level:    level,
		Capacity: t.capacity,
		Entries:  t.policy.Entries(),
	}
}

// TierSnapshot is inspection view of one tier contents.
// Entries are in the tier eviction order: next victim first.
type TierSnapshot struct {
	Level    int
	Capacity int
	Entries  []policy.Entry
}

// String formats snapshot as "L1: {a=1, b=2}". Levels are numbered from 1.
func (s TierSnapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "L%v: {", s.Level+1)
	for i, e := range s.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v=%v", e.Key, e.Value)
	}
	b.WriteString("}")
	return b.String()
}
