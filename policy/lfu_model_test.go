package policy

import (
	"fmt"
	"sort"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/skipor/tiercache/testutil"
)

// modelLFU is naive quadratic reference of LFU semantics.
// Victim: smallest frequency, then smallest attach stamp.
type modelLFU struct {
	capacity int
	values   map[string]string
	freqs    map[string]int
	stamps   map[string]int
	clock    int
}

func newModelLFU(capacity int) *modelLFU {
	return &modelLFU{
		capacity: capacity,
		values:   make(map[string]string),
		freqs:    make(map[string]int),
		stamps:   make(map[string]int),
	}
}

func (m *modelLFU) touch(key string) {
	m.clock++
	m.freqs[key]++
	m.stamps[key] = m.clock
}

func (m *modelLFU) victim() string {
	var victim string
	for key := range m.values {
		if victim == "" {
			victim = key
			continue
		}
		if f, vf := m.freqs[key], m.freqs[victim]; f < vf ||
			f == vf && m.stamps[key] < m.stamps[victim] {
			victim = key
		}
	}
	return victim
}

func (m *modelLFU) Get(key string) (string, bool) {
	value, ok := m.values[key]
	if !ok {
		return "", false
	}
	m.touch(key)
	return value, true
}

func (m *modelLFU) Put(key, value string) (evicted Entry, ok bool) {
	if _, present := m.values[key]; present {
		m.values[key] = value
		m.touch(key)
		return
	}
	if m.capacity > 0 && len(m.values) == m.capacity {
		evicted, ok = m.evict(), true
	}
	m.clock++
	m.values[key] = value
	m.freqs[key] = 1
	m.stamps[key] = m.clock
	if len(m.values) > m.capacity {
		evicted, ok = m.evict(), true
	}
	return
}

func (m *modelLFU) evict() Entry {
	key := m.victim()
	e := Entry{Key: key, Value: m.values[key]}
	m.Delete(key)
	return e
}

func (m *modelLFU) Delete(key string) {
	delete(m.values, key)
	delete(m.freqs, key)
	delete(m.stamps, key)
}

func (m *modelLFU) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ = Describe("LFU vs naive model", func() {
	const (
		ops      = 4000
		keySpace = 8
		capacity = 4
	)
	var (
		c *lfu
		m *modelLFU
	)
	BeforeEach(func() {
		c = newLFU(capacity)
		m = newModelLFU(capacity)
	})
	AfterEach(func() {
		c.ExpectInvariantsOk()
	})
	randKey := func() string { return fmt.Sprintf("key_%v", Rand.Intn(keySpace)) }

	It("random operations behave equally", func() {
		for op := 0; op < ops; op++ {
			key := randKey()
			switch Rand.Intn(10) {
			case 0:
				c.Delete(key)
				m.Delete(key)
			case 1, 2, 3, 4:
				value, ok := c.Get(key)
				mvalue, mok := m.Get(key)
				Expect(ok).To(Equal(mok), "op %v: get %q presence", op, key)
				Expect(value).To(Equal(mvalue), "op %v: get %q value", op, key)
			default:
				var value string
				Fuzz(&value)
				evicted, ok := c.Put(key, value)
				mevicted, mok := m.Put(key, value)
				Expect(ok).To(Equal(mok), "op %v: put %q eviction", op, key)
				Expect(evicted).To(Equal(mevicted), "op %v: put %q victim", op, key)
			}
			Expect(c.Len()).To(Equal(len(m.values)), "op %v: length", op)
		}
		Expect(c.keys()).To(ConsistOf(m.Keys()))
	})
})
