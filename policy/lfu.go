package policy

import (
	"fmt"
	"sort"
)

// NewLFU creates least frequently used eviction policy.
// Get, Put and Delete are O(1) amortized.
func NewLFU(capacity int) Policy { return newLFU(capacity) }

func newLFU(capacity int) *lfu {
	if capacity < 0 {
		panic(fmt.Sprintf("negative capacity %v", capacity))
	}
	return &lfu{
		capacity: capacity,
		table:    make(map[string]*node),
		buckets:  make(map[int]*bucket),
	}
}

// lfu invariants, checked in debug builds:
// * every key in table is attached to exactly one bucket, and that bucket
//   frequency equals the node recorded frequency.
// * empty buckets are removed at once.
// * minFreq bucket is non-empty while the store is non-empty, and no bucket
//   with a smaller frequency exists. minFreq is zero for empty store.
type lfu struct {
	capacity int
	table    map[string]*node
	buckets  map[int]*bucket
	minFreq  int
}

var _ Policy = (*lfu)(nil)

func (c *lfu) Len() int { return len(c.table) }

func (c *lfu) Get(key string) (string, bool) {
	defer c.checkInvariants()
	n, ok := c.table[key]
	if !ok {
		return "", false
	}
	c.touch(n)
	return n.value, true
}

func (c *lfu) Put(key, value string) (evicted Entry, ok bool) {
	defer c.checkInvariants()
	if n, present := c.table[key]; present {
		n.value = value
		c.touch(n)
		return
	}
	if c.capacity > 0 && len(c.table) == c.capacity {
		evicted, ok = c.evict(), true
	}
	n := &node{key: key, value: value}
	c.table[key] = n
	c.bucket(1).push(n)
	// Fresh insert is always tied for least frequently used.
	c.minFreq = 1
	if len(c.table) > c.capacity {
		// Zero capacity: the entry just stored is evicted at once.
		evicted, ok = c.evict(), true
	}
	return
}

func (c *lfu) Delete(key string) {
	defer c.checkInvariants()
	n, ok := c.table[key]
	if !ok {
		return
	}
	delete(c.table, key)
	b := n.owner
	b.remove(n)
	c.dropIfEmpty(b)
}

// touch registers an access: the node moves to the tail of the next
// frequency bucket, becoming its most recently touched entry.
func (c *lfu) touch(n *node) {
	b := n.owner
	b.remove(n)
	if b.empty() {
		delete(c.buckets, b.freq)
		if c.minFreq == b.freq {
			// Frequencies grow by one at a time,
			// so the new minimum cannot skip a value.
			c.minFreq = b.freq + 1
		}
	}
	c.bucket(n.freq + 1).push(n)
}

// evict removes the oldest node of the minimum frequency bucket.
func (c *lfu) evict() Entry {
	b := c.buckets[c.minFreq]
	n := b.oldest()
	b.remove(n)
	delete(c.table, n.key)
	c.dropIfEmpty(b)
	return n.entry()
}

// bucket returns the bucket for freq, creating it if absent.
func (c *lfu) bucket(freq int) *bucket {
	b, ok := c.buckets[freq]
	if !ok {
		b = newBucket(freq)
		c.buckets[freq] = b
	}
	return b
}

// dropIfEmpty removes emptied b and, when the minimum was vacated,
// recomputes minFreq over remaining buckets. The scan is bounded by the
// number of distinct frequencies present, which never exceeds store size.
// Zero sentinel is left for empty store.
func (c *lfu) dropIfEmpty(b *bucket) {
	if !b.empty() {
		return
	}
	delete(c.buckets, b.freq)
	if c.minFreq != b.freq {
		return
	}
	c.minFreq = 0
	for freq := range c.buckets {
		if c.minFreq == 0 || freq < c.minFreq {
			c.minFreq = freq
		}
	}
}

// Entries returns stored entries in eviction order:
// frequency ascending, oldest touched first within equal frequency.
// Takes linear time, intended for inspection only.
func (c *lfu) Entries() []Entry {
	freqs := make([]int, 0, len(c.buckets))
	for freq := range c.buckets {
		freqs = append(freqs, freq)
	}
	sort.Ints(freqs)
	entries := make([]Entry, 0, len(c.table))
	for _, freq := range freqs {
		b := c.buckets[freq]
		for n := b.head(); !b.end(n); n = n.next {
			entries = append(entries, n.entry())
		}
	}
	return entries
}
