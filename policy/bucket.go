package policy

import (
	"fmt"

	"github.com/skipor/tiercache/internal/tag"
)

// Pre and post conditions (Invariants) for push and remove methods:
// * bucket owns nodes between fakeHead and fakeTail.
// * {fakeHead, all owned nodes, fakeTail} are correct doubly linked list.
// * all nodes owned by bucket have node.owner equal to &bucket
//   and node.freq equal to bucket.freq.
// * bucket.len equals the number of owned nodes.
type bucket struct {
	freq int
	len  int

	// Fake nodes. Real nodes are between them.
	// nil <- fakeHead <-> node_0 <-> ... <-> node_(n-1) <-> fakeTail -> nil
	// Such structure prevent nil checks in code.

	// fakeHead.next is the oldest touched node: the bucket eviction victim.
	fakeHead *node

	// fakeTail.prev is the most recently touched node. All new attached before fakeTail.
	fakeTail *node
}

// For debug output.
const fakeHeadKey = " !HEAD! "
const fakeTailKey = " !TAIL! "

func newBucket(freq int) *bucket {
	b := &bucket{freq: freq}
	b.fakeHead, b.fakeTail = &node{}, &node{}
	b.fakeHead.key = fakeHeadKey
	b.fakeTail.key = fakeTailKey
	link(b.fakeHead, b.fakeTail)
	return b
}

// push attaches n before fakeTail, making it the most recently touched
// node of this bucket, and stamps it with the bucket frequency.
func (b *bucket) push(n *node) {
	n.owner = b
	n.freq = b.freq
	b.len++
	link(b.tail(), n)
	link(n, b.fakeTail)
}

// remove detaches owned n. n.freq is left intact for the caller.
func (b *bucket) remove(n *node) {
	if tag.Debug {
		if n.owner != b {
			panic("remove of not owned node")
		}
	}
	link(n.prev, n.next)
	b.len--
	if tag.Debug {
		n.prev = nil
		n.next = nil
		n.owner = nil
	}
}

// oldest returns the bucket eviction victim.
func (b *bucket) oldest() *node {
	if b.empty() {
		panic(fmt.Sprintf("oldest of empty bucket %v", b.freq))
	}
	return b.head()
}

func (b *bucket) head() *node      { return b.fakeHead.next }
func (b *bucket) tail() *node      { return b.fakeTail.prev }
func (b *bucket) end(n *node) bool { return n == b.fakeTail }
func (b *bucket) empty() bool      { return b.len == 0 }

type node struct {
	key   string
	value string
	// freq is the recorded access frequency: always equal to owner.freq
	// while the node is attached.
	freq  int
	owner *bucket
	prev  *node
	next  *node
}

func link(a, b *node) { a.next, b.prev = b, a }

func (n *node) entry() Entry { return Entry{Key: n.key, Value: n.value} }

func (n *node) GoString() string {
	key := func(n *node) interface{} {
		if n == nil {
			return nil
		}
		return n.key
	}
	return fmt.Sprintf("{key:%q, value:%q, freq:%v, owner:%p, prev:%v, next:%v}",
		n.key, n.value, n.freq, n.owner, key(n.prev), key(n.next))
}

var _ fmt.GoStringer = (*node)(nil)
