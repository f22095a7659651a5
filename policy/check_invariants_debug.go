//go:build debug

// Gomega should not be dependency in non-debug build.

package policy

import (
	"errors"
	"log"

	"github.com/facebookgo/stackerr"
	. "github.com/onsi/gomega"
)

var _ = func() (_ struct{}) {
	RegisterFailHandler(GomegaFailHandler)
	return
}()

func GomegaFailHandler(message string, callerSkip ...int) {
	skip := callerSkip[0] + 1
	log.Fatal("FATAL: invariants are broken:", stackerr.WrapSkip(errors.New(message), skip))
}

func (b *bucket) checkInvariants() {
	Expect(b.fakeHead.prev).To(BeNil())
	Expect(b.fakeTail.next).To(BeNil())
	Expect(b.fakeHead.owner).To(BeNil())
	Expect(b.fakeTail.owner).To(BeNil())
	var owned int
	for n := b.head(); !b.end(n); n = n.next {
		owned++
		Expect(n.prev.next).To(BeIdenticalTo(n))
		Expect(n.owner).To(BeIdenticalTo(b))
		Expect(n.freq).To(Equal(b.freq))
	}
	Expect(b.tail().next).To(BeIdenticalTo(b.fakeTail))
	Expect(owned).To(Equal(b.len))
}

func (c *lfu) checkInvariants() {
	var stored int
	for freq, b := range c.buckets {
		Expect(freq).To(Equal(b.freq))
		Expect(b.empty()).To(BeFalse(), "empty bucket %v not removed", freq)
		b.checkInvariants()
		for n := b.head(); !b.end(n); n = n.next {
			stored++
			tn, ok := c.table[n.key]
			Expect(ok).To(BeTrue(), "no table ref to node %q", n.key)
			Expect(tn).To(BeIdenticalTo(n), "table refs to another node")
		}
	}
	ExpectWithOffset(1, stored).To(Equal(len(c.table)), "too many keys in table")
	if len(c.table) == 0 {
		ExpectWithOffset(1, c.minFreq).To(BeZero(), "min frequency of empty store")
		return
	}
	if c.capacity > 0 {
		ExpectWithOffset(1, len(c.table)).To(BeNumerically("<=", c.capacity), "over capacity")
	}
	ExpectWithOffset(1, c.buckets).To(HaveKey(c.minFreq), "min frequency bucket absent")
	for freq := range c.buckets {
		ExpectWithOffset(1, freq).To(BeNumerically(">=", c.minFreq), "bucket below min frequency")
	}
}
