package policy

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("LFU", func() {
	var (
		capacity int
		c        *lfu
	)
	BeforeEach(func() {
		resetTestKeys()
		capacity = 2
	})
	JustBeforeEach(func() {
		c = newLFU(capacity)
	})
	AfterEach(func() {
		c.ExpectInvariantsOk()
	})
	Put := func(key, value string) {
		_, evicted := c.Put(key, value)
		Expect(evicted).To(BeFalse(), "unexpected eviction on put %q", key)
	}
	PutEvicting := func(key, value string) Entry {
		e, evicted := c.Put(key, value)
		Expect(evicted).To(BeTrue(), "eviction expected on put %q", key)
		return e
	}
	ExpectContains := func(key, value string) {
		got, ok := c.Get(key)
		Expect(ok).To(BeTrue(), "key %q not found", key)
		Expect(got).To(Equal(value))
	}
	ExpectAbsent := func(key string) {
		_, ok := c.Get(key)
		Expect(ok).To(BeFalse(), "key %q found", key)
	}

	It("init", func() {
		Expect(c.Len()).To(BeZero())
	})

	It("get absent is miss without side effects", func() {
		ExpectAbsent("nothing")
		Put("a", "1")
		ExpectAbsent("nothing")
		Expect(c.Len()).To(Equal(1))
	})

	It("last write wins", func() {
		Put("a", "1")
		Put("b", "2")
		Put("a", "overwritten")
		ExpectContains("a", "overwritten")
		ExpectContains("b", "2")
		Expect(c.Len()).To(Equal(2))
	})

	It("full cache evicts FIFO on equal frequencies", func() {
		Put("a", "1")
		Put("b", "2")
		Expect(PutEvicting("c", "3")).To(Equal(Entry{"a", "1"}))
		ExpectAbsent("a")
		ExpectContains("b", "2")
		ExpectContains("c", "3")
	})

	It("get protects from eviction", func() {
		Put("a", "1")
		Put("b", "2")
		ExpectContains("a", "1")
		Expect(PutEvicting("c", "3")).To(Equal(Entry{"b", "2"}))
		ExpectContains("a", "1")
		ExpectContains("c", "3")
	})

	It("overwrite bumps frequency without eviction", func() {
		Put("a", "1")
		Put("b", "2")
		Put("a", "1.1")
		Expect(PutEvicting("c", "3")).To(Equal(Entry{"b", "2"}))
		ExpectContains("a", "1.1")
	})

	Context("capacity three", func() {
		BeforeEach(func() { capacity = 3 })

		It("victim is oldest within min frequency bucket", func() {
			Put("a", "1")
			Put("b", "2")
			Put("c", "3")
			ExpectContains("a", "1")
			// b and c tie at frequency 1, b is older.
			Expect(PutEvicting("d", "4")).To(Equal(Entry{"b", "2"}))
		})

		It("entries are in eviction order", func() {
			Put("a", "1")
			Put("b", "2")
			Put("c", "3")
			ExpectContains("c", "3")
			Expect(c.Entries()).To(Equal([]Entry{{"a", "1"}, {"b", "2"}, {"c", "3"}}))
		})
	})

	Context("delete", func() {
		It("absent is no-op", func() {
			Put("a", "1")
			c.Delete("nothing")
			Expect(c.Len()).To(Equal(1))
			ExpectContains("a", "1")
		})

		It("removes key", func() {
			Put("a", "1")
			Put("b", "2")
			c.Delete("a")
			ExpectAbsent("a")
			Expect(c.Len()).To(Equal(1))
		})

		It("reinsert after delete starts at frequency 1", func() {
			Put("a", "1")
			ExpectContains("a", "1")
			ExpectContains("a", "1")
			c.Delete("a")
			Put("a", "fresh")
			Put("b", "2")
			// Had the old frequency survived, b would be the victim.
			Expect(PutEvicting("c", "3")).To(Equal(Entry{"a", "fresh"}))
		})

		It("emptying the min bucket recomputes min frequency", func() {
			c = newLFU(3)
			Put("a", "1")
			Put("b", "2")
			Put("c", "3")
			ExpectContains("b", "2")
			ExpectContains("c", "3")
			c.Delete("a")
			Expect(c.minFreq).To(Equal(2))
			c.Delete("b")
			c.Delete("c")
			Expect(c.minFreq).To(BeZero())
		})
	})

	Context("zero capacity", func() {
		BeforeEach(func() { capacity = 0 })

		It("put immediately evicts the entry just stored", func() {
			Expect(PutEvicting("a", "1")).To(Equal(Entry{"a", "1"}))
			ExpectAbsent("a")
			Expect(c.Len()).To(BeZero())
		})
	})

	Context("capacity one", func() {
		BeforeEach(func() { capacity = 1 })

		It("every new key displaces the previous one", func() {
			Put("a", "1")
			Expect(PutEvicting("b", "2")).To(Equal(Entry{"a", "1"}))
			Expect(PutEvicting("c", "3")).To(Equal(Entry{"b", "2"}))
			ExpectContains("c", "3")
		})
	})

})
