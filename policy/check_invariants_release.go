//go:build !debug

package policy

func (b *bucket) checkInvariants() {}
func (c *lfu) checkInvariants()    {}
