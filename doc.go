// Package tiercache provides multi level capacity bounded key/value cache.
//
// Tiers are ordered from the fastest and smallest to the slowest and largest.
// Writes go to the first tier; every eviction cascades into the next tier,
// lazily creating tiers up to the configured maximum. When the last allowed
// tier evicts, the entry is dropped from the cache permanently. Drops are
// expected behavior of a bounded cache, not errors; they are observable via
// the OnDrop callback and the drops counter.
//
// Reads scan tiers in order. A hit below the first tier is promoted by
// reinsertion through the regular write path. The lower tier copy is left
// behind until that tier's own accounting evicts it, so after promotion a key
// can transiently live in several tiers. Delete removes the key from every
// tier for that reason.
//
// The cache serializes all operations with one coarse lock, so it is safe for
// concurrent use. Compound read-check-then-write operations bound to one key
// cannot be made atomic by the cache alone; see package keylock for that.
package tiercache
