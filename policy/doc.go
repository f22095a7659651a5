// Package policy provides eviction policies for capacity bounded key/value stores.
//
// The LFU policy tracks per key access frequency and groups keys into
// frequency buckets. A bucket is an intrusive doubly linked list ordered by
// touch time, so victim selection is O(1): the oldest node of the minimum
// frequency bucket. Keys touched at the same frequency are evicted in FIFO
// order.
//
// Policies are not thread safe. Callers must serialize access.
package policy
