package policy

import "github.com/pkg/errors"

// Entry is a key/value pair stored in a policy.
type Entry struct {
	Key   string
	Value string
}

// Policy decides what to store and what to evict in one capacity bounded
// store. Implementations must not be used concurrently.
type Policy interface {
	// Get returns value by key and registers the access.
	// Absent key is a miss without side effects.
	Get(key string) (value string, ok bool)
	// Put stores value by key. When the store is full, Put evicts a victim
	// chosen by the policy and returns it. Overwrite of a present key
	// registers an access and never evicts.
	Put(key, value string) (evicted Entry, ok bool)
	// Delete removes key. Absent key is no-op.
	Delete(key string)
	// Len returns number of stored entries.
	Len() int
	// Entries returns stored entries in eviction order: next victim first.
	Entries() []Entry
}

// Constructor creates a policy instance bounded by capacity.
// Capacity zero is valid: every Put immediately evicts the entry just stored.
type Constructor func(capacity int) Policy

// Known policy names.
const LFU = "lfu"

// ConstructorByName returns constructor for known policy name.
func ConstructorByName(name string) (Constructor, error) {
	switch name {
	case LFU:
		return NewLFU, nil
	}
	return nil, errors.Errorf("unknown eviction policy %q", name)
}

// New creates a policy by name.
func New(name string, capacity int) (Policy, error) {
	c, err := ConstructorByName(name)
	if err != nil {
		return nil, err
	}
	return c(capacity), nil
}
