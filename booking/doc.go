// Package booking contains a venue table reservation ledger.
//
// It demonstrates the pattern package keylock exists for: a compound
// check-then-decrement against one venue slot, which a shared store cannot
// make atomic by itself. Each slot has its own lock, so bookings of distinct
// slots never contend.
package booking
