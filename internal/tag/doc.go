// Package tag contains build tag depended constants.
// Debug builds turn on expensive runtime invariant checks.
package tag
