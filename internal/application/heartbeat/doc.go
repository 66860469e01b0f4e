// Package heartbeat emits a named event on a fixed interval.
//
// The daemon uses it to drive its demo state: every beat is a regular Emit,
// so registered callbacks run on the heartbeat goroutine while holding the
// configured state lock.
package heartbeat
