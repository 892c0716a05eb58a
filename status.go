// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// ID identifies a registered coroutine within its scheduler.
// Identifiers are unique among live coroutines and are reused
// only after the previous owner reaches StatusDead.
type ID int32

// None is the running id when no coroutine is executing.
const None ID = -1

// Status is the lifecycle state of a coroutine.
type Status uint8

const (
	// StatusDead marks a coroutine whose body has returned, or an
	// identifier whose table slot is empty.
	StatusDead Status = iota
	// StatusReady marks a registered coroutine that has never run.
	StatusReady
	// StatusRunning marks the coroutine currently holding control.
	StatusRunning
	// StatusSuspended marks a coroutine parked at a yield point.
	StatusSuspended
)

// String returns the lifecycle state name.
func (st Status) String() string {
	switch st {
	case StatusDead:
		return "dead"
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusSuspended:
		return "suspended"
	}
	return "unknown"
}
