// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/atomix"
)

// defaultCapacity is the initial coroutine table size. The table
// doubles when every slot is live, so 16 keeps the common case
// allocation-free while staying one cache line of slot pointers.
const defaultCapacity = 16

// Func is the body of a direct-style coroutine. It receives the owning
// scheduler (for Yield) and the data value given to Register.
type Func func(s *Scheduler, data any)

// coroutine is one table slot: the lifecycle state plus the execution
// context holding the suspended body. A dead coroutine has no slot.
type coroutine struct {
	ctx   execContext
	state Status
}

// Scheduler multiplexes registered coroutines onto the single goroutine
// that drives it. It is not reentrant: at most one coroutine runs at a
// time, and all operations must be issued from the driving goroutine or
// from the currently running coroutine.
type Scheduler struct {
	slots   []*coroutine
	count   int
	running ID
	serial  Serial
	closed  atomix.Uint32
}

// Open creates an empty scheduler with the default table capacity.
func Open() *Scheduler {
	return &Scheduler{
		slots:   make([]*coroutine, defaultCapacity),
		running: None,
		serial:  nextSerial(),
	}
}

// Close tears down the scheduler, discarding every remaining coroutine.
// Suspended coroutines are not resumed back into their normal control
// flow: Expr-world bodies are dropped where they stand, direct-style
// bodies are unwound only far enough to reclaim their fiber goroutine.
// Panics when called twice or from inside a running coroutine.
func (s *Scheduler) Close() {
	if s.running != None {
		panic("coro: close from inside a running coroutine")
	}
	if s.closed.Load() != 0 {
		panic("coro: scheduler already closed")
	}
	s.closed.Store(1)
	for id, c := range s.slots {
		if c == nil {
			continue
		}
		if c.state == StatusSuspended {
			c.ctx.stop()
		}
		s.slots[id] = nil
	}
	s.count = 0
}

// Register creates a direct-style coroutine in StatusReady and returns
// its identifier. The body does not run until the first Resume; its
// fiber goroutine is not spawned until then either.
func (s *Scheduler) Register(entry Func, data any) ID {
	s.checkOpen()
	if entry == nil {
		panic("coro: register with nil entry")
	}
	return s.add(&coroutine{
		ctx:   &goFiber{entry: entry, data: data},
		state: StatusReady,
	})
}

// add places c in the first free slot found by a rotating-start linear
// scan, doubling the table when every slot is live. The scan starting
// offset advances with the live count, spreading slot reuse across the
// table instead of always probing from slot 0.
func (s *Scheduler) add(c *coroutine) ID {
	if s.count >= len(s.slots) {
		id := len(s.slots)
		grown := make([]*coroutine, 2*len(s.slots))
		copy(grown, s.slots)
		grown[id] = c
		s.slots = grown
		s.count++
		return ID(id)
	}
	for i := 0; i < len(s.slots); i++ {
		id := (i + s.count) % len(s.slots)
		if s.slots[id] == nil {
			s.slots[id] = c
			s.count++
			return ID(id)
		}
	}
	panic("coro: coroutine table invariant violated")
}

// Resume transfers control into the coroutine identified by id until it
// yields or its body returns. Panics on a nested resume, an out-of-range
// or dead identifier, or an id that is already running. A panic escaping
// the coroutine body removes the coroutine and is re-raised here.
func (s *Scheduler) Resume(id ID) {
	s.checkOpen()
	if s.running != None {
		panic("coro: nested resume")
	}
	c := s.at(id)
	if c == nil {
		panic("coro: resume on a dead coroutine")
	}

	var t transfer
	switch c.state {
	case StatusReady:
		c.state = StatusRunning
		s.running = id
		t = c.ctx.start(s)
	case StatusSuspended:
		c.state = StatusRunning
		s.running = id
		t = c.ctx.resume()
	default:
		panic("coro: resume on a running coroutine")
	}

	switch t.kind {
	case fiberYielded:
		c.state = StatusSuspended
		s.running = None
	case fiberReturned:
		s.remove(id)
	case fiberPanicked:
		s.remove(id)
		panic(t.val)
	default:
		panic("coro: unexpected transfer from coroutine")
	}
}

// Yield suspends the currently running direct-style coroutine and hands
// control back to the driver's pending Resume call. Must be called from
// inside the running coroutine's body; Expr-world bodies suspend through
// the Yield effect operation instead.
func (s *Scheduler) Yield() {
	id := s.running
	if id == None {
		panic("coro: yield with no running coroutine")
	}
	f, ok := s.slots[id].ctx.(*goFiber)
	if !ok {
		panic("coro: yield outside a direct-style coroutine")
	}
	f.park()
}

// Status reports the lifecycle state of id. An empty slot is
// StatusDead. Panics when id is outside the table's capacity.
func (s *Scheduler) Status(id ID) Status {
	c := s.at(id)
	if c == nil {
		return StatusDead
	}
	return c.state
}

// Running returns the identifier of the currently executing coroutine,
// or None when control is with the driver.
func (s *Scheduler) Running() ID {
	return s.running
}

// Len returns the number of live (non-dead) coroutines.
func (s *Scheduler) Len() int {
	return s.count
}

// Serial returns the serial number assigned to this scheduler at Open.
func (s *Scheduler) Serial() Serial {
	return s.serial
}

// at bounds-checks id against the table capacity.
func (s *Scheduler) at(id ID) *coroutine {
	if id < 0 || int(id) >= len(s.slots) {
		panic("coro: coroutine id out of range")
	}
	return s.slots[id]
}

// remove clears a finished coroutine's slot. Table mutation stays on
// the driving goroutine: the fiber only reports its terminal transfer,
// Resume performs the cleanup.
func (s *Scheduler) remove(id ID) {
	s.slots[id] = nil
	s.count--
	s.running = None
}

func (s *Scheduler) checkOpen() {
	if s.closed.Load() != 0 {
		panic("coro: use of closed scheduler")
	}
}
