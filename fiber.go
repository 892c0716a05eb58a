// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// handoffCapacity is the bounded capacity for control-transfer queues.
// The handoff invariant keeps at most one token in flight per direction;
// 4 keeps the ring buffer within a single cache line.
const handoffCapacity = 4

// execContext is the execution-context primitive behind a coroutine:
// start runs the body once from the top, resume re-enters the last
// suspension point, stop discards a suspended body during teardown.
type execContext interface {
	start(s *Scheduler) transfer
	resume() transfer
	stop()
}

// transfer reports how control came back from a coroutine.
type transfer struct {
	kind transferKind
	val  any // panic value when kind is fiberPanicked
}

type transferKind uint8

const (
	fiberYielded transferKind = iota
	fiberReturned
	fiberPanicked
	fiberStopped
)

// command is the driver→fiber half of the handoff protocol.
type command uint8

const (
	cmdRun command = iota
	cmdStop
)

// stopSignal unwinds a suspended fiber goroutine during Close.
// Coroutine bodies must not recover it.
type stopSignal struct{}

// goFiber is a direct-style coroutine body on its own goroutine.
// Control transfer rides on a pair of bounded lock-free SPSC queues:
// the driver produces on in and consumes from out, the fiber goroutine
// does the reverse, so both directions stay single-producer
// single-consumer. Table and state words are only touched by the
// driver; the queues' release/acquire ordering makes the fiber's
// writes visible across the handoff.
type goFiber struct {
	entry Func
	data  any
	in    lfq.SPSC[command]
	out   lfq.SPSC[transfer]
}

// start spawns the fiber goroutine and blocks the driver until the
// body yields, returns, or panics. The goroutine does not exist before
// the first resume, mirroring how the execution context is only
// materialized when a ready coroutine first runs.
func (f *goFiber) start(s *Scheduler) transfer {
	f.in.Init(handoffCapacity)
	f.out.Init(handoffCapacity)
	go f.trampoline(s)
	return dequeueWait(&f.out)
}

// resume re-enters the fiber at its yield point and blocks the driver
// until the next suspension or termination.
func (f *goFiber) resume() transfer {
	c := cmdRun
	enqueueWait(&f.in, &c)
	return dequeueWait(&f.out)
}

// stop unwinds a suspended fiber so its goroutine can be reclaimed,
// and waits for the acknowledgement. The body is not resumed into its
// normal control flow.
func (f *goFiber) stop() {
	c := cmdStop
	enqueueWait(&f.in, &c)
	dequeueWait(&f.out)
}

// trampoline is the first frame on every fiber goroutine. It runs the
// entry function and reports the terminal transfer: a stopSignal unwind
// reports fiberStopped, any other panic is carried to the driver and
// re-raised there, a normal return reports fiberReturned.
func (f *goFiber) trampoline(s *Scheduler) {
	t := transfer{kind: fiberReturned}
	defer func() {
		if v := recover(); v != nil {
			if _, ok := v.(stopSignal); ok {
				t = transfer{kind: fiberStopped}
			} else {
				t = transfer{kind: fiberPanicked, val: v}
			}
		}
		enqueueWait(&f.out, &t)
	}()
	f.entry(s, f.data)
}

// park suspends the fiber from inside its own body: it hands control
// back to the driver's pending Resume and blocks until the next
// command. A stop command unwinds the fiber through the trampoline.
func (f *goFiber) park() {
	t := transfer{kind: fiberYielded}
	enqueueWait(&f.out, &t)
	if dequeueWait(&f.in) == cmdStop {
		panic(stopSignal{})
	}
}

// enqueueWait blocks until the bounded queue accepts v, backing off on
// iox.ErrWouldBlock (the peer has not consumed the previous token yet).
func enqueueWait[T any](q *lfq.SPSC[T], v *T) {
	var bo iox.Backoff
	for q.Enqueue(v) != nil {
		bo.Wait()
	}
}

// dequeueWait blocks until the bounded queue yields a token, backing
// off on iox.ErrWouldBlock (the peer has not produced yet).
func dequeueWait[T any](q *lfq.SPSC[T]) T {
	var bo iox.Backoff
	for {
		v, err := q.Dequeue()
		if err == nil {
			return v
		}
		bo.Wait()
	}
}
