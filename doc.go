// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides a single-threaded cooperative coroutine scheduler:
// many independent logical threads of control multiplexed onto one driving
// goroutine, with explicit suspension points.
//
// A [Scheduler] owns a table of coroutines indexed by small integer [ID]s.
// The driver creates coroutines with [Scheduler.Register] and transfers
// control into them with [Scheduler.Resume]; a running coroutine hands
// control back with [Scheduler.Yield]. Exactly one coroutine executes at
// any instant, and control always returns to the driver between a
// coroutine's turns. There is no preemption and no notion of time.
//
// # Architecture
//
//   - Handoff: control transfer between the driver and a coroutine rides on
//     bounded lock-free SPSC queues via [code.hybscloud.com/lfq], waiting
//     past [code.hybscloud.com/iox.ErrWouldBlock] with adaptive backoff.
//   - Dual-world bodies: direct-style functions run on a dedicated fiber
//     goroutine ([Scheduler.Register]), while defunctionalized
//     [code.hybscloud.com/kont] computations run stackless on the driving
//     goroutine itself ([Scheduler.RegisterExpr], [Scheduler.RegisterEff]).
//     Both worlds share one table, one identifier space, and one lifecycle.
//   - Error handling: every misuse (nested resume, dead or out-of-range id,
//     yield with nothing running) is a contract violation and panics; there
//     is no recoverable error channel.
//
// # Lifecycle
//
// A coroutine is [StatusReady] after Register, [StatusRunning] during its
// turn, [StatusSuspended] between a yield and the next resume, and
// [StatusDead] once its body returns, after which its identifier may be
// reused. Dead is represented by slot absence, not a stored tag.
//
// # API Topologies
//
//   - Scheduler: [Open], [Scheduler.Close], [Scheduler.Register],
//     [Scheduler.Resume], [Scheduler.Yield], [Scheduler.Status],
//     [Scheduler.Running], [Scheduler.Len].
//   - Cont-world: [YieldThen], [Exit], [YieldLoop]. Bridge via [Reify]
//     and [Reflect].
//   - Expr-world: zero-allocation variants [ExprYieldThen], [ExprExit],
//     [ExprYieldLoop]; the suspension effect is [Yield].
//
// # Teardown
//
// [Scheduler.Close] discards every remaining coroutine. A suspended
// Expr-world body is dropped without being driven further; a suspended
// direct-style body is unwound so its fiber goroutine can be reclaimed.
// Neither is resumed back into its normal control flow.
//
// # Example
//
//	s := coro.Open()
//	defer s.Close()
//	id := s.Register(func(s *coro.Scheduler, data any) {
//		fmt.Println("step", data, 1)
//		s.Yield()
//		fmt.Println("step", data, 2)
//	}, "a")
//	s.Resume(id) // step a 1
//	s.Resume(id) // step a 2; the coroutine is now dead
package coro
