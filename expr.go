// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// RegisterExpr creates an Expr-world coroutine in StatusReady and
// returns its identifier. The body is a defunctionalized computation
// stepped on the driving goroutine itself; no fiber goroutine is ever
// spawned for it. The only effect a body may perform is Yield.
func (s *Scheduler) RegisterExpr(protocol kont.Expr[struct{}]) ID {
	s.checkOpen()
	return s.add(&coroutine{
		ctx:   &exprFiber{protocol: protocol},
		state: StatusReady,
	})
}

// RegisterEff creates an Expr-world coroutine from a Cont-world body.
// The body is reified into frames once at registration time.
func (s *Scheduler) RegisterEff(m kont.Eff[struct{}]) ID {
	return s.RegisterExpr(Reify(m))
}

// exprFiber is a stackless coroutine body: the saved execution context
// is the one-shot kont.Suspension captured at the last Yield effect.
// Stepping happens on the driving goroutine, so there is no handoff
// transport and nothing to unwind at teardown beyond discarding the
// suspension.
type exprFiber struct {
	protocol kont.Expr[struct{}]
	susp     *kont.Suspension[struct{}]
}

// start steps the body from the top until its first Yield effect or
// completion.
func (f *exprFiber) start(s *Scheduler) (t transfer) {
	defer f.catch(&t)
	_, susp := kont.StepExpr(f.protocol)
	f.protocol = kont.Expr[struct{}]{}
	return f.settle(susp)
}

// resume re-enters the saved suspension, consuming it, and steps to
// the next Yield effect or completion.
func (f *exprFiber) resume() (t transfer) {
	defer f.catch(&t)
	susp := f.susp
	f.susp = nil
	_, next := susp.Resume(struct{}{})
	return f.settle(next)
}

// settle classifies the stepping result: nil means the body completed,
// a Yield suspension is saved for the next resume, anything else is an
// effect this scheduler does not handle.
func (f *exprFiber) settle(susp *kont.Suspension[struct{}]) transfer {
	if susp == nil {
		return transfer{kind: fiberReturned}
	}
	if _, ok := susp.Op().(Yield); !ok {
		panic("coro: unhandled effect in coroutine body")
	}
	f.susp = susp
	return transfer{kind: fiberYielded}
}

// stop drops a suspended body without driving it further.
func (f *exprFiber) stop() {
	if f.susp != nil {
		f.susp.Discard()
		f.susp = nil
	}
}

// catch converts a panic escaping the stepped body into the same
// terminal transfer a fiber goroutine would report, so Resume removes
// the coroutine before re-raising.
func (f *exprFiber) catch(t *transfer) {
	if v := recover(); v != nil {
		*t = transfer{kind: fiberPanicked, val: v}
	}
}
