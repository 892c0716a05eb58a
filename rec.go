// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// YieldLoop builds a coroutine body that runs step repeatedly, yielding
// the processor between iterations (Cont-world). step returns
// Left(nextState) to continue or Right to finish; the final iteration
// completes without a trailing yield.
func YieldLoop[S any](initial S, step func(S) kont.Eff[kont.Either[S, struct{}]]) kont.Eff[struct{}] {
	return kont.Bind(step(initial), func(e kont.Either[S, struct{}]) kont.Eff[struct{}] {
		if left, ok := e.GetLeft(); ok {
			return YieldThen(YieldLoop(left, step))
		}
		return kont.Pure(struct{}{})
	})
}

// ExprYieldLoop builds a coroutine body that runs step repeatedly,
// yielding the processor between iterations (Expr-world). step returns
// Left(nextState) to continue or Right to finish.
// Fuses ExprBind inline to avoid the type-erasing wrapper closure.
func ExprYieldLoop[S any](initial S, step func(S) kont.Expr[kont.Either[S, struct{}]]) kont.Expr[struct{}] {
	m := step(initial)
	if _, ok := m.Frame.(kont.ReturnFrame); ok {
		if left, ok := m.Value.GetLeft(); ok {
			return ExprYieldThen(ExprYieldLoop(left, step))
		}
		return kont.ExprReturn(struct{}{})
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, struct{}])
		if left, ok := e.GetLeft(); ok {
			result := ExprYieldThen(ExprYieldLoop(left, step))
			return kont.Expr[kont.Erased]{Value: kont.Erased(result.Value), Frame: result.Frame}
		}
		return kont.Expr[kont.Erased]{Value: kont.Erased(struct{}{}), Frame: kont.ReturnFrame{}}
	}
	bf.Next = kont.ReturnFrame{}
	return kont.Expr[struct{}]{
		Value: struct{}{},
		Frame: kont.ChainFrames(m.Frame, bf),
	}
}
