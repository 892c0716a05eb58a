// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased operation and frame to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world
// construction.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprYield       kont.Erased = Yield{}
)

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprYieldThen yields the processor and then continues with next.
// Fuses ExprPerform(Yield{}) + ExprThen.
func ExprYieldThen[B any](next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprYield
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprExit completes a coroutine body.
func ExprExit() kont.Expr[struct{}] {
	return kont.ExprReturn(struct{}{})
}
