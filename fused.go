// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// YieldThen yields the processor and then continues with next.
// Fuses Perform(Yield{}) + Then.
func YieldThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield{}), next)
}

// Exit completes a coroutine body.
func Exit() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}
