// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Yield is the effect operation for suspending an Expr-world coroutine.
// Perform(Yield{}) parks the coroutine until its next Resume; the
// resumption value is always struct{}{} (yields carry no data).
type Yield struct {
	kont.Phantom[struct{}]
}
