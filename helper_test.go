// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"testing"

	"code.hybscloud.com/coro"
)

// drain resumes id until it reaches StatusDead and returns the number
// of resumes issued.
func drain(t *testing.T, s *coro.Scheduler, id coro.ID) int {
	t.Helper()
	n := 0
	for s.Status(id) != coro.StatusDead {
		s.Resume(id)
		n++
	}
	return n
}

// mustPanic asserts fn panics with exactly the given message.
// Contract violations in coro are fatal, not returned errors.
func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic %q, got none", want)
		}
		msg, ok := r.(string)
		if !ok || msg != want {
			t.Fatalf("panic got %v, want %q", r, want)
		}
	}()
	fn()
}
