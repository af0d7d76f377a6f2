// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build unix

package fifo

import (
	"context"
	"os"
	"time"
)

// Interruptible arranges for reads and writes blocked on f to return
// os.ErrDeadlineExceeded once ctx is done. It relies on f supporting
// deadlines, which is the case for FIFOs on linux, and has no effect
// otherwise. Calling the returned function stops the association.
func Interruptible(ctx context.Context, f *os.File) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		_ = f.SetDeadline(time.Now())
	})
}
