// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build unix

package fifo

import (
	"context"
	"os"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"golang.org/x/sys/unix"
)

type openResult struct {
	f   *os.File
	err error
}

// Open opens the FIFO at path using flag, which must be one of
// os.O_RDONLY or os.O_WRONLY, optionally with other flags such as
// os.O_TRUNC. The open blocks until another process opens
// the FIFO for the complementary access, or until ctx is canceled.
// On cancelation the complementary end is briefly opened in non-blocking
// mode to complete the pending open, both descriptors are closed and
// ctx.Err() is returned.
func Open(ctx context.Context, path string, flag int) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := make(chan openResult, 1)
	go func() {
		f, err := os.OpenFile(path, flag, 0)
		ch <- openResult{f: f, err: err}
	}()
	select {
	case r := <-ch:
		return r.f, r.err
	case <-ctx.Done():
	}
	logger := ctxlog.Logger(ctx)
	other, err := os.OpenFile(path, complement(flag)|unix.O_NONBLOCK, 0)
	if err != nil {
		// The pending open can't be released, close whatever it
		// eventually returns.
		logger.Warn("failed to release pending fifo open", "path", path, "error", err)
		go func() {
			if r := <-ch; r.f != nil {
				r.f.Close()
			}
		}()
		return nil, ctx.Err()
	}
	r := <-ch
	errs := &errors.M{}
	if r.f != nil {
		errs.Append(r.f.Close())
	}
	errs.Append(other.Close())
	if err := errs.Err(); err != nil {
		logger.Warn("closing fifo after cancelation", "path", path, "error", err)
	}
	return nil, ctx.Err()
}

func complement(flag int) int {
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return os.O_RDONLY
	}
	return os.O_WRONLY
}

// OpenWriter opens the FIFO at path for writing, blocking until a reader
// opens it or ctx is canceled. O_TRUNC has no effect on a FIFO but
// replaces the contents of a regular file found at path.
func OpenWriter(ctx context.Context, path string) (*os.File, error) {
	return Open(ctx, path, os.O_WRONLY|os.O_TRUNC)
}

// OpenReader opens the FIFO at path for reading, blocking until a writer
// opens it or ctx is canceled.
func OpenReader(ctx context.Context, path string) (*os.File, error) {
	return Open(ctx, path, os.O_RDONLY)
}
