// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build unix

// Package fifo provides support for creating, waiting for and opening
// named pipes (FIFOs). Opening a FIFO blocks until the complementary end
// is opened by another process; Open allows for that rendezvous to be
// abandoned by canceling its context.
package fifo

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"cloudeng.io/logging/ctxlog"
	"golang.org/x/sys/unix"
)

const (
	// DefaultPath is the FIFO shared by the URL writer and the probe.
	DefaultPath = "urls_list.fifo"
	// DefaultMode is the permission used when creating the FIFO.
	DefaultMode fs.FileMode = 0o600
	// DefaultPollInterval is the delay between checks made by WaitFor.
	DefaultPollInterval = 2 * time.Second
)

// Create creates a FIFO at path with the supplied permissions unless
// path already exists, in which case it is left untouched. The umask
// is cleared while the FIFO is created so that perm is applied exactly.
// It returns true if a new FIFO was created.
func Create(ctx context.Context, path string, perm fs.FileMode) (bool, error) {
	logger := ctxlog.Logger(ctx)
	fi, err := os.Lstat(path)
	if err == nil {
		if fi.Mode().Type() != fs.ModeNamedPipe {
			logger.Warn("existing file is not a fifo", "path", path, "mode", fi.Mode().String())
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}
	prev := unix.Umask(0)
	err = unix.Mkfifo(path, uint32(perm.Perm()))
	unix.Umask(prev)
	if err != nil {
		return false, &os.PathError{Op: "mkfifo", Path: path, Err: err}
	}
	logger.Info("created fifo", "path", path, "mode", perm.String())
	return true, nil
}

// IsFIFO returns true if path exists and is a named pipe.
func IsFIFO(path string) (bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	return fi.Mode().Type() == fs.ModeNamedPipe, nil
}

// Remove removes the FIFO at path. It refuses to remove anything that is
// not a FIFO.
func Remove(path string) error {
	isFIFO, err := IsFIFO(path)
	if err != nil {
		return err
	}
	if !isFIFO {
		return fmt.Errorf("%v: not a fifo", path)
	}
	return os.Remove(path)
}
