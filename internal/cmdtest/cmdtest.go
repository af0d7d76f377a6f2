// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cmdtest provides support for testing the commands in this
// module by building and running them.
package cmdtest

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"cloudeng.io/os/executil"
)

// Build builds the command in pkgDir, relative to the current directory,
// and returns the path of the binary which is placed in a temporary
// directory.
func Build(ctx context.Context, t testing.TB, pkgDir string) string {
	t.Helper()
	abs, err := filepath.Abs(pkgDir)
	if err != nil {
		t.Fatal(err)
	}
	binary, err := executil.GoBuild(ctx, filepath.Join(t.TempDir(), filepath.Base(abs)), pkgDir)
	if err != nil {
		t.Fatalf("failed to build %v: %v", pkgDir, err)
	}
	return binary
}

// Command returns an exec.Cmd for binary that runs in dir with its
// stdout and stderr captured in the returned buffers.
func Command(ctx context.Context, dir, binary string, args ...string) (*exec.Cmd, *bytes.Buffer, *bytes.Buffer) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.Stdout, cmd.Stderr = stdout, stderr
	return cmd, stdout, stderr
}

// ExitCode returns the exit code for the error returned by exec.Cmd.Run
// or Wait, 0 for a nil error and -1 if the process did not exit normally.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
