// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mclxly/fgetpage/internal/cmdtest"
	"github.com/mclxly/fgetpage/urls"
)

func TestWriteURLs(t *testing.T) {
	ctx := context.Background()
	binary := cmdtest.Build(ctx, t, ".")
	dir := t.TempDir()
	filename := filepath.Join(dir, "test_urls.txt")

	run := func(args ...string) []byte {
		t.Helper()
		cmd, _, stderr := cmdtest.Command(ctx, dir, binary, args...)
		if err := cmd.Run(); err != nil {
			t.Fatalf("%v: %v: %s", args, err, stderr)
		}
		buf, err := os.ReadFile(filename)
		if err != nil {
			t.Fatal(err)
		}
		return buf
	}

	nl := urls.LineTerminator
	want := "http://item.jd.com/101.html" + nl +
		"http://item.jd.com/102.html" + nl +
		"http://item.jd.com/103.html" + nl
	first := run("3", "100")
	if got := string(first); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if second := run("3", "100"); !bytes.Equal(first, second) {
		t.Errorf("got %q, want %q", second, first)
	}

	buf := run()
	lines := strings.Split(strings.TrimSuffix(string(buf), nl), nl)
	if got, want := len(lines), urls.DefaultFileCount; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := lines[0], "http://item.jd.com/652406.html"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	buf = run("2")
	if got, want := string(buf), "http://item.jd.com/652406.html"+nl+"http://item.jd.com/652407.html"+nl; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if buf := run("0"); len(buf) != 0 {
		t.Errorf("got %q, want an empty file", buf)
	}

	other := filepath.Join(dir, "other.txt")
	cmd, _, stderr := cmdtest.Command(ctx, dir, binary, "--output="+other, "1", "9")
	if err := cmd.Run(); err != nil {
		t.Fatalf("%v: %s", err, stderr)
	}
	if buf, _ := os.ReadFile(other); string(buf) != "http://item.jd.com/10.html"+nl {
		t.Errorf("unexpected content: %q", buf)
	}
}

func TestWriteURLsErrors(t *testing.T) {
	ctx := context.Background()
	binary := cmdtest.Build(ctx, t, ".")
	dir := t.TempDir()

	for _, tc := range []struct {
		args []string
		msg  string
	}{
		{[]string{"--output=" + filepath.Join(dir, "missing", "urls.txt")}, "can't open file"},
		{[]string{"ten"}, `invalid count "ten"`},
		{[]string{"1", "2", "3"}, "accepts at most 2 arguments"},
	} {
		cmd, _, stderr := cmdtest.Command(ctx, dir, binary, tc.args...)
		err := cmd.Run()
		if got, want := cmdtest.ExitCode(err), 1; got != want {
			t.Errorf("%v: got %v, want %v", tc.args, got, want)
		}
		if !strings.Contains(stderr.String(), tc.msg) {
			t.Errorf("%v: got %v, does not contain %v", tc.args, stderr.String(), tc.msg)
		}
	}
}
