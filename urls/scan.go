// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package urls

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// MaxLineLength is the longest URL line accepted by Scan.
const MaxLineLength = 1023

// Scan calls fn for every non-empty line read from rd until rd returns
// io.EOF, fn returns an error or ctx is canceled. Trailing carriage
// returns are removed so that files written on windows are read correctly.
func Scan(ctx context.Context, rd io.Reader, fn func(line string) error) error {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 256), MaxLineLength+2)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSuffix(sc.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return sc.Err()
}
