// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package urls generates sequences of product page URLs of the form
// http://item.jd.com/<n>.html where n is obtained by incrementing a
// starting item number once per URL.
package urls

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
)

const (
	// DefaultPrefix is prepended to every item number.
	DefaultPrefix = "http://item.jd.com/"
	// DefaultSuffix is appended to every item number.
	DefaultSuffix = ".html"
	// DefaultStart is the item number that precedes the first URL.
	DefaultStart int64 = 652405
	// DefaultFileCount is the number of URLs written to a file.
	DefaultFileCount = 1000
	// DefaultFIFOCount is the number of URLs written to a named pipe.
	DefaultFIFOCount = 10
	// DefaultFilename is the file written by WriteFile when used from
	// the writeurls command.
	DefaultFilename = "test_urls.txt"
)

// Sequence describes Count URLs whose item numbers are Start+1 through
// Start+Count. Start+Count must not exceed math.MaxInt64, ParseArgs
// enforces this for sequences built from command line arguments.
type Sequence struct {
	Prefix string
	Suffix string
	Start  int64
	Count  int
}

// NewSequence returns a Sequence using DefaultPrefix and DefaultSuffix.
func NewSequence(count int, start int64) Sequence {
	return Sequence{
		Prefix: DefaultPrefix,
		Suffix: DefaultSuffix,
		Start:  start,
		Count:  count,
	}
}

// URL returns the URL for the supplied item number.
func (s Sequence) URL(item int64) string {
	return s.Prefix + strconv.FormatInt(item, 10) + s.Suffix
}

// All returns an iterator over the URLs in the sequence, in order.
func (s Sequence) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		item := s.Start
		for i := 0; i < s.Count; i++ {
			item++
			if !yield(s.URL(item)) {
				return
			}
		}
	}
}

// WriteTo writes every URL in the sequence to w, each followed by
// LineTerminator. It implements io.WriterTo.
func (s Sequence) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for u := range s.All() {
		n, err := io.WriteString(w, u+LineTerminator)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// WriteFile creates, or truncates, filename and writes the sequence to it.
func WriteFile(ctx context.Context, filename string, seq Sequence) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("can't open file: %w", err)
	}
	wr := bufio.NewWriter(f)
	n, err := seq.WriteTo(wr)
	if err == nil {
		err = wr.Flush()
	}
	errs := &errors.M{}
	errs.Append(err)
	errs.Append(f.Close())
	if err := errs.Err(); err != nil {
		ctxlog.Logger(ctx).Error("failed to write urls", "path", filename, "bytes", n, "error", err)
		return err
	}
	ctxlog.Logger(ctx).Info("wrote urls", "path", filename, "count", seq.Count, "start", seq.Start, "bytes", n)
	return nil
}
