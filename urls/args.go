// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package urls

import (
	"fmt"
	"math"
	"strconv"
)

// ParseArgs parses the optional positional arguments [count] [start_number]
// and returns the corresponding Sequence. Missing arguments take the
// supplied defaults. The last item number, start_number+count, must not
// exceed math.MaxInt64.
func ParseArgs(args []string, defaultCount int, defaultStart int64) (Sequence, error) {
	seq := NewSequence(defaultCount, defaultStart)
	if len(args) > 2 {
		return seq, fmt.Errorf("accepts at most 2 arguments: [count] [start_number], got %v", len(args))
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return seq, fmt.Errorf("invalid count %q: %w", args[0], err)
		}
		if n < 0 {
			return seq, fmt.Errorf("invalid count %q: must not be negative", args[0])
		}
		seq.Count = n
	}
	if len(args) > 1 {
		s, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return seq, fmt.Errorf("invalid start number %q: %w", args[1], err)
		}
		seq.Start = s
	}
	if seq.Start > math.MaxInt64-int64(seq.Count) {
		return seq, fmt.Errorf("start number %v plus count %v exceeds the largest item number %v", seq.Start, seq.Count, int64(math.MaxInt64))
	}
	return seq, nil
}
