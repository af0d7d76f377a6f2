// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build unix

package fifo

import (
	"context"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WaitFor waits for path to exist, checking immediately and then every
// interval. There is no limit on the number of checks, WaitFor returns
// only when path exists, when checking fails with an error other than
// os.ErrNotExist, or when ctx is canceled. If notify is not nil it is
// called after every unsuccessful check.
func WaitFor(ctx context.Context, path string, interval time.Duration, notify func(path string, next time.Duration)) error {
	exists := func() error {
		_, err := os.Lstat(path)
		if err == nil || os.IsNotExist(err) {
			return err
		}
		return backoff.Permanent(err)
	}
	var notifyFn backoff.Notify
	if notify != nil {
		notifyFn = func(_ error, next time.Duration) {
			notify(path, next)
		}
	}
	bo := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	return backoff.RetryNotify(exists, bo, notifyFn)
}
