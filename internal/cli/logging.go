// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cli contains support shared by the commands in this module.
package cli

import (
	"context"

	"cloudeng.io/cmdutil"
	"cloudeng.io/logging/ctxlog"
)

// WithLogger creates the logger described by lf and returns a context
// carrying it, see ctxlog.Logger. The returned function closes the log
// file, if any.
func WithLogger(ctx context.Context, lf cmdutil.LoggingFlags) (context.Context, func() error, error) {
	logger, err := lf.LoggingConfig().NewLogger()
	if err != nil {
		return ctx, func() error { return nil }, err
	}
	return ctxlog.Context(ctx, logger.Logger), logger.Close, nil
}
