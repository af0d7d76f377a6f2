// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build unix

// Command fifourls writes sequential product page urls to a named pipe.
//
//	fifourls [count] [start_number]
//
// creates urls_list.fifo, with mode 0600, if it does not already exist
// and then opens it for writing. The open blocks until a reader opens
// the pipe, after which count (default 10) urls, starting after
// start_number (default 652405), are written one per line. Writes block
// whenever the pipe is full. The pipe is left in place on exit unless
// --remove is specified.
package main

import (
	"context"
	"fmt"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/mclxly/fgetpage/fifo"
	"github.com/mclxly/fgetpage/internal/cli"
	"github.com/mclxly/fgetpage/urls"
)

const cmdSpec = `name: fifourls
summary: write count (default 10) sequential product page urls, starting
  after start_number (default 652405), to a named pipe, creating it if
  needed. Usage is fifourls [count] [start_number].
arguments:
  - ...
`

type fifoFlags struct {
	cmdutil.LoggingFlags
	FIFO   string `subcmd:"fifo,urls_list.fifo,named pipe to write the urls to"`
	Remove bool   `subcmd:"remove,false,remove the named pipe once all urls have been written"`
}

var cmdSet = subcmd.MustFromYAML(cmdSpec)

func init() {
	cmdSet.Set("fifourls").MustRunnerAndFlags(writeFIFO,
		subcmd.MustRegisteredFlagSet(&fifoFlags{}))
}

func main() {
	subcmd.Dispatch(context.Background(), cmdSet)
}

func writeFIFO(ctx context.Context, values any, args []string) error {
	fv := values.(*fifoFlags)
	seq, err := urls.ParseArgs(args, urls.DefaultFIFOCount, urls.DefaultStart)
	if err != nil {
		return err
	}
	ctx, closer, err := cli.WithLogger(ctx, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer closer()

	if _, err := fifo.Create(ctx, fv.FIFO, fifo.DefaultMode); err != nil {
		return err
	}
	wr, err := fifo.OpenWriter(ctx, fv.FIFO)
	if err != nil {
		return fmt.Errorf("can't open file: %w", err)
	}
	stop := fifo.Interruptible(ctx, wr)
	defer stop()

	fmt.Println("start writing urls...")
	// Unbuffered, each url is a separate write to the pipe.
	n, err := seq.WriteTo(wr)
	errs := &errors.M{}
	errs.Append(err)
	errs.Append(wr.Close())
	if err := errs.Err(); err != nil {
		ctxlog.Logger(ctx).Error("failed to write urls", "path", fv.FIFO, "bytes", n, "error", err)
	} else {
		ctxlog.Logger(ctx).Info("wrote urls", "path", fv.FIFO, "count", seq.Count, "start", seq.Start, "bytes", n)
	}
	if fv.Remove {
		errs.Append(fifo.Remove(fv.FIFO))
	}
	return errs.Err()
}
