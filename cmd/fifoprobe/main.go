// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build unix

// Command fifoprobe waits for the urls_list.fifo named pipe to appear,
// reads a single binary header from it and prints both the raw bytes and
// the decoded pid and len fields. It waits for the pipe indefinitely,
// printing "waiting." every two seconds.
//
// The header format is not what fifourls writes; run against fifourls the
// probe decodes the first eight bytes of the first url. Use --urls to
// print the url lines instead.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"github.com/mclxly/fgetpage/fifo"
	"github.com/mclxly/fgetpage/internal/cli"
	"github.com/mclxly/fgetpage/probe"
	"github.com/mclxly/fgetpage/urls"
)

const cmdSpec = `name: fifoprobe
summary: wait for a named pipe, then read and decode a binary pid/len header from it.
`

type probeFlags struct {
	cmdutil.LoggingFlags
	FIFO     string        `subcmd:"fifo,urls_list.fifo,named pipe to read from"`
	Interval time.Duration `subcmd:"interval,2s,delay between checks for the existence of the named pipe"`
	URLs     bool          `subcmd:"urls,false,print newline delimited urls until the writer closes the pipe instead of decoding a header"`
}

var cmdSet = subcmd.MustFromYAML(cmdSpec)

func init() {
	cmdSet.Set("fifoprobe").MustRunnerAndFlags(probeFIFO,
		subcmd.MustRegisteredFlagSet(&probeFlags{}))
}

func main() {
	subcmd.Dispatch(context.Background(), cmdSet)
}

func probeFIFO(ctx context.Context, values any, _ []string) error {
	fv := values.(*probeFlags)
	ctx, closer, err := cli.WithLogger(ctx, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer closer()

	fmt.Printf("native integer size: %d\n", probe.NativeIntSize)
	err = fifo.WaitFor(ctx, fv.FIFO, fv.Interval, func(string, time.Duration) {
		fmt.Println("waiting.")
	})
	if err != nil {
		return err
	}
	fmt.Println("start reading")

	rd, err := fifo.OpenReader(ctx, fv.FIFO)
	if err != nil {
		return fmt.Errorf("can't open file: %w", err)
	}
	defer rd.Close()
	stop := fifo.Interruptible(ctx, rd)
	defer stop()

	if fv.URLs {
		return urls.Scan(ctx, rd, func(line string) error {
			fmt.Println(line)
			return nil
		})
	}

	buf, err := probe.Read(rd)
	os.Stdout.Write(buf)
	fmt.Println()
	if err != nil {
		return err
	}
	hdr, err := probe.Decode(buf)
	if err != nil {
		return err
	}
	fmt.Println(hdr)
	return nil
}
