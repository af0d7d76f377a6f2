// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command writeurls writes sequential product page urls to a file.
//
//	writeurls [count] [start_number]
//
// writes count (default 1000) urls of the form http://item.jd.com/<n>.html,
// with n running from start_number+1 (default 652406), one per line, to
// test_urls.txt. Any existing content is replaced.
package main

import (
	"context"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"github.com/mclxly/fgetpage/internal/cli"
	"github.com/mclxly/fgetpage/urls"
)

const cmdSpec = `name: writeurls
summary: write count (default 1000) sequential product page urls, starting
  after start_number (default 652405), to a file. Usage is
  writeurls [count] [start_number].
arguments:
  - ...
`

type writeFlags struct {
	cmdutil.LoggingFlags
	Output string `subcmd:"output,test_urls.txt,file to write the urls to"`
}

var cmdSet = subcmd.MustFromYAML(cmdSpec)

func init() {
	cmdSet.Set("writeurls").MustRunnerAndFlags(writeURLs,
		subcmd.MustRegisteredFlagSet(&writeFlags{}))
}

func main() {
	subcmd.Dispatch(context.Background(), cmdSet)
}

func writeURLs(ctx context.Context, values any, args []string) error {
	fv := values.(*writeFlags)
	seq, err := urls.ParseArgs(args, urls.DefaultFileCount, urls.DefaultStart)
	if err != nil {
		return err
	}
	ctx, closer, err := cli.WithLogger(ctx, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer closer()
	return urls.WriteFile(ctx, fv.Output, seq)
}
