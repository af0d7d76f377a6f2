// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build unix

// Command getpages reads urls, one per line, from the urls_list.fifo named
// pipe and fetches each page, printing its size. Pages are fetched
// concurrently, up to --concurrency at a time, and at most
// --max-page-size bytes of each page are retained.
//
// The pipe is created, with mode 0600, if it does not already exist.
// getpages keeps reading urls from successive writers until it is
// interrupted, or, with --once, until the first writer closes the pipe
// and all of its urls have been fetched.
package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/net/ratecontrol"
	"cloudeng.io/sync/errgroup"
	"github.com/mclxly/fgetpage/fetch"
	"github.com/mclxly/fgetpage/fifo"
	"github.com/mclxly/fgetpage/internal/cli"
	"github.com/mclxly/fgetpage/urls"
)

const cmdSpec = `name: getpages
summary: fetch the pages whose urls are written to a named pipe.
`

type getFlags struct {
	cmdutil.LoggingFlags
	FIFO              string        `subcmd:"fifo,urls_list.fifo,named pipe to read urls from"`
	Concurrency       int           `subcmd:"concurrency,450,maximum number of pages fetched concurrently"`
	MaxPageSize       int           `subcmd:"max-page-size,512000,maximum number of bytes retained for each page"`
	RequestsPerSecond int           `subcmd:"requests-per-second,0,maximum rate at which pages are requested, 0 for no limit"`
	Timeout           time.Duration `subcmd:"timeout,30s,timeout for fetching a single page"`
	Once              bool          `subcmd:"once,false,exit once the first writer closes the named pipe"`
}

var cmdSet = subcmd.MustFromYAML(cmdSpec)

func init() {
	cmdSet.Set("getpages").MustRunnerAndFlags(getPages,
		subcmd.MustRegisteredFlagSet(&getFlags{}))
}

func main() {
	subcmd.Dispatch(context.Background(), cmdSet)
}

func newFetcher(fv *getFlags) *fetch.Fetcher {
	opts := []fetch.Option{
		fetch.WithConcurrency(fv.Concurrency),
		fetch.WithMaxPageSize(int64(fv.MaxPageSize)),
		fetch.WithHTTPClient(&http.Client{Timeout: fv.Timeout}),
	}
	if fv.RequestsPerSecond > 0 {
		rc := ratecontrol.New(ratecontrol.WithRequestsPerTick(time.Second, fv.RequestsPerSecond))
		opts = append(opts, fetch.WithRateController(rc))
	}
	return fetch.New(opts...)
}

func getPages(ctx context.Context, values any, _ []string) error {
	fv := values.(*getFlags)
	ctx, closer, err := cli.WithLogger(ctx, fv.LoggingFlags)
	if err != nil {
		return err
	}
	defer closer()

	if _, err := fifo.Create(ctx, fv.FIFO, fifo.DefaultMode); err != nil {
		return err
	}
	fetcher := newFetcher(fv)
	fmt.Printf("now, pipe some urls into %v\n", fv.FIFO)

	urlCh := make(chan string, fv.Concurrency)
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(urlCh)
		return readURLs(ctx, fv.FIFO, fv.Once, urlCh)
	})
	g.Go(func() error {
		return fetcher.Run(ctx, urlCh, func(_ context.Context, pg fetch.Page) error {
			mu.Lock()
			defer mu.Unlock()
			if pg.Err != nil {
				fmt.Printf("%v: %v\n", pg.URL, pg.Err)
				return nil
			}
			fmt.Printf("%v: status %v, %v bytes\n", pg.URL, pg.StatusCode, pg.Size())
			return nil
		})
	})
	return g.Wait()
}

// readURLs sends the urls read from the named pipe at path to ch. Each
// writer's urls are read until it closes the pipe, after which the pipe
// is reopened for the next writer unless once is set.
func readURLs(ctx context.Context, path string, once bool, ch chan<- string) error {
	for {
		rd, err := fifo.OpenReader(ctx, path)
		if err != nil {
			return fmt.Errorf("can't open file: %w", err)
		}
		stop := fifo.Interruptible(ctx, rd)
		err = urls.Scan(ctx, rd, func(line string) error {
			select {
			case ch <- line:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		stop()
		rd.Close()
		if err != nil || once {
			return err
		}
	}
}
