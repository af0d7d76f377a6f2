// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fetch downloads web pages concurrently, retaining at most a
// fixed number of bytes of each page. It is used to fetch the product
// pages whose URLs are read from a named pipe.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/net/ratecontrol"
	"cloudeng.io/sync/errgroup"
)

const (
	// DefaultConcurrency is the maximum number of pages fetched at once.
	DefaultConcurrency = 450
	// DefaultMaxPageSize is the maximum number of bytes retained for
	// any one page; longer pages are truncated.
	DefaultMaxPageSize = 500 << 10
	// DefaultTimeout bounds the time taken to fetch a single page.
	DefaultTimeout = 30 * time.Second
)

// Page is the result of fetching a single URL. Non-2xx responses are
// not errors, their status code and body are recorded as for any other
// response.
type Page struct {
	URL        string
	StatusCode int
	Content    []byte
	Truncated  bool
	Duration   time.Duration
	Err        error
}

// Size returns the number of bytes retained for the page.
func (p Page) Size() int {
	return len(p.Content)
}

// Option represents an option to New.
type Option func(o *options)

type options struct {
	concurrency    int
	maxPageSize    int64
	client         *http.Client
	rateController *ratecontrol.Controller
}

// WithConcurrency sets the number of pages that may be fetched
// concurrently. Values less than 1 are ignored.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithMaxPageSize sets the maximum number of bytes retained per page.
// Values less than 1 are ignored.
func WithMaxPageSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPageSize = n
		}
	}
}

// WithHTTPClient sets the http.Client used to fetch pages.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithRateController paces requests and bytes downloaded using rc.
func WithRateController(rc *ratecontrol.Controller) Option {
	return func(o *options) {
		o.rateController = rc
	}
}

// Fetcher fetches pages. It is safe for concurrent use.
type Fetcher struct {
	options
}

// New returns a new Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{}
	f.concurrency = DefaultConcurrency
	f.maxPageSize = DefaultMaxPageSize
	for _, fn := range opts {
		fn(&f.options)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: DefaultTimeout}
	}
	return f
}

// Get fetches url. Any error encountered is recorded in the returned
// Page's Err field.
func (f *Fetcher) Get(ctx context.Context, url string) Page {
	start := time.Now()
	pg := f.get(ctx, url)
	pg.Duration = time.Since(start)
	logger := ctxlog.Logger(ctx)
	if pg.Err != nil {
		logger.Error("fetch failed", "url", url, "duration", pg.Duration, "error", pg.Err)
		return pg
	}
	logger.Info("fetched", "url", url, "status", pg.StatusCode, "size", pg.Size(), "truncated", pg.Truncated, "duration", pg.Duration)
	return pg
}

func (f *Fetcher) get(ctx context.Context, url string) Page {
	pg := Page{URL: url}
	if f.rateController != nil {
		if err := f.rateController.Wait(ctx); err != nil {
			pg.Err = fmt.Errorf("ratecontrol failed: %w", err)
			return pg
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		pg.Err = err
		return pg
	}
	resp, err := f.client.Do(req)
	if err != nil {
		pg.Err = err
		return pg
	}
	defer resp.Body.Close()
	pg.StatusCode = resp.StatusCode
	// One byte beyond the limit distinguishes a truncated page from one
	// of exactly maxPageSize bytes.
	content, err := io.ReadAll(io.LimitReader(resp.Body, f.maxPageSize+1))
	if int64(len(content)) > f.maxPageSize {
		content = content[:f.maxPageSize]
		pg.Truncated = true
	}
	if f.rateController != nil {
		f.rateController.BytesTransferred(len(content))
	}
	pg.Content = content
	if err != nil {
		pg.Err = fmt.Errorf("failed to read body: %w", err)
	}
	return pg
}

// Handler is called for every page fetched by Run. It is called
// concurrently and a non-nil error stops Run.
type Handler func(ctx context.Context, pg Page) error

// Run fetches every URL received on input, using at most the configured
// number of concurrent fetches, and calls handler for each one. It returns
// when input is closed and all pending fetches have completed, when
// handler returns an error or when ctx is canceled.
func (f *Fetcher) Run(ctx context.Context, input <-chan string, handler Handler) error {
	g, ctx := errgroup.WithContext(ctx)
	g = errgroup.WithConcurrency(g, f.concurrency)
	for range f.concurrency {
		g.Go(func() error {
			return f.fetcher(ctx, input, handler)
		})
	}
	return g.Wait()
}

func (f *Fetcher) fetcher(ctx context.Context, input <-chan string, handler Handler) error {
	for {
		var url string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case url, ok = <-input:
			if !ok {
				return nil
			}
		}
		if err := handler(ctx, f.Get(ctx, url)); err != nil {
			return err
		}
	}
}
