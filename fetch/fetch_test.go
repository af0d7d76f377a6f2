// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloudeng.io/net/ratecontrol"
	"github.com/mclxly/fgetpage/fetch"
)

// newServer returns a server whose page /<n>.html consists of n bytes.
func newServer(t *testing.T, delay time.Duration, inflight, maxInflight *atomic.Int64) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inflight != nil {
			n := inflight.Add(1)
			defer inflight.Add(-1)
			for {
				m := maxInflight.Load()
				if n <= m || maxInflight.CompareAndSwap(m, n) {
					break
				}
			}
		}
		time.Sleep(delay)
		size, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".html"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(strings.Repeat("x", size))) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	ts := newServer(t, 0, nil, nil)
	f := fetch.New(fetch.WithMaxPageSize(100))

	for _, tc := range []struct {
		path      string
		status    int
		size      int
		truncated bool
	}{
		{"/0.html", http.StatusOK, 0, false},
		{"/10.html", http.StatusOK, 10, false},
		{"/100.html", http.StatusOK, 100, false},
		{"/101.html", http.StatusOK, 100, true},
		{"/5000.html", http.StatusOK, 100, true},
		{"/missing", http.StatusNotFound, len("404 page not found\n"), false},
	} {
		pg := f.Get(ctx, ts.URL+tc.path)
		if pg.Err != nil {
			t.Errorf("%v: %v", tc.path, pg.Err)
			continue
		}
		if got, want := pg.URL, ts.URL+tc.path; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := pg.StatusCode, tc.status; got != want {
			t.Errorf("%v: got %v, want %v", tc.path, got, want)
		}
		if got, want := pg.Size(), tc.size; got != want {
			t.Errorf("%v: got %v, want %v", tc.path, got, want)
		}
		if got, want := pg.Truncated, tc.truncated; got != want {
			t.Errorf("%v: got %v, want %v", tc.path, got, want)
		}
	}

	// The default limit.
	pg := fetch.New().Get(ctx, ts.URL+"/"+strconv.Itoa(fetch.DefaultMaxPageSize+10)+".html")
	if got, want := pg.Size(), fetch.DefaultMaxPageSize; got != want || !pg.Truncated {
		t.Errorf("got %v (truncated %v), want %v", got, pg.Truncated, want)
	}
}

func TestGetErrors(t *testing.T) {
	ctx := context.Background()
	ts := newServer(t, 0, nil, nil)
	url := ts.URL
	ts.Close()

	f := fetch.New()
	if pg := f.Get(ctx, url+"/1.html"); pg.Err == nil {
		t.Errorf("expected an error from a closed server")
	}
	if pg := f.Get(ctx, "::not a url"); pg.Err == nil {
		t.Errorf("expected an error for an invalid url")
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if pg := f.Get(cctx, url+"/1.html"); !errors.Is(pg.Err, context.Canceled) {
		t.Errorf("missing or unexpected error: %v", pg.Err)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	var inflight, maxInflight atomic.Int64
	ts := newServer(t, 20*time.Millisecond, &inflight, &maxInflight)

	concurrency := 4
	f := fetch.New(fetch.WithConcurrency(concurrency))

	var want []string
	for i := range 40 {
		want = append(want, ts.URL+"/"+strconv.Itoa(i)+".html")
	}
	input := make(chan string)
	go func() {
		defer close(input)
		for _, u := range want {
			input <- u
		}
	}()

	var mu sync.Mutex
	var got []string
	err := f.Run(ctx, input, func(_ context.Context, pg fetch.Page) error {
		mu.Lock()
		defer mu.Unlock()
		if pg.Err != nil {
			t.Errorf("%v: %v", pg.URL, pg.Err)
		}
		size, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(pg.URL, ts.URL+"/"), ".html"))
		if pg.Size() != size {
			t.Errorf("%v: got %v, want %v", pg.URL, pg.Size(), size)
		}
		got = append(got, pg.URL)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, limit := maxInflight.Load(), int64(concurrency); got > limit || got < 2 {
		t.Errorf("got %v concurrent requests, want between 2 and %v", got, limit)
	}
}

func TestRunHandlerError(t *testing.T) {
	ctx := context.Background()
	ts := newServer(t, 0, nil, nil)
	f := fetch.New(fetch.WithConcurrency(2))

	input := make(chan string, 1)
	input <- ts.URL + "/1.html"
	// input is never closed, Run must return because of the handler's error.
	stop := errors.New("stop")
	err := f.Run(ctx, input, func(context.Context, fetch.Page) error {
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("missing or unexpected error: %v", err)
	}

	cctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	err = f.Run(cctx, make(chan string), func(context.Context, fetch.Page) error {
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("missing or unexpected error: %v", err)
	}
}

func TestRateControl(t *testing.T) {
	ctx := context.Background()
	ts := newServer(t, 0, nil, nil)
	rc := ratecontrol.New(ratecontrol.WithRequestsPerTick(time.Second, 20))
	f := fetch.New(fetch.WithRateController(rc), fetch.WithConcurrency(10))

	input := make(chan string)
	go func() {
		defer close(input)
		for range 6 {
			input <- ts.URL + "/1.html"
		}
	}()
	start := time.Now()
	var n atomic.Int64
	err := f.Run(ctx, input, func(_ context.Context, pg fetch.Page) error {
		if pg.Err != nil {
			return pg.Err
		}
		n.Add(1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n.Load(), int64(6); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	// 20 requests per second allows one request every 50ms.
	if took := time.Since(start); took < 250*time.Millisecond {
		t.Errorf("requests were not paced: %v", took)
	}
}
