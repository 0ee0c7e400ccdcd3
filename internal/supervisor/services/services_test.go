// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ============================================================================
// HTTPServerService
// ============================================================================

type fakeServer struct {
	mu        sync.Mutex
	listenErr error
	stop      chan struct{}
	shutdowns int
}

func newFakeServer(listenErr error) *fakeServer {
	return &fakeServer{listenErr: listenErr, stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdowns++
	close(f.stop)
	return nil
}

func TestHTTPServerServiceGracefulStop(t *testing.T) {
	srv := newFakeServer(nil)
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	if srv.shutdowns != 1 {
		t.Errorf("shutdowns = %d, want 1", srv.shutdowns)
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	svc := NewHTTPServerService(newFakeServer(errors.New("address in use")), 0)
	err := svc.Serve(context.Background())
	if err == nil || svc.shutdownTimeout != 10*time.Second {
		t.Errorf("Serve() = %v, timeout = %v", err, svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

// ============================================================================
// BadgerGCService
// ============================================================================

type fakeGC struct {
	calls   atomic.Int32
	results []error
	closed  bool
}

func (f *fakeGC) RunValueLogGC(float64) error {
	n := int(f.calls.Add(1)) - 1
	if n < len(f.results) {
		return f.results[n]
	}
	return badger.ErrNoRewrite
}

func (f *fakeGC) IsClosed() bool { return f.closed }

func TestBadgerGCCollectLoopsUntilNoRewrite(t *testing.T) {
	gc := &fakeGC{results: []error{nil, nil, badger.ErrNoRewrite}}
	NewBadgerGCService(gc, time.Minute).collect()
	if got := gc.calls.Load(); got != 3 {
		t.Errorf("GC calls = %d, want 3", got)
	}
}

func TestBadgerGCSkipsClosedDB(t *testing.T) {
	gc := &fakeGC{closed: true}
	NewBadgerGCService(gc, time.Minute).collect()
	if got := gc.calls.Load(); got != 0 {
		t.Errorf("GC calls = %d, want 0", got)
	}
}

func TestBadgerGCServeTicks(t *testing.T) {
	gc := &fakeGC{}
	svc := NewBadgerGCService(gc, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v", err)
	}
	if gc.calls.Load() == 0 {
		t.Error("GC never ran")
	}
}

func TestBadgerGCWithRealDB(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	defer func() { _ = db.Close() }()

	NewBadgerGCService(db, time.Minute).collect()
}
