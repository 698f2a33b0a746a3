package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsAllJobs(t *testing.T) {
	p := New(4, nil)
	defer p.Stop()

	const n = 100
	var count int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		p.Submit(func(ctx context.Context) {
			atomic.AddInt64(&count, 1)
			wg.Done()
		})
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for jobs to run")
	}
	if atomic.LoadInt64(&count) != n {
		t.Errorf("count = %d, want %d", count, n)
	}
}

type recordingLogger struct {
	mu  sync.Mutex
	msg string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msg = format
}

func (l *recordingLogger) last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.msg
}

func TestPoolRecoversPanics(t *testing.T) {
	logger := &recordingLogger{}
	p := New(1, logger)
	defer p.Stop()

	done := make(chan struct{})
	p.Submit(func(ctx context.Context) {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("panicking job never returned control to the pool")
	}

	// submit a second job to prove the worker goroutine survived.
	ran := make(chan struct{})
	p.Submit(func(ctx context.Context) { close(ran) })
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive a panic")
	}

	if logger.last() == "" {
		t.Error("expected the panic to be logged")
	}
}

func TestPoolStopStopsWorkers(t *testing.T) {
	p := New(2, nil)
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
