// Package ninepd implements a 9P2000.L server: connection lifecycle,
// version negotiation, fid tracking, request dispatch to a pluggable
// Backend, and flush/cancel handling.
package ninepd

import (
	"context"
	"sync"
	"time"

	"aqwari.net/retry"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ninefs/ninepd/auth"
	"github.com/ninefs/ninepd/internal/util"
	"github.com/ninefs/ninepd/transport"
	"github.com/ninefs/ninepd/usercache"
	"github.com/ninefs/ninepd/wire"
	"github.com/ninefs/ninepd/workerpool"
)

// Logger is satisfied by *log.Logger; nil disables logging.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Server owns the set of live connections, the shared worker pool,
// and the root Backend new connections attach to.
type Server struct {
	// Backend services Tattach and, through its optional
	// sub-interfaces, every other request.
	Backend Backend

	// Users resolves uname/uid pairs presented in Tattach. If nil,
	// a usercache.Simple is used.
	Users usercache.Cache

	// Auth, if set, is consulted on every Tattach before the Backend
	// is invoked; a non-nil error is reported to the client as
	// EPERM and the attach is refused. If nil, every attach is
	// allowed through to the Backend unconditionally.
	Auth auth.Auth

	// MaxMsize caps the protocol message size a client may
	// negotiate; 0 uses wire.DefaultBufSize.
	MaxMsize uint32

	// Workers is the number of goroutines draining the shared
	// request queue; 0 uses workerpool.DefaultSize.
	Workers int

	// Logger receives diagnostic output; nil disables it.
	Logger Logger

	// Trace, if set, is called with every decoded message before
	// dispatch - useful for request tracing/debugging.
	Trace func(wire.Msg)

	// Registerer, if set, registers this server's request counters
	// and histograms with a Prometheus registry.
	Registerer prometheus.Registerer

	metricsOnce sync.Once
	metrics     *serverMetrics

	mu      sync.Mutex
	conns   map[*Conn]struct{}
	pool    *workerpool.Pool
	poolRef int
}

func (s *Server) logf(format string, v ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, v...)
	}
}

func (s *Server) users() usercache.Cache {
	if s.Users != nil {
		return s.Users
	}
	return usercache.NewSimple()
}

func (s *Server) workers() *workerpool.Pool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool == nil {
		s.pool = workerpool.New(s.Workers, s.Logger)
	}
	return s.pool
}

func (s *Server) trackConn(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		s.conns = make(map[*Conn]struct{})
	}
	s.conns[c] = struct{}{}
}

func (s *Server) untrackConn(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
}

// Serve accepts connections from l until it returns a non-temporary
// error, serving each on its own goroutine. A temporary Accept error
// is retried with an exponential backoff.
func (s *Server) Serve(ctx context.Context, l transport.Listener) error {
	backoff := retry.Exponential(time.Millisecond).Max(time.Second)
	try := 0

	for {
		rwc, err := l.Accept()
		if err != nil {
			if util.IsTempErr(err) {
				try++
				wait := backoff(try)
				s.logf("ninepd: accept error: %v; retrying in %v", err, wait)
				select {
				case <-time.After(wait):
					continue
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return err
		}
		try = 0
		c := newConn(s, rwc)
		s.trackConn(c)
		go func() {
			defer s.untrackConn(c)
			c.serve(ctx)
		}()
	}
}

// Shutdown stops the shared worker pool: each worker finishes its
// current job, jobs still queued are dropped, and Shutdown waits for
// the workers to exit. It does not
// close listeners or connections itself; callers normally cancel the
// context passed to Serve and also close their Listener.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	pool := s.pool
	s.mu.Unlock()
	if pool == nil {
		return nil
	}
	return pool.Stop()
}
