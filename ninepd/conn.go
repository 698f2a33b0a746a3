package ninepd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ninefs/ninepd/fidpool"
	"github.com/ninefs/ninepd/wire"
)

// Conn is one server-side connection: its own fid table, its own
// decoder reading off rwc, and a single shared encoder writing back
// to it (writes are serialized with a mutex since the worker pool may
// answer several requests on this connection concurrently).
type Conn struct {
	srv *Server
	rwc io.ReadWriteCloser

	dec *wire.Decoder

	wmu sync.Mutex
	enc *wire.Encoder

	fids fidpool.Pool

	version string
	msize   uint32

	pendingMu sync.Mutex
	pending   map[uint16]*pendingReq
}

// pendingReq tracks one in-flight request so a Tflush targeting its
// tag can both cancel it and wait for it to actually finish before
// replying, guaranteeing the flushed request's own reply (if any) is
// never written to the wire after its Rflush.
type pendingReq struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func newConn(srv *Server, rwc io.ReadWriteCloser) *Conn {
	msize := srv.MaxMsize
	if msize == 0 {
		msize = wire.DefaultBufSize
	}
	return &Conn{
		srv:     srv,
		rwc:     rwc,
		dec:     wire.NewDecoder(rwc, int64(msize)),
		enc:     wire.NewEncoder(rwc),
		msize:   msize,
		pending: make(map[uint16]*pendingReq),
	}
}

func (c *Conn) close() {
	c.wmu.Lock()
	c.enc.Flush()
	c.wmu.Unlock()
	c.rwc.Close()
	c.fids.Destroy()
}

// serve runs the connection's read loop until the decoder hits EOF or
// an I/O error, then drains: existing requests are allowed to
// complete (via the server's shared worker pool; serve itself only
// stops reading and submitting new ones), the fid pool is destroyed,
// and the transport is closed.
func (c *Conn) serve(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.srv.logf("ninepd: panic serving connection: %v", r)
		}
		c.close()
	}()

	pool := c.srv.workers()
	var inflight sync.WaitGroup

	for {
		m, err := c.dec.Next()
		if err != nil {
			break
		}
		reqCtx, cancel := context.WithCancel(ctx)
		tag := m.Tag()
		done := c.trackTag(tag, cancel)

		inflight.Add(1)
		pool.Submit(func(_ context.Context) {
			defer inflight.Done()
			defer c.untrackTag(tag, done)
			// Recover here, inside the connection's own closure,
			// before workerpool's own recover sees it - a panic
			// must still produce a reply on this tag, or a client
			// waiting on it (this package's own client.Client.rpc
			// included) blocks forever.
			defer func() {
				if r := recover(); r != nil {
					c.srv.logf("ninepd: recovered panic dispatching tag %d: %v", tag, r)
					c.rerror(tag, fmt.Errorf("worker panic: %v", r))
				}
			}()
			c.dispatch(reqCtx, m)
		})
	}
	inflight.Wait()
}

func (c *Conn) trackTag(tag uint16, cancel context.CancelFunc) chan struct{} {
	done := make(chan struct{})
	c.pendingMu.Lock()
	c.pending[tag] = &pendingReq{cancel: cancel, done: done}
	c.pendingMu.Unlock()
	return done
}

func (c *Conn) untrackTag(tag uint16, done chan struct{}) {
	c.pendingMu.Lock()
	delete(c.pending, tag)
	c.pendingMu.Unlock()
	close(done)
}

// cancelTag cancels the context of the request tagged oldtag, if it is
// still in flight, and blocks until that request has actually
// returned from dispatch. This is what lets Tflush handling send
// Rflush only once the targeted request's own reply, if it sends one
// at all, has already gone out - never after.
func (c *Conn) cancelTag(oldtag uint16) bool {
	c.pendingMu.Lock()
	req, ok := c.pending[oldtag]
	c.pendingMu.Unlock()
	if !ok {
		return false
	}
	req.cancel()
	<-req.done
	return true
}

// respond serializes a single Encoder call under the connection's
// write lock, so concurrent workers answering different tags never
// interleave bytes on the wire.
func (c *Conn) respond(fn func(*wire.Encoder) error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := fn(c.enc); err != nil {
		c.srv.logf("ninepd: encode error: %v", err)
		return
	}
	c.enc.Flush()
}

func (c *Conn) rerror(tag uint16, err error) {
	ecode := errno(err)
	c.respond(func(enc *wire.Encoder) error { return enc.Rlerror(tag, ecode) })
}

func (c *Conn) dispatch(ctx context.Context, m wire.Msg) {
	if c.srv.Trace != nil {
		c.srv.Trace(m)
	}

	metrics := c.srv.metricsFor()
	var typeName string
	var start time.Time
	if metrics != nil {
		typeName = messageTypeName(m)
		start = time.Now()
		metrics.requestsTotal.WithLabelValues(typeName).Inc()
	}

	ok := c.dispatch1(ctx, m)

	if metrics != nil {
		metrics.requestDuration.WithLabelValues(typeName).Observe(time.Since(start).Seconds())
		if !ok {
			metrics.requestErrorsTotal.WithLabelValues(typeName).Inc()
		}
	}
}

// dispatch1 runs one request to completion and reports whether it
// succeeded (for metrics only; both paths always send a reply).
func (c *Conn) dispatch1(ctx context.Context, m wire.Msg) bool {
	if bad, isBad := m.(wire.BadMessage); isBad {
		c.rerror(bad.Tag(), bad.Err)
		return false
	}

	if v, isVersion := m.(wire.Tversion); isVersion {
		c.negotiateVersion(v)
		return true
	}
	if c.version == "" {
		c.rerror(m.Tag(), &wire.Error{Kind: wire.KindBadVersion, Msg: "Tversion required"})
		return false
	}

	switch m := m.(type) {
	case wire.Tflush:
		c.cancelTag(m.Oldtag())
		c.respond(func(enc *wire.Encoder) error { return enc.Rflush(m.Tag()) })
		return true
	case wire.Tattach:
		return c.handleAttach(ctx, m)
	case wire.Twalk:
		return c.handleWalk(ctx, m)
	case wire.Tlopen:
		return c.handleLopen(ctx, m)
	case wire.Tlcreate:
		return c.handleLcreate(ctx, m)
	case wire.Tmkdir:
		return c.handleMkdir(ctx, m)
	case wire.Tread:
		return c.handleRead(ctx, m)
	case wire.Twrite:
		return c.handleWrite(ctx, m)
	case wire.Treaddir:
		return c.handleReaddir(ctx, m)
	case wire.Tgetattr:
		return c.handleGetattr(ctx, m)
	case wire.Tsetattr:
		return c.handleSetattr(ctx, m)
	case wire.Trename:
		return c.handleRename(ctx, m)
	case wire.Trenameat:
		return c.handleRenameat(ctx, m)
	case wire.Tsymlink:
		return c.handleSymlink(ctx, m)
	case wire.Tlink:
		return c.handleLink(ctx, m)
	case wire.Tmknod:
		return c.handleMknod(ctx, m)
	case wire.Treadlink:
		return c.handleReadlink(ctx, m)
	case wire.Tstatfs:
		return c.handleStatfs(ctx, m)
	case wire.Tlock:
		return c.handleLock(ctx, m)
	case wire.Tgetlock:
		return c.handleGetlock(ctx, m)
	case wire.Txattrwalk:
		return c.handleXattrwalk(ctx, m)
	case wire.Txattrcreate:
		return c.handleXattrcreate(ctx, m)
	case wire.Tfsync:
		return c.handleFsync(ctx, m)
	case wire.Tunlinkat:
		return c.handleUnlinkat(ctx, m)
	case wire.Tremove:
		return c.handleRemove(ctx, m)
	case wire.Tclunk:
		return c.handleClunk(ctx, m)
	default:
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
}

func (c *Conn) negotiateVersion(v wire.Tversion) {
	// A Tversion, whether it is the initial handshake or a
	// mid-session re-negotiation, drops every fid the connection
	// currently holds.
	c.fids.Destroy()

	if !strings.HasPrefix(string(v.Version()), "9P2000.L") {
		c.respond(func(enc *wire.Encoder) error { return enc.Rversion(uint32(wire.MinBufSize), "unknown") })
		return
	}

	msize := uint32(v.Msize())
	if msize > c.msize || msize == 0 {
		msize = c.msize
	}
	if msize < wire.MinBufSize {
		c.respond(func(enc *wire.Encoder) error { return enc.Rversion(uint32(wire.MinBufSize), "unknown") })
		return
	}
	c.msize = msize
	c.version = "9P2000.L"
	c.respond(func(enc *wire.Encoder) error { return enc.Rversion(msize, "9P2000.L") })
}

func messageTypeName(m wire.Msg) string {
	switch m.(type) {
	case wire.Tversion:
		return "Tversion"
	case wire.Tattach:
		return "Tattach"
	case wire.Twalk:
		return "Twalk"
	case wire.Tlopen:
		return "Tlopen"
	case wire.Tlcreate:
		return "Tlcreate"
	case wire.Tread:
		return "Tread"
	case wire.Twrite:
		return "Twrite"
	case wire.Treaddir:
		return "Treaddir"
	case wire.Tgetattr:
		return "Tgetattr"
	case wire.Tsetattr:
		return "Tsetattr"
	case wire.Tclunk:
		return "Tclunk"
	case wire.Tremove:
		return "Tremove"
	case wire.Tunlinkat:
		return "Tunlinkat"
	case wire.Tflush:
		return "Tflush"
	default:
		return "other"
	}
}
