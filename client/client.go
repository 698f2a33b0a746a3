// Package client implements the client side of 9P2000.L: tag and fid
// allocation, a reader goroutine that correlates replies to requests
// by tag, and high-level file operations built on top of the
// synchronous RPC primitive.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ninefs/ninepd/internal/pool"
	"github.com/ninefs/ninepd/transport"
	"github.com/ninefs/ninepd/wire"
)

// Logger is satisfied by *log.Logger; nil disables logging.
type Logger interface {
	Printf(format string, v ...interface{})
}

// ErrClosed is returned by any Client or Fid operation issued after
// the connection has been closed.
var ErrClosed = errors.New("client: connection closed")

// Client is one 9P2000.L connection. Requests may be issued
// concurrently from any number of goroutines; a single reader
// goroutine demultiplexes replies by tag and a write mutex
// serializes outgoing frames, mirroring the one-reader/one-writer
// architecture of the server's Conn.
type Client struct {
	rwc transport.Conn

	wmu sync.Mutex
	enc *wire.Encoder
	dec *wire.Decoder

	tags pool.TagPool
	fids *pool.FidPool

	mu       sync.Mutex
	pending  map[uint16]chan wire.Msg
	closed   chan struct{}
	closeErr error

	msize   uint32
	version string

	Logger Logger
}

// Dial connects to a 9P2000.L server over network/address (see
// transport.Dial) and negotiates a protocol version.
func Dial(ctx context.Context, network, address string, msize uint32) (*Client, error) {
	conn, err := transport.Dial(network, address)
	if err != nil {
		return nil, err
	}
	return newClient(ctx, conn, msize)
}

// NewClient wraps an already-established transport.Conn (for example
// one obtained from a transport.PipeListener in tests) and negotiates
// a protocol version over it.
func NewClient(ctx context.Context, conn transport.Conn, msize uint32) (*Client, error) {
	return newClient(ctx, conn, msize)
}

func newClient(ctx context.Context, conn transport.Conn, msize uint32) (*Client, error) {
	if msize == 0 {
		msize = wire.DefaultBufSize
	}
	c := &Client{
		rwc:     conn,
		enc:     wire.NewEncoder(conn),
		dec:     wire.NewDecoder(conn, int64(msize)),
		pending: make(map[uint16]chan wire.Msg),
		closed:  make(chan struct{}),
		msize:   msize,
	}
	go c.readLoop()
	if err := c.negotiateVersion(ctx, msize); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) logf(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}

// Msize returns the negotiated maximum message size.
func (c *Client) Msize() uint32 { return c.msize }

func (c *Client) negotiateVersion(ctx context.Context, msize uint32) error {
	ch := make(chan wire.Msg, 1)
	c.mu.Lock()
	c.pending[wire.NOTAG] = ch
	c.mu.Unlock()

	if err := c.send(func(enc *wire.Encoder) error { return enc.Tversion(msize, "9P2000.L") }); err != nil {
		return err
	}

	select {
	case m, ok := <-ch:
		if !ok {
			return c.closeErr
		}
		rv, isVersion := m.(wire.Rversion)
		if !isVersion {
			return fmt.Errorf("client: unexpected reply %T to Tversion", m)
		}
		if string(rv.Version()) != "9P2000.L" {
			return fmt.Errorf("client: server rejected version: %q", rv.Version())
		}
		c.msize = uint32(rv.Msize())
		c.version = "9P2000.L"
		return nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, wire.NOTAG)
		c.mu.Unlock()
		return ctx.Err()
	case <-c.closed:
		return c.closeErr
	}
}

func (c *Client) send(fn func(*wire.Encoder) error) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := fn(c.enc); err != nil {
		return err
	}
	return c.enc.Flush()
}

// rpc allocates a tag, sends one request built by send, and waits for
// its matching reply (or ctx cancellation, or connection closure).
// An Rlerror/Rerror reply is translated to a Go error.
func (c *Client) rpc(ctx context.Context, send func(enc *wire.Encoder, tag uint16) error) (wire.Msg, error) {
	tag, ok := c.tags.Get()
	if !ok {
		return nil, errors.New("client: tag pool exhausted")
	}

	ch := make(chan wire.Msg, 1)
	c.mu.Lock()
	c.pending[tag] = ch
	c.mu.Unlock()

	if err := c.send(func(enc *wire.Encoder) error { return send(enc, tag) }); err != nil {
		c.mu.Lock()
		delete(c.pending, tag)
		c.mu.Unlock()
		c.tags.Free(tag)
		return nil, err
	}

	select {
	case m, ok := <-ch:
		c.tags.Free(tag)
		if !ok {
			return nil, c.closeErr
		}
		switch r := m.(type) {
		case wire.Rlerror:
			return m, fmt.Errorf("client: errno %d", r.Ecode())
		case wire.Rerror:
			return m, errors.New(r.Error())
		}
		return m, nil
	case <-ctx.Done():
		// The original tag's pending slot is left in place; flush
		// takes ownership of freeing it once a reply (the real
		// answer, or the Rflush itself) arrives or the connection
		// closes, so a racing Get() can never hand the same tag
		// number to a second in-flight request.
		c.flush(tag)
		return nil, ctx.Err()
	case <-c.closed:
		c.tags.Free(tag)
		return nil, c.closeErr
	}
}

// flush sends a Tflush for an abandoned tag's request and waits for
// either the Rflush answering it or the connection to close before
// releasing the tag back to the pool. The server writes any reply to
// the abandoned request before that Rflush, so the tag is never reused
// while a reply for it may still be in flight.
func (c *Client) flush(oldtag uint16) {
	ftag, ok := c.tags.Get()
	if !ok {
		return
	}
	go func() {
		defer c.tags.Free(ftag)
		defer func() {
			c.mu.Lock()
			delete(c.pending, oldtag)
			c.mu.Unlock()
			c.tags.Free(oldtag)
		}()
		ch := make(chan wire.Msg, 1)
		c.mu.Lock()
		c.pending[ftag] = ch
		c.mu.Unlock()
		if err := c.send(func(enc *wire.Encoder) error { return enc.Tflush(ftag, oldtag) }); err != nil {
			return
		}
		select {
		case <-ch:
		case <-c.closed:
		}
	}()
}

func (c *Client) readLoop() {
	for {
		m, err := c.dec.Next()
		if err != nil {
			c.shutdown(err)
			return
		}
		tag := m.Tag()
		c.mu.Lock()
		ch, ok := c.pending[tag]
		delete(c.pending, tag)
		c.mu.Unlock()
		if ok {
			ch <- m
		} else {
			c.logf("client: reply for unknown tag %d: %v", tag, m)
		}
	}
}

func (c *Client) shutdown(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.closed:
		return
	default:
	}
	if err == nil {
		err = ErrClosed
	}
	c.closeErr = err
	close(c.closed)
	for tag, ch := range c.pending {
		delete(c.pending, tag)
		close(ch)
	}
}

// Close tears down the connection; any RPC in flight fails with
// ErrClosed (or the I/O error that triggered the teardown).
func (c *Client) Close() error {
	c.shutdown(ErrClosed)
	return c.rwc.Close()
}

// Attach performs a Tattach and returns the root Fid of the attached
// tree.
func (c *Client) Attach(ctx context.Context, uname, aname string) (*Fid, error) {
	fidnum, ok := c.fidAlloc().Get()
	if !ok {
		return nil, errors.New("client: fid pool exhausted")
	}
	m, err := c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Tattach(tag, fidnum, wire.NOFID, uname, aname)
	})
	if err != nil {
		c.fidAlloc().Free(fidnum)
		return nil, err
	}
	ra := m.(wire.Rattach)
	return &Fid{c: c, num: fidnum, qid: ra.Qid()}, nil
}

// fidAlloc returns the fid allocator for this client, lazily
// constructing it since pool.FidPool's zero value is ready to use but
// Client is addressed through a pointer after construction.
func (c *Client) fidAlloc() *pool.FidPool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fids == nil {
		c.fids = new(pool.FidPool)
	}
	return c.fids
}
