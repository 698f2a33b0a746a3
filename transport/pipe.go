package transport

import (
	"errors"
	"net"
	"sync"
)

var errListenerClosed = errors.New("transport: listener closed")

// PipeListener is a net.Listener that does not require binding to a
// real socket. ninepd's own tests, and client/server integration
// tests that want to exercise a full Decoder/Encoder round trip
// without touching the filesystem or network stack, dial it directly
// instead of listening on 127.0.0.1.
type PipeListener struct {
	once     sync.Once
	incoming chan net.Conn
	shutdown chan struct{}
}

func (l *PipeListener) init() {
	l.once.Do(func() {
		l.incoming = make(chan net.Conn)
		l.shutdown = make(chan struct{})
	})
}

// Accept blocks until a client calls Dial, or the listener is closed.
func (l *PipeListener) Accept() (net.Conn, error) {
	l.init()
	select {
	case c := <-l.incoming:
		return c, nil
	case <-l.shutdown:
		return nil, errListenerClosed
	}
}

// Dial creates a new in-process connection and hands one end to a
// pending Accept call.
func (l *PipeListener) Dial() (net.Conn, error) {
	l.init()
	client, server := net.Pipe()
	select {
	case <-l.shutdown:
		client.Close()
		server.Close()
		return nil, errListenerClosed
	case l.incoming <- server:
		return client, nil
	}
}

// Close unblocks any pending Accept calls with an error. It is safe
// to call Close more than once.
func (l *PipeListener) Close() error {
	l.init()
	select {
	case <-l.shutdown:
	default:
		close(l.shutdown)
	}
	return nil
}

type pipeAddr struct{}

func (pipeAddr) Network() string { return "pipe" }
func (pipeAddr) String() string  { return "pipe" }

// Addr returns a placeholder net.Addr; a PipeListener has no real
// network address.
func (l *PipeListener) Addr() net.Addr {
	l.init()
	return pipeAddr{}
}
