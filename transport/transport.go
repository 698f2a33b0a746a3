// Package transport provides the byte-stream abstraction a 9P2000.L
// connection is built on, plus an in-process listener useful for
// tests that would otherwise need a real socket.
package transport

import (
	"io"
	"net"
)

// Conn is what ninepd.Server and client.Client require of a
// connection: a stream that can be read, written, and closed.
// *net.TCPConn, *net.UnixConn and net.Pipe's halves all satisfy it
// directly; for TLS or other wrapping, an already-wrapped net.Listener
// or net.Conn is used directly in place of Listen/Dial.
type Conn interface {
	io.ReadWriteCloser
}

// Listener is satisfied by net.Listener; it exists so that packages
// depending on transport don't need to import net directly.
type Listener interface {
	Accept() (net.Conn, error)
	Close() error
	Addr() net.Addr
}
