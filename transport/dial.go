package transport

import "net"

// Listen wraps net.Listen, returning a Listener that ninepd.Server and
// client.Dial can both use without importing net themselves. network
// is typically "tcp" or "unix".
func Listen(network, address string) (Listener, error) {
	return net.Listen(network, address)
}

// Dial wraps net.Dial. Callers that already hold a net.Conn (e.g. from
// tls.Dial, or a PipeListener) can use it directly as a Conn; Dial is
// a convenience for the common TCP/Unix case.
func Dial(network, address string) (Conn, error) {
	return net.Dial(network, address)
}

// NewPipeListener constructs a ready-to-use in-process Listener. Its
// Dial method creates a connected pair without touching the network
// stack, which is what package-level tests in ninepd and client use
// in place of a real socket.
func NewPipeListener() *PipeListener {
	l := &PipeListener{}
	l.init()
	return l
}
