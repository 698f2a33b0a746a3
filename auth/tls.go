package auth

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
)

// ErrNotTLS is returned by TLS-based Auth values when the connection
// being authenticated isn't a *tls.Conn.
var ErrNotTLS = errors.New("auth: not a TLS connection")

// TLSSubjectCN authenticates a client using the underlying TLS
// connection: the client must present a verified certificate whose
// subject common name matches the uname field of its Tattach. For
// more control over cert-based authentication, use TLSAuth directly.
var TLSSubjectCN = TLSAuth(checkSubjectCN)

// A TLSAuthFunc validates an attach request against the state of the
// underlying TLS connection.
type TLSAuthFunc func(uname, aname string, state tls.ConnectionState) error

// TLSAuth returns an Auth that authenticates a user based on the
// state of the underlying TLS connection. After confirming the
// connection is TLS, fn is called with its ConnectionState; fn must
// return nil to accept the attach.
func TLSAuth(fn TLSAuthFunc) Auth {
	return Func(func(_ context.Context, conn net.Conn, uname, aname string) error {
		tlsconn, ok := conn.(*tls.Conn)
		if !ok {
			return ErrNotTLS
		}
		return fn(uname, aname, tlsconn.ConnectionState())
	})
}

func checkSubjectCN(uname, _ string, state tls.ConnectionState) error {
	for _, chain := range state.VerifiedChains {
		for _, cert := range chain {
			if cert.Subject.CommonName == uname {
				return nil
			}
			return ErrAuthFailure
		}
	}
	return ErrAuthFailure
}
