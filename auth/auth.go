// Package auth provides pluggable attach-time authentication for
// ninepd servers. An Auth checks a Tattach's uname/aname against the
// connection it arrived on and returns a non-nil error to refuse the
// attach.
package auth

import (
	"context"
	"errors"
	"net"
)

// ErrAuthFailure is returned by the stock Auth implementations in
// this package when a client fails to authenticate.
var ErrAuthFailure = errors.New("auth: authentication failed")

// An Auth authenticates an attaching client. conn is the connection
// the Tattach arrived on, so implementations can inspect its
// transport-level identity (a peer's Unix credentials, a TLS
// certificate, and so on).
type Auth interface {
	Authenticate(ctx context.Context, conn net.Conn, uname, aname string) error
}

// Func adapts a plain function to the Auth interface.
type Func func(ctx context.Context, conn net.Conn, uname, aname string) error

func (f Func) Authenticate(ctx context.Context, conn net.Conn, uname, aname string) error {
	return f(ctx, conn, uname, aname)
}

type stackAll []Auth

// All combines multiple Auth values into a single Auth. Every stacked
// Auth is tried in order; authentication succeeds only if all of them
// do, stopping at the first failure.
func All(auth ...Auth) Auth {
	return stackAll(auth)
}

func (stack stackAll) Authenticate(ctx context.Context, conn net.Conn, uname, aname string) error {
	for _, a := range stack {
		if err := a.Authenticate(ctx, conn, uname, aname); err != nil {
			return err
		}
	}
	return nil
}

type stackAny []Auth

// Any combines multiple Auth values into a single Auth. Each stacked
// Auth is tried in order; authentication succeeds as soon as one of
// them does.
func Any(auth ...Auth) Auth {
	return stackAny(auth)
}

func (stack stackAny) Authenticate(ctx context.Context, conn net.Conn, uname, aname string) error {
	for _, a := range stack {
		if err := a.Authenticate(ctx, conn, uname, aname); err == nil {
			return nil
		}
	}
	return ErrAuthFailure
}

// Whitelist authenticates solely on the (uname, aname) pair, ignoring
// the transport entirely. It is mostly useful for tests and for
// combining with Any/All alongside a transport-based Auth.
func Whitelist(rules map[[2]string]bool) Auth {
	return allowMap(rules)
}

type allowMap map[[2]string]bool

func (m allowMap) Authenticate(_ context.Context, _ net.Conn, uname, aname string) error {
	if m[[2]string{uname, aname}] {
		return nil
	}
	return ErrAuthFailure
}
