//go:build linux

package auth

import (
	"context"
	"errors"
	"net"

	"golang.org/x/sys/unix"

	"github.com/ninefs/ninepd/usercache"
)

// ErrNotUnixSocket is returned by SocketPeerID when the connection
// being authenticated isn't backed by a Unix domain socket.
var ErrNotUnixSocket = errors.New("auth: underlying connection is not a unix socket")

// SocketPeerID returns an Auth that authenticates a client using the
// kernel's record of the connecting process' credentials. The
// underlying connection must be a *net.UnixConn; authentication fails
// if the peer's uid doesn't match the uid users resolves uname to.
func SocketPeerID(users usercache.Cache) Auth {
	return socketPeerID{users}
}

type socketPeerID struct {
	users usercache.Cache
}

func (s socketPeerID) Authenticate(_ context.Context, conn net.Conn, uname, _ string) error {
	uid, err := peerUid(conn)
	if err != nil {
		return err
	}
	user, err := s.users.Uname2User(uname)
	if err != nil {
		return err
	}
	if uid == user.Uid {
		return nil
	}
	return ErrAuthFailure
}

// peerUid returns the uid of the process on the other end of a Unix
// domain socket connection.
func peerUid(conn net.Conn) (uint32, error) {
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		return 0, ErrNotUnixSocket
	}
	sc, err := uc.SyscallConn()
	if err != nil {
		return 0, err
	}

	var cred *unix.Ucred
	var sockErr error
	err = sc.Control(func(fd uintptr) {
		cred, sockErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil {
		return 0, err
	}
	if sockErr != nil {
		return 0, sockErr
	}
	return cred.Uid, nil
}
