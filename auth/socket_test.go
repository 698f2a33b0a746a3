//go:build linux

package auth

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/ninefs/ninepd/usercache"
)

func TestSocketPeerIDRejectsNonUnixConn(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	users := usercache.NewSimple()
	a := SocketPeerID(users)
	if err := a.Authenticate(context.Background(), client, "glenda", ""); err != ErrNotUnixSocket {
		t.Fatalf("got %v, want ErrNotUnixSocket", err)
	}
}

func TestSocketPeerIDAcceptsOwnUid(t *testing.T) {
	dir := t.TempDir()
	addr := filepath.Join(dir, "test.sock")

	l, err := net.Listen("unix", addr)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := l.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	client, err := net.Dial("unix", addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	server := <-accepted
	defer server.Close()

	uname := "self"
	users := usercache.NewPrivate()
	if err := users.AddUser(uname, uint32(os.Getuid())); err != nil {
		t.Fatalf("AddUser: %v", err)
	}

	a := SocketPeerID(users)
	if err := a.Authenticate(context.Background(), server, uname, ""); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
}
