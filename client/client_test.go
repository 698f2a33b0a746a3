package client

import (
	"context"
	"testing"

	"github.com/ninefs/ninepd/ninepd"
	"github.com/ninefs/ninepd/transport"
	"github.com/ninefs/ninepd/wire"
)

type testFile struct {
	content []byte
}

type testBackend struct {
	qid  wire.Qid
	file *testFile
}

func (b *testBackend) Attach(ctx context.Context, uname, aname string, uid uint32) (any, wire.Qid, error) {
	return b.file, b.qid, nil
}

func (b *testBackend) Open(ctx context.Context, aux any, mode uint32) (wire.Qid, uint32, error) {
	return b.qid, uint32(len(b.file.content)), nil
}

func (b *testBackend) ReadAt(ctx context.Context, aux any, p []byte, offset int64) (int, error) {
	f := aux.(*testFile)
	if offset >= int64(len(f.content)) {
		return 0, nil
	}
	return copy(p, f.content[offset:]), nil
}

func (b *testBackend) WriteAt(ctx context.Context, aux any, p []byte, offset int64) (int, error) {
	f := aux.(*testFile)
	end := offset + int64(len(p))
	if end > int64(len(f.content)) {
		grown := make([]byte, end)
		copy(grown, f.content)
		f.content = grown
	}
	copy(f.content[offset:], p)
	return len(p), nil
}

func newTestServer(t *testing.T, backend ninepd.Backend) (*Client, func()) {
	t.Helper()
	l := transport.NewPipeListener()
	srv := &ninepd.Server{Backend: backend}
	ctx, cancel := context.WithCancel(context.Background())
	go srv.Serve(ctx, l)

	conn, err := l.Dial()
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	c, err := NewClient(context.Background(), conn, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, func() {
		c.Close()
		cancel()
		l.Close()
	}
}

func TestClientAttachOpenReadWrite(t *testing.T) {
	backend := &testBackend{
		qid:  wire.NewQid(wire.QTFILE, 0, 1),
		file: &testFile{content: []byte("hello client")},
	}
	c, stop := newTestServer(t, backend)
	defer stop()

	ctx := context.Background()
	root, err := c.Attach(ctx, "glenda", "")
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if err := root.Open(ctx, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}

	buf := make([]byte, len(backend.file.content))
	n, err := root.ReadAt(ctx, buf, 0)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buf[:n]) != "hello client" {
		t.Fatalf("ReadAt = %q", buf[:n])
	}

	n, err = root.WriteAt(ctx, []byte("bye!"), 0)
	if err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if n != 4 {
		t.Fatalf("WriteAt wrote %d bytes, want 4", n)
	}
	if string(backend.file.content[:4]) != "bye!" {
		t.Fatalf("backend content = %q", backend.file.content)
	}

	if err := root.Clunk(ctx); err != nil {
		t.Fatalf("Clunk: %v", err)
	}
}

func TestClientWalkIdentity(t *testing.T) {
	backend := &testBackend{qid: wire.NewQid(wire.QTFILE, 0, 7), file: &testFile{}}
	c, stop := newTestServer(t, backend)
	defer stop()

	ctx := context.Background()
	root, err := c.Attach(ctx, "glenda", "")
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	clone, err := root.Walk(ctx, "")
	if err != nil {
		t.Fatalf("Walk(\"\"): %v", err)
	}
	if clone.Qid() != root.Qid() {
		t.Fatalf("clone qid %v != root qid %v", clone.Qid(), root.Qid())
	}
}
