package ninepd

import (
	"context"
	"testing"
	"time"

	"github.com/ninefs/ninepd/transport"
	"github.com/ninefs/ninepd/wire"
)

// memFile is the only file a memBackend serves: a fixed-content file
// readable by any attaching user.
type memFile struct {
	content []byte
}

type memBackend struct {
	qid  wire.Qid
	file *memFile
}

func (b *memBackend) Attach(ctx context.Context, uname, aname string, uid uint32) (any, wire.Qid, error) {
	return b.file, b.qid, nil
}

func (b *memBackend) Open(ctx context.Context, aux any, mode uint32) (wire.Qid, uint32, error) {
	return b.qid, uint32(len(b.file.content)), nil
}

func (b *memBackend) ReadAt(ctx context.Context, aux any, p []byte, offset int64) (int, error) {
	f := aux.(*memFile)
	if offset >= int64(len(f.content)) {
		return 0, nil
	}
	n := copy(p, f.content[offset:])
	return n, nil
}

func dialTestServer(t *testing.T, srv *Server) (*transport.PipeListener, func()) {
	t.Helper()
	l := transport.NewPipeListener()
	ctx, cancel := context.WithCancel(context.Background())
	go srv.Serve(ctx, l)
	return l, func() { cancel(); l.Close() }
}

func TestServeVersionAttachOpenRead(t *testing.T) {
	content := []byte("hello from ninepd")
	backend := &memBackend{qid: wire.NewQid(wire.QTFILE, 0, 1), file: &memFile{content: content}}
	srv := &Server{Backend: backend}

	l, stop := dialTestServer(t, srv)
	defer stop()

	conn, err := l.Dial()
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	enc := wire.NewEncoder(conn)
	dec := wire.NewDecoder(conn, wire.DefaultBufSize)

	if err := enc.Tversion(1<<20, "9P2000.L"); err != nil {
		t.Fatalf("Tversion: %v", err)
	}
	enc.Flush()
	m, err := dec.Next()
	if err != nil {
		t.Fatalf("decode Rversion: %v", err)
	}
	rv, ok := m.(wire.Rversion)
	if !ok {
		t.Fatalf("got %T, want Rversion", m)
	}
	if string(rv.Version()) != "9P2000.L" {
		t.Fatalf("Version() = %q", rv.Version())
	}

	if err := enc.Tattach(1, 0, wire.NOFID, "glenda", ""); err != nil {
		t.Fatalf("Tattach: %v", err)
	}
	enc.Flush()
	m, err = dec.Next()
	if err != nil {
		t.Fatalf("decode Rattach: %v", err)
	}
	if _, ok := m.(wire.Rattach); !ok {
		t.Fatalf("got %T, want Rattach", m)
	}

	if err := enc.Tlopen(2, 0, 0); err != nil {
		t.Fatalf("Tlopen: %v", err)
	}
	enc.Flush()
	m, err = dec.Next()
	if err != nil {
		t.Fatalf("decode Rlopen: %v", err)
	}
	if _, ok := m.(wire.Rlopen); !ok {
		t.Fatalf("got %T, want Rlopen", m)
	}

	if err := enc.Tread(3, 0, 0, uint32(len(content))); err != nil {
		t.Fatalf("Tread: %v", err)
	}
	enc.Flush()
	m, err = dec.Next()
	if err != nil {
		t.Fatalf("decode Rread: %v", err)
	}
	rr, ok := m.(wire.Rread)
	if !ok {
		t.Fatalf("got %T, want Rread", m)
	}
	if rr.Count() != uint32(len(content)) {
		t.Fatalf("Rread count = %d, want %d", rr.Count(), len(content))
	}
}

func TestServeRejectsRequestBeforeVersion(t *testing.T) {
	backend := &memBackend{qid: wire.NewQid(wire.QTFILE, 0, 1), file: &memFile{}}
	srv := &Server{Backend: backend}
	l, stop := dialTestServer(t, srv)
	defer stop()

	conn, err := l.Dial()
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	enc := wire.NewEncoder(conn)
	dec := wire.NewDecoder(conn, wire.DefaultBufSize)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := enc.Tattach(1, 0, wire.NOFID, "glenda", ""); err != nil {
		t.Fatalf("Tattach: %v", err)
	}
	enc.Flush()

	m, err := dec.Next()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := m.(wire.Rlerror); !ok {
		t.Fatalf("got %T, want Rlerror", m)
	}
}
