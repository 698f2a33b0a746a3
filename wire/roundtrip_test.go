package wire

import (
	"bytes"
	"io"
	"testing"
)

func roundtrip(t *testing.T, write func(*Encoder) error) Msg {
	t.Helper()
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := write(enc); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	dec := NewDecoder(&buf, DefaultBufSize)
	m, err := dec.Next()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bad, ok := m.(BadMessage); ok {
		t.Fatalf("decoded BadMessage: %v", bad.Err)
	}
	return m
}

func TestRoundtripTversion(t *testing.T) {
	m := roundtrip(t, func(enc *Encoder) error {
		return enc.Tversion(1<<20, "9P2000.L")
	})
	v, ok := m.(Tversion)
	if !ok {
		t.Fatalf("got %T, want Tversion", m)
	}
	if v.Msize() != 1<<20 {
		t.Errorf("Msize() = %d, want %d", v.Msize(), 1<<20)
	}
	if string(v.Version()) != "9P2000.L" {
		t.Errorf("Version() = %q", v.Version())
	}
	if v.Tag() != NOTAG {
		t.Errorf("Tag() = %x, want NOTAG", v.Tag())
	}
}

func TestRoundtripTwalk(t *testing.T) {
	m := roundtrip(t, func(enc *Encoder) error {
		return enc.Twalk(4, 1, 2, "usr", "local", "bin")
	})
	w, ok := m.(Twalk)
	if !ok {
		t.Fatalf("got %T, want Twalk", m)
	}
	if w.Nwname() != 3 {
		t.Fatalf("Nwname() = %d, want 3", w.Nwname())
	}
	want := []string{"usr", "local", "bin"}
	for i, name := range want {
		if got := string(w.Wname(i)); got != name {
			t.Errorf("Wname(%d) = %q, want %q", i, got, name)
		}
	}
}

func TestRoundtripRwalk(t *testing.T) {
	q1 := NewQid(QTDIR, 1, 100)
	q2 := NewQid(QTFILE, 1, 101)
	m := roundtrip(t, func(enc *Encoder) error {
		return enc.Rwalk(4, q1, q2)
	})
	w, ok := m.(Rwalk)
	if !ok {
		t.Fatalf("got %T, want Rwalk", m)
	}
	if w.Nwqid() != 2 {
		t.Fatalf("Nwqid() = %d, want 2", w.Nwqid())
	}
	if w.Wqid(0) != q1 || w.Wqid(1) != q2 {
		t.Errorf("Wqid mismatch: %s %s", w.Wqid(0), w.Wqid(1))
	}
}

func TestRoundtripTgetattr(t *testing.T) {
	m := roundtrip(t, func(enc *Encoder) error {
		return enc.Tgetattr(9, 3, GetattrBasic)
	})
	g, ok := m.(Tgetattr)
	if !ok {
		t.Fatalf("got %T, want Tgetattr", m)
	}
	if g.Fid() != 3 || g.RequestMask() != GetattrBasic {
		t.Errorf("fid=%d mask=%#x", g.Fid(), g.RequestMask())
	}
}

func TestRoundtripRgetattr(t *testing.T) {
	q := NewQid(QTFILE, 7, 55)
	m := roundtrip(t, func(enc *Encoder) error {
		return enc.Rgetattr(9, Attr{
			Valid: GetattrBasic,
			Qid:   q,
			Mode:  0644,
			Uid:   1000,
			Gid:   1000,
			Size:  4096,
		})
	})
	g, ok := m.(Rgetattr)
	if !ok {
		t.Fatalf("got %T, want Rgetattr", m)
	}
	if g.Qid() != q {
		t.Errorf("Qid() = %s, want %s", g.Qid(), q)
	}
	if g.Mode() != 0644 || g.Size() != 4096 {
		t.Errorf("mode=%o size=%d", g.Mode(), g.Size())
	}
}

func TestRoundtripTlcreate(t *testing.T) {
	m := roundtrip(t, func(enc *Encoder) error {
		return enc.Tlcreate(2, 5, "newfile", 0, 0644, 1000)
	})
	c, ok := m.(Tlcreate)
	if !ok {
		t.Fatalf("got %T, want Tlcreate", m)
	}
	if string(c.Name()) != "newfile" || c.Mode() != 0644 || c.Gid() != 1000 {
		t.Errorf("name=%q mode=%o gid=%d", c.Name(), c.Mode(), c.Gid())
	}
}

func TestRoundtripTwriteAndTread(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	payload := []byte("hello, 9P2000.L")
	if _, err := enc.Twrite(1, 4, 0, payload); err != nil {
		t.Fatalf("Twrite: %v", err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	dec := NewDecoder(&buf, DefaultBufSize)
	m, err := dec.Next()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	tw, ok := m.(Twrite)
	if !ok {
		t.Fatalf("got %T, want Twrite", m)
	}
	if tw.Fid() != 4 || tw.Count() != uint32(len(payload)) {
		t.Errorf("fid=%d count=%d", tw.Fid(), tw.Count())
	}
	got, err := io.ReadAll(tw)
	if err != nil {
		t.Fatalf("read payload: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}

	_, err = dec.Next()
	if err != io.EOF {
		t.Errorf("Next() after last message = %v, want io.EOF", err)
	}

	m = roundtrip(t, func(enc *Encoder) error {
		return enc.Tread(2, 4, 10, 100)
	})
	tr, ok := m.(Tread)
	if !ok {
		t.Fatalf("got %T, want Tread", m)
	}
	if tr.Fid() != 4 || tr.Offset() != 10 || tr.Count() != 100 {
		t.Errorf("fid=%d offset=%d count=%d", tr.Fid(), tr.Offset(), tr.Count())
	}
}

func TestDecoderRejectsOversizeMessage(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Tversion(1<<12, "9P2000.L"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	enc.Flush()

	dec := NewDecoder(&buf, 8) // smaller than the message just written
	_, err := dec.Next()
	if err != ErrMaxSize {
		t.Fatalf("Next() = %v, want ErrMaxSize", err)
	}
}

func TestDecoderFlagsInvalidMessageType(t *testing.T) {
	var raw [8]byte
	buint32(raw[0:4], 8) // size
	raw[4] = 0xFE        // not a valid message type
	buint16(raw[5:7], 1) // tag
	raw[7] = 0

	dec := NewDecoder(bytes.NewReader(raw[:]), DefaultBufSize)
	m, err := dec.Next()
	if err != nil {
		t.Fatalf("Next() = %v, want a BadMessage, not an error", err)
	}
	bad, ok := m.(BadMessage)
	if !ok {
		t.Fatalf("got %T, want BadMessage", m)
	}
	if bad.Tag() != 1 {
		t.Errorf("Tag() = %d, want 1", bad.Tag())
	}
}
