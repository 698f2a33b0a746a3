package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ninefs/ninepd/wire"
)

// Fid is a client-held handle into a file tree: a connection-scoped
// numeric id plus the last qid the server reported for it.
type Fid struct {
	c   *Client
	num uint32
	qid wire.Qid

	iounit uint32
}

// Qid returns the fid's most recently reported qid.
func (f *Fid) Qid() wire.Qid { return f.qid }

// Num returns the fid's wire-level numeric id, for callers that need
// to log or trace it.
func (f *Fid) Num() uint32 { return f.num }

// Walk issues one or more Twalk RPCs to reach path relative to f,
// returning a new Fid. path is split on "/" and grouped into batches
// of at most wire.MaxWElem elements per the protocol limit; the walk
// always targets a freshly allocated fid so a partial failure midway
// through a multi-element path never mutates f itself.
func (f *Fid) Walk(ctx context.Context, path string) (*Fid, error) {
	names := splitPath(path)

	newnum, ok := f.c.fidAlloc().Get()
	if !ok {
		return nil, errors.New("client: fid pool exhausted")
	}

	cur := f.num
	qid := f.qid
	first := true

	for len(names) > 0 || first {
		batch := names
		if len(batch) > wire.MaxWElem {
			batch = batch[:wire.MaxWElem]
		}
		first = false

		m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
			return enc.Twalk(tag, cur, newnum, batch...)
		})
		if err != nil {
			f.c.fidAlloc().Free(newnum)
			return nil, err
		}
		rw := m.(wire.Rwalk)
		if rw.Nwqid() != len(batch) {
			f.c.clunkFid(newnum)
			return nil, fmt.Errorf("client: walk stopped after %d of %d elements", rw.Nwqid(), len(batch))
		}
		if rw.Nwqid() > 0 {
			qid = rw.Wqid(rw.Nwqid() - 1)
		}
		cur = newnum
		names = names[len(batch):]
	}

	return &Fid{c: f.c, num: newnum, qid: qid}, nil
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Open issues a Tlopen, transitioning the fid to an open state.
func (f *Fid) Open(ctx context.Context, flags uint32) error {
	m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Tlopen(tag, f.num, flags)
	})
	if err != nil {
		return err
	}
	ro := m.(wire.Rlopen)
	f.qid = ro.Qid()
	f.iounit = ro.IOunit()
	return nil
}

// Create issues a Tlcreate in the directory fid f, replacing f's
// identity with the newly created file (matching the protocol's
// "fid now represents the new file" semantics).
func (f *Fid) Create(ctx context.Context, name string, flags, mode, gid uint32) error {
	m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Tlcreate(tag, f.num, name, flags, mode, gid)
	})
	if err != nil {
		return err
	}
	rc := m.(wire.Rlcreate)
	f.qid = rc.Qid()
	f.iounit = rc.IOunit()
	return nil
}

// Mkdir issues a Tmkdir in the directory fid f. Unlike Create, f
// itself keeps referring to the parent directory; the new
// subdirectory's qid is returned.
func (f *Fid) Mkdir(ctx context.Context, name string, mode, gid uint32) (wire.Qid, error) {
	m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Tmkdir(tag, f.num, name, mode, gid)
	})
	if err != nil {
		return wire.Qid{}, err
	}
	return m.(wire.Rmkdir).Qid(), nil
}

func (f *Fid) ioUnit() uint32 {
	if f.iounit != 0 {
		return f.iounit
	}
	return f.c.msize - 24
}

// ReadAt reads len(p) bytes starting at offset, chunking across the
// negotiated iounit/msize as needed; it returns fewer bytes than
// len(p) only at EOF.
func (f *Fid) ReadAt(ctx context.Context, p []byte, offset int64) (int, error) {
	total := 0
	unit := int(f.ioUnit())
	for total < len(p) {
		want := len(p) - total
		if want > unit {
			want = unit
		}
		m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
			return enc.Tread(tag, f.num, uint64(offset)+uint64(total), uint32(want))
		})
		if err != nil {
			return total, err
		}
		rr := m.(wire.Rread)
		n, rerr := io.ReadFull(rr, p[total:total+int(rr.Count())])
		rr.Close()
		total += n
		if rerr != nil {
			return total, rerr
		}
		if rr.Count() == 0 {
			return total, io.EOF
		}
		if int(rr.Count()) < want {
			return total, nil
		}
	}
	return total, nil
}

// WriteAt writes p at offset, chunking across the negotiated
// iounit/msize as needed.
func (f *Fid) WriteAt(ctx context.Context, p []byte, offset int64) (int, error) {
	total := 0
	unit := int(f.ioUnit())
	for total < len(p) {
		end := total + unit
		if end > len(p) {
			end = len(p)
		}
		chunk := p[total:end]
		m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
			_, err := enc.Twrite(tag, f.num, uint64(offset)+uint64(total), chunk)
			return err
		})
		if err != nil {
			return total, err
		}
		n := int(m.(wire.Rwrite).Count())
		total += n
		if n < len(chunk) {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// Readdir reads raw directory entry bytes starting at offset. Use
// wire.DecodeDirent (or equivalent) to parse the returned buffer.
func (f *Fid) Readdir(ctx context.Context, offset uint64, count uint32) ([]byte, error) {
	m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Treaddir(tag, f.num, offset, count)
	})
	if err != nil {
		return nil, err
	}
	rr := m.(wire.Rreaddir)
	return rr.Data(), nil
}

// Getattr issues a Tgetattr for the fields selected by mask.
func (f *Fid) Getattr(ctx context.Context, mask uint64) (wire.Attr, error) {
	m, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Tgetattr(tag, f.num, mask)
	})
	if err != nil {
		return wire.Attr{}, err
	}
	ra := m.(wire.Rgetattr)
	return wire.Attr{
		Valid:       ra.Valid(),
		Qid:         ra.Qid(),
		Mode:        ra.Mode(),
		Uid:         ra.Uid(),
		Gid:         ra.Gid(),
		Nlink:       ra.Nlink(),
		Rdev:        ra.Rdev(),
		Size:        ra.Size(),
		Blksize:     ra.Blksize(),
		Blocks:      ra.Blocks(),
		Atime:       [2]uint64{ra.AtimeSec(), ra.AtimeNsec()},
		Mtime:       [2]uint64{ra.MtimeSec(), ra.MtimeNsec()},
		Ctime:       [2]uint64{ra.CtimeSec(), ra.CtimeNsec()},
		Btime:       [2]uint64{ra.BtimeSec(), ra.BtimeNsec()},
		Gen:         ra.Gen(),
		DataVersion: ra.DataVersion(),
	}, nil
}

// Remove clunks f after asking the server to unlink the file it
// names; f must not be used afterwards regardless of the outcome, per
// the protocol's "fid is clunked whether or not Remove succeeds".
func (f *Fid) Remove(ctx context.Context) error {
	_, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Tremove(tag, f.num)
	})
	f.c.fidAlloc().Free(f.num)
	return err
}

// Clunk releases the fid without affecting the file it names.
func (f *Fid) Clunk(ctx context.Context) error {
	_, err := f.c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error {
		return enc.Tclunk(tag, f.num)
	})
	f.c.fidAlloc().Free(f.num)
	return err
}

func (c *Client) clunkFid(num uint32) {
	ctx := context.Background()
	c.rpc(ctx, func(enc *wire.Encoder, tag uint16) error { return enc.Tclunk(tag, num) })
	c.fidAlloc().Free(num)
}
