package wire

import (
	"fmt"
	"io"

	"github.com/ninefs/ninepd/wire/sliding"
)

// Decoder reads a stream of 9P2000.L messages from an io.Reader, one
// at a time. Returned messages alias the Decoder's internal buffer
// and are only valid until the next call to Next; callers that need a
// Msg to outlive that call must copy whatever fields they need first.
//
// Twrite/Rread payloads are exposed as io.ReadClosers instead of
// being buffered whole, so a Decoder can stream arbitrarily large
// reads and writes through a bounded window. The payload must be
// fully read, or the ReadCloser Closed to discard the remainder,
// before the next call to Next.
type Decoder struct {
	win   sliding.Window
	msize int64
	err   error
	body  io.ReadCloser // unread streaming payload from the previous message, if any
}

// NewDecoder returns a Decoder that reads from r, rejecting any
// message whose size exceeds msize. A msize <= 0 uses DefaultBufSize.
func NewDecoder(r io.Reader, msize int64) *Decoder {
	if msize <= 0 {
		msize = DefaultBufSize
	}
	bufsize := msize
	if bufsize < MinBufSize {
		bufsize = MinBufSize
	}
	return &Decoder{
		win:   sliding.Window{R: r, B: make([]byte, bufsize)},
		msize: msize,
	}
}

// Err returns the first error encountered by the Decoder. Once Err
// returns non-nil, the Decoder must not be used again.
func (d *Decoder) Err() error { return d.err }

// drainBody discards whatever is left of a streaming payload from the
// previous message, so the window is free to hold the next one.
func (d *Decoder) drainBody() error {
	if d.body == nil {
		return nil
	}
	err := d.body.Close()
	d.body = nil
	return err
}

// badMessage consumes and discards the rest of an n-byte message of
// which have bytes were already fetched, so the stream resynchronizes
// on the next message boundary, then returns a BadMessage carrying err.
func (d *Decoder) badMessage(tag uint16, n int64, have int64, err error) (Msg, error) {
	if extra := n - have; extra > 0 {
		if _, ioerr := io.CopyN(io.Discard, d.win.Reader(extra), extra); ioerr != nil {
			d.err = ioerr
			return nil, ioerr
		}
	}
	return BadMessage{Err: err, tag: tag, n: n}, nil
}

// Next advances the Decoder to the next message on the stream and
// returns it. It returns io.EOF once the underlying reader is cleanly
// exhausted between messages. A message that fails validation is
// returned as a BadMessage rather than an error, so a server can reply
// with Rlerror and keep serving the connection; Err only reports I/O
// failures and unrecoverable framing errors.
func (d *Decoder) Next() (Msg, error) {
	if d.err != nil {
		return nil, d.err
	}
	if err := d.drainBody(); err != nil {
		d.err = err
		return nil, err
	}
	d.win.Drop(d.win.Len())

	hdr, err := d.win.Fetch(7)
	if err != nil {
		if err == io.EOF && len(hdr) == 0 {
			return nil, io.EOF
		}
		d.err = io.ErrUnexpectedEOF
		return nil, d.err
	}

	size := int64(guint32(hdr[0:4]))
	mtype := hdr[4]
	tag := guint16(hdr[5:7])

	if size < minMsgSize {
		d.err = errTooSmall
		return nil, d.err
	}
	if size > maxMsgSize || size > d.msize {
		d.err = ErrMaxSize
		return nil, d.err
	}
	if !validMsgType(mtype) {
		return d.badMessage(tag, size-4, 3, errInvalidMsgType)
	}

	switch mtype {
	case msgTwrite:
		m, err := d.decodeTwrite(hdr, size, tag)
		if tw, ok := m.(Twrite); ok {
			d.body = tw.ReadCloser
		}
		return m, err
	case msgRread:
		m, err := d.decodeRread(hdr, size, tag)
		if rr, ok := m.(Rread); ok {
			d.body = rr.ReadCloser
		}
		return m, err
	}

	rest, err := d.win.Fetch(int(size) - 7)
	if err != nil && err != io.EOF {
		d.err = err
		return nil, err
	}
	if int64(len(rest)) < size-7 {
		d.err = io.ErrUnexpectedEOF
		return nil, d.err
	}

	m := msg(d.win.Bytes())
	if err := verifySizeAndType(m); err != nil {
		return BadMessage{Err: err, tag: tag, n: size - 4}, nil
	}

	parse := msgParseLUT[mtype]
	if parse == nil {
		return BadMessage{Err: errInvalidMsgType, tag: tag, n: size - 4}, nil
	}
	out, err := parse(m)
	if err != nil {
		return BadMessage{Err: err, tag: tag, n: size - 4}, nil
	}
	return out, nil
}

// decodeTwrite reads the fixed fid/offset/count fields of a Twrite and
// leaves the write payload itself unread, exposed as an io.ReadCloser.
func (d *Decoder) decodeTwrite(hdr []byte, size int64, tag uint16) (Msg, error) {
	if size-4 < int64(minSizeLUT[msgTwrite]) {
		return d.badMessage(tag, size-4, 3, errTooSmall)
	}
	fixed, err := d.win.Fetch(16) // fid[4] offset[8] count[4]
	if err != nil {
		d.err = io.ErrUnexpectedEOF
		return nil, d.err
	}
	fixed = fixed[len(fixed)-16:] // Fetch returns the whole window, header included
	count := guint32(fixed[12:16])
	if int64(count)+23 != size {
		return d.badMessage(tag, size-4, 19, errOverSize)
	}
	h := make(msg, 23)
	copy(h, hdr)
	copy(h[7:], fixed)
	return Twrite{ReadCloser: payloadReader{d.win.Reader(int64(count))}, hdr: h}, nil
}

// decodeRread reads the fixed count field of an Rread and leaves the
// returned data unread, exposed as an io.ReadCloser.
func (d *Decoder) decodeRread(hdr []byte, size int64, tag uint16) (Msg, error) {
	if size-4 < int64(minSizeLUT[msgRread]) {
		return d.badMessage(tag, size-4, 3, errTooSmall)
	}
	fixed, err := d.win.Fetch(4) // count[4]
	if err != nil {
		d.err = io.ErrUnexpectedEOF
		return nil, d.err
	}
	fixed = fixed[len(fixed)-4:] // Fetch returns the whole window, header included
	count := guint32(fixed)
	if int64(count)+11 != size {
		return d.badMessage(tag, size-4, 7, errOverSize)
	}
	h := make(msg, 11)
	copy(h, hdr)
	copy(h[7:], fixed)
	return Rread{ReadCloser: payloadReader{d.win.Reader(int64(count))}, hdr: h}, nil
}

// payloadReader wraps the sliding.Window's bounded io.Reader so the
// Decoder can track and drain it as a single io.ReadCloser.
type payloadReader struct {
	io.Reader
}

func (p payloadReader) Close() error {
	_, err := io.Copy(io.Discard, p.Reader)
	return err
}

func (d *Decoder) String() string {
	return fmt.Sprintf("Decoder(msize=%d)", d.msize)
}
