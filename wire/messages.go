package wire

import (
	"bytes"
	"fmt"
	"io"
)

// --- 9P2000 core messages -------------------------------------------------

// Tversion negotiates the protocol version and message size for a
// connection, and must be the first message sent. Uses NOTAG.
type Tversion msg

func (m Tversion) Tag() uint16     { return msg(m).Tag() }
func (m Tversion) Len() int64      { return msg(m).Len() }
func (m Tversion) nbytes() int64   { return msg(m).nbytes() }
func (m Tversion) Msize() int64    { return int64(guint32(m[7:11])) }
func (m Tversion) Version() []byte { return msg(m).nthField(11, 0) }
func (m Tversion) String() string {
	return fmt.Sprintf("Tversion msize=%d version=%q", m.Msize(), m.Version())
}

type Rversion msg

func (m Rversion) Tag() uint16     { return msg(m).Tag() }
func (m Rversion) Len() int64      { return msg(m).Len() }
func (m Rversion) nbytes() int64   { return msg(m).nbytes() }
func (m Rversion) Msize() int64    { return int64(guint32(m[7:11])) }
func (m Rversion) Version() []byte { return msg(m).nthField(11, 0) }
func (m Rversion) String() string {
	return fmt.Sprintf("Rversion msize=%d version=%q", m.Msize(), m.Version())
}

// Tauth begins authentication for a user on a connection.
type Tauth msg

func (m Tauth) Tag() uint16   { return msg(m).Tag() }
func (m Tauth) Len() int64    { return msg(m).Len() }
func (m Tauth) nbytes() int64 { return msg(m).nbytes() }
func (m Tauth) Afid() uint32  { return guint32(m[7:11]) }
func (m Tauth) Uname() []byte { return msg(m).nthField(11, 0) }
func (m Tauth) Aname() []byte { return msg(m).nthField(11, 1) }
func (m Tauth) String() string {
	return fmt.Sprintf("Tauth afid=%x uname=%q aname=%q", m.Afid(), m.Uname(), m.Aname())
}

type Rauth msg

func (m Rauth) Tag() uint16   { return msg(m).Tag() }
func (m Rauth) Len() int64    { return msg(m).Len() }
func (m Rauth) nbytes() int64 { return msg(m).nbytes() }
func (m Rauth) Aqid() Qid     { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rauth) String() string { return fmt.Sprintf("Rauth aqid=%s", m.Aqid()) }

// Tattach introduces a user to the server and associates fid with the
// root of the requested file tree.
type Tattach msg

func (m Tattach) Tag() uint16   { return msg(m).Tag() }
func (m Tattach) Len() int64    { return msg(m).Len() }
func (m Tattach) nbytes() int64 { return msg(m).nbytes() }
func (m Tattach) Fid() uint32   { return guint32(m[7:11]) }
func (m Tattach) Afid() uint32  { return guint32(m[11:15]) }
func (m Tattach) Uname() []byte { return msg(m).nthField(15, 0) }
func (m Tattach) Aname() []byte { return msg(m).nthField(15, 1) }
func (m Tattach) String() string {
	return fmt.Sprintf("Tattach fid=%x afid=%x uname=%q aname=%q", m.Fid(), m.Afid(), m.Uname(), m.Aname())
}

type Rattach msg

func (m Rattach) Tag() uint16    { return msg(m).Tag() }
func (m Rattach) Len() int64     { return msg(m).Len() }
func (m Rattach) nbytes() int64  { return msg(m).nbytes() }
func (m Rattach) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rattach) String() string { return fmt.Sprintf("Rattach qid=%s", m.Qid()) }

// Rerror is the legacy (non-Linux) error reply, carrying a string.
type Rerror msg

func (m Rerror) Tag() uint16    { return msg(m).Tag() }
func (m Rerror) Len() int64     { return msg(m).Len() }
func (m Rerror) nbytes() int64  { return msg(m).nbytes() }
func (m Rerror) Ename() []byte  { return msg(m).nthField(7, 0) }
func (m Rerror) Error() string  { return string(m.Ename()) }
func (m Rerror) String() string { return fmt.Sprintf("Rerror ename=%q", m.Ename()) }

// Tflush cancels a pending request, identified by Oldtag.
type Tflush msg

func (m Tflush) Tag() uint16    { return msg(m).Tag() }
func (m Tflush) Len() int64     { return msg(m).Len() }
func (m Tflush) nbytes() int64  { return msg(m).nbytes() }
func (m Tflush) Oldtag() uint16 { return guint16(m[7:9]) }
func (m Tflush) String() string { return fmt.Sprintf("Tflush oldtag=%x", m.Oldtag()) }

type Rflush msg

func (m Rflush) Tag() uint16    { return msg(m).Tag() }
func (m Rflush) Len() int64     { return msg(m).Len() }
func (m Rflush) nbytes() int64  { return msg(m).nbytes() }
func (m Rflush) String() string { return "Rflush" }

// Twalk descends path elements from fid, associating newfid with the
// final element on success.
type Twalk msg

func (m Twalk) Tag() uint16        { return msg(m).Tag() }
func (m Twalk) Len() int64         { return msg(m).Len() }
func (m Twalk) nbytes() int64      { return msg(m).nbytes() }
func (m Twalk) Fid() uint32        { return guint32(m[7:11]) }
func (m Twalk) Newfid() uint32     { return guint32(m[11:15]) }
func (m Twalk) Nwname() int        { return int(guint16(m[15:17])) }
func (m Twalk) Wname(n int) []byte { return msg(m).nthField(17, n) }
func (m Twalk) String() string {
	names := make([][]byte, m.Nwname())
	for i := range names {
		names[i] = m.Wname(i)
	}
	return fmt.Sprintf("Twalk fid=%x newfid=%x wname=%q", m.Fid(), m.Newfid(), bytes.Join(names, []byte("/")))
}

type Rwalk msg

func (m Rwalk) Tag() uint16   { return msg(m).Tag() }
func (m Rwalk) Len() int64    { return msg(m).Len() }
func (m Rwalk) nbytes() int64 { return msg(m).nbytes() }
func (m Rwalk) Nwqid() int    { return int(guint16(m[7:9])) }
func (m Rwalk) Wqid(n int) Qid {
	var q Qid
	copy(q[:], m[9+n*13:9+n*13+13])
	return q
}
func (m Rwalk) String() string { return fmt.Sprintf("Rwalk nwqid=%d", m.Nwqid()) }

// Topen prepares fid, previously established by Twalk or Tattach, for
// I/O.
type Topen msg

func (m Topen) Tag() uint16    { return msg(m).Tag() }
func (m Topen) Len() int64     { return msg(m).Len() }
func (m Topen) nbytes() int64  { return msg(m).nbytes() }
func (m Topen) Fid() uint32    { return guint32(m[7:11]) }
func (m Topen) Mode() uint8    { return m[11] }
func (m Topen) String() string { return fmt.Sprintf("Topen fid=%x mode=%#o", m.Fid(), m.Mode()) }

type Ropen msg

func (m Ropen) Tag() uint16    { return msg(m).Tag() }
func (m Ropen) Len() int64     { return msg(m).Len() }
func (m Ropen) nbytes() int64  { return msg(m).nbytes() }
func (m Ropen) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Ropen) IOunit() uint32 { return guint32(m[20:24]) }
func (m Ropen) String() string { return fmt.Sprintf("Ropen qid=%s iounit=%d", m.Qid(), m.IOunit()) }

// Tcreate creates name in the directory associated with fid.
type Tcreate msg

func (m Tcreate) Tag() uint16   { return msg(m).Tag() }
func (m Tcreate) Len() int64    { return msg(m).Len() }
func (m Tcreate) nbytes() int64 { return msg(m).nbytes() }
func (m Tcreate) Fid() uint32   { return guint32(m[7:11]) }
func (m Tcreate) Name() []byte  { return msg(m).nthField(11, 0) }
func (m Tcreate) Perm() uint32 {
	off := 11 + 2 + len(m.Name())
	return guint32(m[off : off+4])
}
func (m Tcreate) Mode() uint8 {
	off := 11 + 2 + len(m.Name()) + 4
	return m[off]
}
func (m Tcreate) String() string {
	return fmt.Sprintf("Tcreate fid=%x name=%q perm=%o mode=%#o", m.Fid(), m.Name(), m.Perm(), m.Mode())
}

type Rcreate msg

func (m Rcreate) Tag() uint16    { return msg(m).Tag() }
func (m Rcreate) Len() int64     { return msg(m).Len() }
func (m Rcreate) nbytes() int64  { return msg(m).nbytes() }
func (m Rcreate) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rcreate) IOunit() uint32 { return guint32(m[20:24]) }
func (m Rcreate) String() string { return fmt.Sprintf("Rcreate qid=%s", m.Qid()) }

// Tread requests Count bytes starting at Offset within fid.
type Tread msg

func (m Tread) Tag() uint16    { return msg(m).Tag() }
func (m Tread) Len() int64     { return msg(m).Len() }
func (m Tread) nbytes() int64  { return msg(m).nbytes() }
func (m Tread) Fid() uint32    { return guint32(m[7:11]) }
func (m Tread) Offset() uint64 { return guint64(m[11:19]) }
func (m Tread) Count() uint32  { return guint32(m[19:23]) }
func (m Tread) String() string {
	return fmt.Sprintf("Tread fid=%x offset=%d count=%d", m.Fid(), m.Offset(), m.Count())
}

// Rread streams back the bytes requested by a Tread.
type Rread struct {
	io.ReadCloser
	hdr msg
}

func (m Rread) Tag() uint16    { return m.hdr.Tag() }
func (m Rread) Len() int64     { return m.hdr.Len() }
func (m Rread) nbytes() int64  { return m.hdr.nbytes() }
func (m Rread) Count() uint32  { return guint32(m.hdr[7:11]) }
func (m Rread) String() string { return fmt.Sprintf("Rread count=%d", m.Count()) }

// Twrite streams Count bytes starting at Offset to fid.
type Twrite struct {
	io.ReadCloser
	hdr msg
}

func (m Twrite) Tag() uint16    { return m.hdr.Tag() }
func (m Twrite) Len() int64     { return m.hdr.Len() }
func (m Twrite) nbytes() int64  { return m.hdr.nbytes() }
func (m Twrite) Fid() uint32    { return guint32(m.hdr[7:11]) }
func (m Twrite) Offset() uint64 { return guint64(m.hdr[11:19]) }
func (m Twrite) Count() uint32  { return guint32(m.hdr[19:23]) }
func (m Twrite) String() string {
	return fmt.Sprintf("Twrite fid=%x offset=%d count=%d", m.Fid(), m.Offset(), m.Count())
}

type Rwrite msg

func (m Rwrite) Tag() uint16    { return msg(m).Tag() }
func (m Rwrite) Len() int64     { return msg(m).Len() }
func (m Rwrite) nbytes() int64  { return msg(m).nbytes() }
func (m Rwrite) Count() uint32  { return guint32(m[7:11]) }
func (m Rwrite) String() string { return fmt.Sprintf("Rwrite count=%d", m.Count()) }

type Tclunk msg

func (m Tclunk) Tag() uint16    { return msg(m).Tag() }
func (m Tclunk) Len() int64     { return msg(m).Len() }
func (m Tclunk) nbytes() int64  { return msg(m).nbytes() }
func (m Tclunk) Fid() uint32    { return guint32(m[7:11]) }
func (m Tclunk) String() string { return fmt.Sprintf("Tclunk fid=%x", m.Fid()) }

type Rclunk msg

func (m Rclunk) Tag() uint16    { return msg(m).Tag() }
func (m Rclunk) Len() int64     { return msg(m).Len() }
func (m Rclunk) nbytes() int64  { return msg(m).nbytes() }
func (m Rclunk) String() string { return "Rclunk" }

type Tremove msg

func (m Tremove) Tag() uint16    { return msg(m).Tag() }
func (m Tremove) Len() int64     { return msg(m).Len() }
func (m Tremove) nbytes() int64  { return msg(m).nbytes() }
func (m Tremove) Fid() uint32    { return guint32(m[7:11]) }
func (m Tremove) String() string { return fmt.Sprintf("Tremove fid=%x", m.Fid()) }

type Rremove msg

func (m Rremove) Tag() uint16    { return msg(m).Tag() }
func (m Rremove) Len() int64     { return msg(m).Len() }
func (m Rremove) nbytes() int64  { return msg(m).nbytes() }
func (m Rremove) String() string { return "Rremove" }

type Tstat msg

func (m Tstat) Tag() uint16    { return msg(m).Tag() }
func (m Tstat) Len() int64     { return msg(m).Len() }
func (m Tstat) nbytes() int64  { return msg(m).nbytes() }
func (m Tstat) Fid() uint32    { return guint32(m[7:11]) }
func (m Tstat) String() string { return fmt.Sprintf("Tstat fid=%x", m.Fid()) }

type Rstat msg

func (m Rstat) Tag() uint16    { return msg(m).Tag() }
func (m Rstat) Len() int64     { return msg(m).Len() }
func (m Rstat) nbytes() int64  { return msg(m).nbytes() }
func (m Rstat) Stat() Stat     { return Stat(msg(m).nthField(7, 0)) }
func (m Rstat) String() string { return "Rstat " + m.Stat().String() }

type Twstat msg

func (m Twstat) Tag() uint16    { return msg(m).Tag() }
func (m Twstat) Len() int64     { return msg(m).Len() }
func (m Twstat) nbytes() int64  { return msg(m).nbytes() }
func (m Twstat) Fid() uint32    { return guint32(m[7:11]) }
func (m Twstat) Stat() Stat     { return Stat(msg(m).nthField(11, 0)) }
func (m Twstat) String() string { return fmt.Sprintf("Twstat fid=%x stat=%s", m.Fid(), m.Stat()) }

type Rwstat msg

func (m Rwstat) Tag() uint16    { return msg(m).Tag() }
func (m Rwstat) Len() int64     { return msg(m).Len() }
func (m Rwstat) nbytes() int64  { return msg(m).nbytes() }
func (m Rwstat) String() string { return "Rwstat" }
