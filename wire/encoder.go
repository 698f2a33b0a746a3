package wire

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ninefs/ninepd/internal/util"
)

// Encoder writes 9P2000.L messages to an underlying io.Writer.
// Encoders are safe to use from multiple goroutines; each message is
// written atomically under a single lock so that concurrent replies
// from a server never interleave on the wire.
type Encoder struct {
	MaxSize int64 // negotiated msize, used to chunk Rread replies

	mu sync.Mutex
	bw *bufio.Writer
}

// NewEncoder creates an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{bw: bufio.NewWriterSize(w, MinBufSize)}
}

// Err returns the first error encountered writing to the underlying
// io.Writer.
func (enc *Encoder) Err() error {
	enc.mu.Lock()
	defer enc.mu.Unlock()
	_, err := enc.bw.Write(nil)
	return err
}

// Flush flushes any buffered data to the underlying io.Writer.
func (enc *Encoder) Flush() error {
	enc.mu.Lock()
	defer enc.mu.Unlock()
	return enc.bw.Flush()
}

func (enc *Encoder) writer() *util.ErrWriter {
	return &util.ErrWriter{W: enc.bw}
}

// --- 9P2000 core ----------------------------------------------------------

// Tversion writes a Tversion message, using NOTAG.
func (enc *Encoder) Tversion(msize uint32, version string) error {
	if len(version) > MaxVersionLen {
		version = version[:MaxVersionLen]
	}
	size := uint32(minSizeLUT[msgTversion]) + uint32(len(version))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTversion, NOTAG, msize)
	pstring(w, version)
	return w.Err
}

// Rversion writes an Rversion message, using NOTAG.
func (enc *Encoder) Rversion(msize uint32, version string) error {
	if len(version) > MaxVersionLen {
		version = version[:MaxVersionLen]
	}
	size := uint32(minSizeLUT[msgRversion]) + uint32(len(version))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRversion, NOTAG, msize)
	pstring(w, version)
	return w.Err
}

// Tauth writes a Tauth message.
func (enc *Encoder) Tauth(tag uint16, afid uint32, uname, aname string) error {
	if len(uname) > MaxUidLen {
		uname = uname[:MaxUidLen]
	}
	if len(aname) > MaxAttachLen {
		aname = aname[:MaxAttachLen]
	}
	size := uint32(minSizeLUT[msgTauth]) + uint32(len(uname)+len(aname))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTauth, tag, afid)
	pstring(w, uname, aname)
	return w.Err
}

// Rauth writes an Rauth message.
func (enc *Encoder) Rauth(tag uint16, aqid Qid) error {
	size := uint32(minSizeLUT[msgRauth])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRauth, tag)
	pqid(w, aqid)
	return w.Err
}

// Tattach writes a Tattach message. Pass NOFID for afid if no
// authentication fid is being presented.
func (enc *Encoder) Tattach(tag uint16, fid, afid uint32, uname, aname string) error {
	if len(uname) > MaxUidLen {
		uname = uname[:MaxUidLen]
	}
	if len(aname) > MaxAttachLen {
		aname = aname[:MaxAttachLen]
	}
	size := uint32(minSizeLUT[msgTattach]) + uint32(len(uname)+len(aname))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTattach, tag, fid, afid)
	pstring(w, uname, aname)
	return w.Err
}

// Rattach writes an Rattach message.
func (enc *Encoder) Rattach(tag uint16, qid Qid) error {
	size := uint32(minSizeLUT[msgRattach])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRattach, tag)
	pqid(w, qid)
	return w.Err
}

// Rerror writes the legacy string-valued error reply. Prefer Rlerror
// on a 9P2000.L connection.
func (enc *Encoder) Rerror(tag uint16, errfmt string, v ...interface{}) error {
	ename := errfmt
	if len(v) > 0 {
		ename = fmt.Sprintf(errfmt, v...)
	}
	if len(ename) > MaxErrorLen {
		ename = ename[:MaxErrorLen]
	}
	size := uint32(minSizeLUT[msgRerror]) + uint32(len(ename))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRerror, tag)
	pstring(w, ename)
	return w.Err
}

// Tflush writes a Tflush message, cancelling the request with oldtag.
func (enc *Encoder) Tflush(tag, oldtag uint16) error {
	size := uint32(minSizeLUT[msgTflush])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTflush, tag)
	puint16(w, oldtag)
	return w.Err
}

// Rflush writes an Rflush message.
func (enc *Encoder) Rflush(tag uint16) error {
	size := uint32(minSizeLUT[msgRflush])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRflush, tag)
	return w.Err
}

// Twalk writes a Twalk message.
func (enc *Encoder) Twalk(tag uint16, fid, newfid uint32, wname ...string) error {
	if len(wname) > MaxWElem {
		return errMaxWElem
	}
	size := uint32(minSizeLUT[msgTwalk])
	for _, v := range wname {
		if len(v) > MaxFilenameLen {
			return errLongFilename
		}
		size += 2 + uint32(len(v))
	}

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTwalk, tag, fid, newfid)
	puint16(w, uint16(len(wname)))
	pstring(w, wname...)
	return w.Err
}

// Rwalk writes an Rwalk message.
func (enc *Encoder) Rwalk(tag uint16, wqid ...Qid) error {
	if len(wqid) > MaxWElem {
		return errMaxWElem
	}
	size := uint32(minSizeLUT[msgRwalk]) + 13*uint32(len(wqid))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRwalk, tag)
	puint16(w, uint16(len(wqid)))
	pqid(w, wqid...)
	return w.Err
}

// Topen writes a Topen message.
func (enc *Encoder) Topen(tag uint16, fid uint32, mode uint8) error {
	size := uint32(minSizeLUT[msgTopen])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTopen, tag, fid)
	puint8(w, mode)
	return w.Err
}

// Ropen writes an Ropen message.
func (enc *Encoder) Ropen(tag uint16, qid Qid, iounit uint32) error {
	size := uint32(minSizeLUT[msgRopen])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRopen, tag)
	pqid(w, qid)
	puint32(w, iounit)
	return w.Err
}

// Tcreate writes a Tcreate message.
func (enc *Encoder) Tcreate(tag uint16, fid uint32, name string, perm uint32, mode uint8) error {
	if len(name) > MaxFilenameLen {
		name = name[:MaxFilenameLen]
	}
	size := uint32(minSizeLUT[msgTcreate]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTcreate, tag, fid)
	pstring(w, name)
	puint32(w, perm)
	puint8(w, mode)
	return w.Err
}

// Rcreate writes an Rcreate message.
func (enc *Encoder) Rcreate(tag uint16, qid Qid, iounit uint32) error {
	size := uint32(minSizeLUT[msgRcreate])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRcreate, tag)
	pqid(w, qid)
	puint32(w, iounit)
	return w.Err
}

// Tread writes a Tread message.
func (enc *Encoder) Tread(tag uint16, fid uint32, offset uint64, count uint32) error {
	size := uint32(minSizeLUT[msgTread])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTread, tag, fid)
	puint64(w, offset)
	puint32(w, count)
	return w.Err
}

// Rread writes an Rread message. If len(data) exceeds the Encoder's
// MaxSize, it is broken up into multiple Rread messages: callers
// expecting a single reply should instead call Rread once per
// protocol-level response and let the receiving Decoder treat the
// payload as a stream.
func (enc *Encoder) Rread(tag uint16, data []byte) (n int, err error) {
	msize := enc.MaxSize
	if msize < MinBufSize {
		msize = MinBufSize
	}
	chunkmax := msize - int64(minSizeLUT[msgRread])

	for first := true; first || len(data) > 0; {
		first = false
		chunk := data
		if int64(len(chunk)) > chunkmax {
			chunk = data[:chunkmax]
		}
		size := uint32(minSizeLUT[msgRread]) + uint32(len(chunk))

		enc.mu.Lock()
		w := enc.writer()
		pheader(w, size, msgRread, tag, uint32(len(chunk)))
		w.Write(chunk)
		err = w.Err
		enc.mu.Unlock()

		if err != nil {
			break
		}
		n += len(chunk)
		data = data[len(chunk):]
	}
	return n, err
}

// Twrite writes a Twrite message.
func (enc *Encoder) Twrite(tag uint16, fid uint32, offset uint64, data []byte) (int, error) {
	if int64(math.MaxUint32)-int64(minSizeLUT[msgTwrite]) < int64(len(data)) {
		return 0, errTooBig
	}
	size := uint32(minSizeLUT[msgTwrite]) + uint32(len(data))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTwrite, tag, fid)
	puint64(w, offset)
	puint32(w, uint32(len(data)))
	w.Write(data)
	return len(data), w.Err
}

// Rwrite writes an Rwrite message.
func (enc *Encoder) Rwrite(tag uint16, count uint32) error {
	size := uint32(minSizeLUT[msgRwrite])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRwrite, tag, count)
	return w.Err
}

// Tclunk writes a Tclunk message.
func (enc *Encoder) Tclunk(tag uint16, fid uint32) error {
	size := uint32(minSizeLUT[msgTclunk])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTclunk, tag, fid)
	return w.Err
}

// Rclunk writes an Rclunk message.
func (enc *Encoder) Rclunk(tag uint16) error {
	size := uint32(minSizeLUT[msgRclunk])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRclunk, tag)
	return w.Err
}

// Tremove writes a Tremove message.
func (enc *Encoder) Tremove(tag uint16, fid uint32) error {
	size := uint32(minSizeLUT[msgTremove])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTremove, tag, fid)
	return w.Err
}

// Rremove writes an Rremove message.
func (enc *Encoder) Rremove(tag uint16) error {
	size := uint32(minSizeLUT[msgRremove])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRremove, tag)
	return w.Err
}

// Tstat writes a Tstat message.
func (enc *Encoder) Tstat(tag uint16, fid uint32) error {
	size := uint32(minSizeLUT[msgTstat])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTstat, tag, fid)
	return w.Err
}

// Rstat writes an Rstat message.
func (enc *Encoder) Rstat(tag uint16, stat Stat) error {
	if len(stat) > maxStatLen {
		return errLongStat
	}
	if len(stat) < minStatLen {
		return errShortStat
	}
	size := uint32(minSizeLUT[msgRstat]-minStatLen) + uint32(len(stat))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRstat, tag)
	pbyte(w, stat)
	return w.Err
}

// Twstat writes a Twstat message.
func (enc *Encoder) Twstat(tag uint16, fid uint32, stat Stat) error {
	if len(stat) > maxStatLen {
		return errLongStat
	}
	if len(stat) < minStatLen {
		return errShortStat
	}
	size := uint32(minSizeLUT[msgTwstat]) + uint32(len(stat))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTwstat, tag, fid)
	pbyte(w, stat)
	return w.Err
}

// Rwstat writes an Rwstat message.
func (enc *Encoder) Rwstat(tag uint16) error {
	size := uint32(minSizeLUT[msgRwstat])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRwstat, tag)
	return w.Err
}

// --- 9P2000.L extensions ----------------------------------------------------

// Rlerror writes the preferred errno-valued error reply.
func (enc *Encoder) Rlerror(tag uint16, ecode uint32) error {
	size := uint32(minSizeLUT[msgRlerror])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRlerror, tag, ecode)
	return w.Err
}

// Tstatfs writes a Tstatfs message.
func (enc *Encoder) Tstatfs(tag uint16, fid uint32) error {
	size := uint32(minSizeLUT[msgTstatfs])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTstatfs, tag, fid)
	return w.Err
}

// Rstatfs writes an Rstatfs message, mirroring struct statfs.
func (enc *Encoder) Rstatfs(tag uint16, typ, bsize uint32, blocks, bfree, bavail, files, ffree, fsid uint64, namelen uint32) error {
	size := uint32(minSizeLUT[msgRstatfs])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRstatfs, tag, typ, bsize)
	puint64(w, blocks, bfree, bavail, files, ffree, fsid)
	puint32(w, namelen)
	return w.Err
}

// Tlopen writes a Tlopen message.
func (enc *Encoder) Tlopen(tag uint16, fid, flags uint32) error {
	size := uint32(minSizeLUT[msgTlopen])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTlopen, tag, fid, flags)
	return w.Err
}

// Rlopen writes an Rlopen message.
func (enc *Encoder) Rlopen(tag uint16, qid Qid, iounit uint32) error {
	size := uint32(minSizeLUT[msgRlopen])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRlopen, tag)
	pqid(w, qid)
	puint32(w, iounit)
	return w.Err
}

// Tlcreate writes a Tlcreate message.
func (enc *Encoder) Tlcreate(tag uint16, fid uint32, name string, flags, mode, gid uint32) error {
	if len(name) > MaxFilenameLen {
		name = name[:MaxFilenameLen]
	}
	size := uint32(minSizeLUT[msgTlcreate]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTlcreate, tag, fid)
	pstring(w, name)
	puint32(w, flags, mode, gid)
	return w.Err
}

// Rlcreate writes an Rlcreate message.
func (enc *Encoder) Rlcreate(tag uint16, qid Qid, iounit uint32) error {
	size := uint32(minSizeLUT[msgRlcreate])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRlcreate, tag)
	pqid(w, qid)
	puint32(w, iounit)
	return w.Err
}

// Tsymlink writes a Tsymlink message.
func (enc *Encoder) Tsymlink(tag uint16, fid uint32, name, target string, gid uint32) error {
	size := uint32(minSizeLUT[msgTsymlink]) + uint32(len(name)+len(target))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTsymlink, tag, fid)
	pstring(w, name, target)
	puint32(w, gid)
	return w.Err
}

// Rsymlink writes an Rsymlink message.
func (enc *Encoder) Rsymlink(tag uint16, qid Qid) error {
	size := uint32(minSizeLUT[msgRsymlink])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRsymlink, tag)
	pqid(w, qid)
	return w.Err
}

// Tmknod writes a Tmknod message.
func (enc *Encoder) Tmknod(tag uint16, fid uint32, name string, mode, major, minor, gid uint32) error {
	size := uint32(minSizeLUT[msgTmknod]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTmknod, tag, fid)
	pstring(w, name)
	puint32(w, mode, major, minor, gid)
	return w.Err
}

// Rmknod writes an Rmknod message.
func (enc *Encoder) Rmknod(tag uint16, qid Qid) error {
	size := uint32(minSizeLUT[msgRmknod])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRmknod, tag)
	pqid(w, qid)
	return w.Err
}

// Trename writes a Trename message.
func (enc *Encoder) Trename(tag uint16, fid, dfid uint32, name string) error {
	size := uint32(minSizeLUT[msgTrename]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTrename, tag, fid, dfid)
	pstring(w, name)
	return w.Err
}

// Rrename writes an Rrename message.
func (enc *Encoder) Rrename(tag uint16) error {
	size := uint32(minSizeLUT[msgRrename])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRrename, tag)
	return w.Err
}

// Treadlink writes a Treadlink message.
func (enc *Encoder) Treadlink(tag uint16, fid uint32) error {
	size := uint32(minSizeLUT[msgTreadlink])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTreadlink, tag, fid)
	return w.Err
}

// Rreadlink writes an Rreadlink message.
func (enc *Encoder) Rreadlink(tag uint16, target string) error {
	size := uint32(minSizeLUT[msgRreadlink]) + uint32(len(target))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRreadlink, tag)
	pstring(w, target)
	return w.Err
}

// Tgetattr writes a Tgetattr message.
func (enc *Encoder) Tgetattr(tag uint16, fid uint32, mask uint64) error {
	size := uint32(minSizeLUT[msgTgetattr])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTgetattr, tag, fid)
	puint64(w, mask)
	return w.Err
}

// Attr bundles the stat(2)-equivalent fields of an Rgetattr reply.
type Attr struct {
	Valid                          uint64
	Qid                            Qid
	Mode, Uid, Gid                 uint32
	Nlink, Rdev, Size              uint64
	Blksize, Blocks                uint64
	Atime, Mtime, Ctime, Btime     [2]uint64 // sec, nsec
	Gen, DataVersion               uint64
}

// Rgetattr writes an Rgetattr message.
func (enc *Encoder) Rgetattr(tag uint16, a Attr) error {
	size := uint32(minSizeLUT[msgRgetattr])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRgetattr, tag)
	puint64(w, a.Valid)
	pqid(w, a.Qid)
	puint32(w, a.Mode, a.Uid, a.Gid)
	puint64(w, a.Nlink, a.Rdev, a.Size, a.Blksize, a.Blocks,
		a.Atime[0], a.Atime[1], a.Mtime[0], a.Mtime[1],
		a.Ctime[0], a.Ctime[1], a.Btime[0], a.Btime[1],
		a.Gen, a.DataVersion)
	return w.Err
}

// Tsetattr writes a Tsetattr message.
func (enc *Encoder) Tsetattr(tag uint16, fid uint32, valid, mode, uid, gid uint32, size uint64, atimeSec, atimeNsec, mtimeSec, mtimeNsec uint64) error {
	sz := uint32(minSizeLUT[msgTsetattr])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, sz, msgTsetattr, tag, fid)
	puint32(w, valid, mode, uid, gid)
	puint64(w, size, atimeSec, atimeNsec, mtimeSec, mtimeNsec)
	return w.Err
}

// Rsetattr writes an Rsetattr message.
func (enc *Encoder) Rsetattr(tag uint16) error {
	size := uint32(minSizeLUT[msgRsetattr])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRsetattr, tag)
	return w.Err
}

// Txattrwalk writes a Txattrwalk message.
func (enc *Encoder) Txattrwalk(tag uint16, fid, newfid uint32, name string) error {
	size := uint32(minSizeLUT[msgTxattrwalk]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTxattrwalk, tag, fid, newfid)
	pstring(w, name)
	return w.Err
}

// Rxattrwalk writes an Rxattrwalk message.
func (enc *Encoder) Rxattrwalk(tag uint16, size uint64) error {
	sz := uint32(minSizeLUT[msgRxattrwalk])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, sz, msgRxattrwalk, tag)
	puint64(w, size)
	return w.Err
}

// Txattrcreate writes a Txattrcreate message.
func (enc *Encoder) Txattrcreate(tag uint16, fid uint32, name string, size uint64, flag uint32) error {
	sz := uint32(minSizeLUT[msgTxattrcreate]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, sz, msgTxattrcreate, tag, fid)
	pstring(w, name)
	puint64(w, size)
	puint32(w, flag)
	return w.Err
}

// Rxattrcreate writes an Rxattrcreate message.
func (enc *Encoder) Rxattrcreate(tag uint16) error {
	size := uint32(minSizeLUT[msgRxattrcreate])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRxattrcreate, tag)
	return w.Err
}

// Treaddir writes a Treaddir message.
func (enc *Encoder) Treaddir(tag uint16, fid uint32, offset uint64, count uint32) error {
	size := uint32(minSizeLUT[msgTreaddir])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTreaddir, tag, fid)
	puint64(w, offset)
	puint32(w, count)
	return w.Err
}

// Rreaddir writes an Rreaddir message. data should already contain
// zero or more entries built with AppendDirent.
func (enc *Encoder) Rreaddir(tag uint16, data []byte) error {
	size := uint32(minSizeLUT[msgRreaddir]) + uint32(len(data))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRreaddir, tag, uint32(len(data)))
	w.Write(data)
	return w.Err
}

// Tfsync writes a Tfsync message.
func (enc *Encoder) Tfsync(tag uint16, fid, datasync uint32) error {
	size := uint32(minSizeLUT[msgTfsync])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTfsync, tag, fid, datasync)
	return w.Err
}

// Rfsync writes an Rfsync message.
func (enc *Encoder) Rfsync(tag uint16) error {
	size := uint32(minSizeLUT[msgRfsync])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRfsync, tag)
	return w.Err
}

// Tlock writes a Tlock message.
func (enc *Encoder) Tlock(tag uint16, fid uint32, ltype uint8, flags uint32, start, length uint64, procID uint32, clientID string) error {
	size := uint32(minSizeLUT[msgTlock]) + uint32(len(clientID))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTlock, tag, fid)
	puint8(w, ltype)
	puint32(w, flags)
	puint64(w, start, length)
	puint32(w, procID)
	pstring(w, clientID)
	return w.Err
}

// Rlock writes an Rlock message.
func (enc *Encoder) Rlock(tag uint16, status uint8) error {
	size := uint32(minSizeLUT[msgRlock])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRlock, tag)
	puint8(w, status)
	return w.Err
}

// Tgetlock writes a Tgetlock message.
func (enc *Encoder) Tgetlock(tag uint16, fid uint32, ltype uint8, start, length uint64, procID uint32, clientID string) error {
	size := uint32(minSizeLUT[msgTgetlock]) + uint32(len(clientID))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTgetlock, tag, fid)
	puint8(w, ltype)
	puint64(w, start, length)
	puint32(w, procID)
	pstring(w, clientID)
	return w.Err
}

// Rgetlock writes an Rgetlock message.
func (enc *Encoder) Rgetlock(tag uint16, ltype uint8, start, length uint64, procID uint32, clientID string) error {
	size := uint32(minSizeLUT[msgRgetlock]) + uint32(len(clientID))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRgetlock, tag)
	puint8(w, ltype)
	puint64(w, start, length)
	puint32(w, procID)
	pstring(w, clientID)
	return w.Err
}

// Tlink writes a Tlink message.
func (enc *Encoder) Tlink(tag uint16, dfid, fid uint32, name string) error {
	size := uint32(minSizeLUT[msgTlink]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTlink, tag, dfid, fid)
	pstring(w, name)
	return w.Err
}

// Rlink writes an Rlink message.
func (enc *Encoder) Rlink(tag uint16) error {
	size := uint32(minSizeLUT[msgRlink])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRlink, tag)
	return w.Err
}

// Tmkdir writes a Tmkdir message.
func (enc *Encoder) Tmkdir(tag uint16, fid uint32, name string, mode, gid uint32) error {
	size := uint32(minSizeLUT[msgTmkdir]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTmkdir, tag, fid)
	pstring(w, name)
	puint32(w, mode, gid)
	return w.Err
}

// Rmkdir writes an Rmkdir message.
func (enc *Encoder) Rmkdir(tag uint16, qid Qid) error {
	size := uint32(minSizeLUT[msgRmkdir])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRmkdir, tag)
	pqid(w, qid)
	return w.Err
}

// Trenameat writes a Trenameat message.
func (enc *Encoder) Trenameat(tag uint16, olddirfid uint32, oldname string, newdirfid uint32, newname string) error {
	size := uint32(minSizeLUT[msgTrenameat]) + uint32(len(oldname)+len(newname))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTrenameat, tag, olddirfid)
	pstring(w, oldname)
	puint32(w, newdirfid)
	pstring(w, newname)
	return w.Err
}

// Rrenameat writes an Rrenameat message.
func (enc *Encoder) Rrenameat(tag uint16) error {
	size := uint32(minSizeLUT[msgRrenameat])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRrenameat, tag)
	return w.Err
}

// Tunlinkat writes a Tunlinkat message.
func (enc *Encoder) Tunlinkat(tag uint16, dirfid uint32, name string, flags uint32) error {
	size := uint32(minSizeLUT[msgTunlinkat]) + uint32(len(name))

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgTunlinkat, tag, dirfid)
	pstring(w, name)
	puint32(w, flags)
	return w.Err
}

// Runlinkat writes a Runlinkat message.
func (enc *Encoder) Runlinkat(tag uint16) error {
	size := uint32(minSizeLUT[msgRunlinkat])

	enc.mu.Lock()
	defer enc.mu.Unlock()
	w := enc.writer()
	pheader(w, size, msgRunlinkat, tag)
	return w.Err
}
