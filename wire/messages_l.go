package wire

import "fmt"

// --- 9P2000.L extension messages -----------------------------------------

// Rlerror is the preferred error reply: a raw Linux errno, instead of
// the legacy Rerror string.
type Rlerror msg

func (m Rlerror) Tag() uint16    { return msg(m).Tag() }
func (m Rlerror) Len() int64     { return msg(m).Len() }
func (m Rlerror) nbytes() int64  { return msg(m).nbytes() }
func (m Rlerror) Ecode() uint32  { return guint32(m[7:11]) }
func (m Rlerror) Error() string  { return fmt.Sprintf("errno %d", m.Ecode()) }
func (m Rlerror) String() string { return fmt.Sprintf("Rlerror ecode=%d", m.Ecode()) }

type Tstatfs msg

func (m Tstatfs) Tag() uint16    { return msg(m).Tag() }
func (m Tstatfs) Len() int64     { return msg(m).Len() }
func (m Tstatfs) nbytes() int64  { return msg(m).nbytes() }
func (m Tstatfs) Fid() uint32    { return guint32(m[7:11]) }
func (m Tstatfs) String() string { return fmt.Sprintf("Tstatfs fid=%x", m.Fid()) }

type Rstatfs msg

func (m Rstatfs) Tag() uint16    { return msg(m).Tag() }
func (m Rstatfs) Len() int64     { return msg(m).Len() }
func (m Rstatfs) nbytes() int64  { return msg(m).nbytes() }
func (m Rstatfs) Type() uint32    { return guint32(m[7:11]) }
func (m Rstatfs) Bsize() uint32   { return guint32(m[11:15]) }
func (m Rstatfs) Blocks() uint64  { return guint64(m[15:23]) }
func (m Rstatfs) Bfree() uint64   { return guint64(m[23:31]) }
func (m Rstatfs) Bavail() uint64  { return guint64(m[31:39]) }
func (m Rstatfs) Files() uint64   { return guint64(m[39:47]) }
func (m Rstatfs) Ffree() uint64   { return guint64(m[47:55]) }
func (m Rstatfs) Fsid() uint64    { return guint64(m[55:63]) }
func (m Rstatfs) Namelen() uint32 { return guint32(m[63:67]) }
func (m Rstatfs) String() string  { return fmt.Sprintf("Rstatfs blocks=%d bfree=%d", m.Blocks(), m.Bfree()) }

type Tlopen msg

func (m Tlopen) Tag() uint16    { return msg(m).Tag() }
func (m Tlopen) Len() int64     { return msg(m).Len() }
func (m Tlopen) nbytes() int64  { return msg(m).nbytes() }
func (m Tlopen) Fid() uint32    { return guint32(m[7:11]) }
func (m Tlopen) Flags() uint32  { return guint32(m[11:15]) }
func (m Tlopen) String() string { return fmt.Sprintf("Tlopen fid=%x flags=%#o", m.Fid(), m.Flags()) }

type Rlopen msg

func (m Rlopen) Tag() uint16    { return msg(m).Tag() }
func (m Rlopen) Len() int64     { return msg(m).Len() }
func (m Rlopen) nbytes() int64  { return msg(m).nbytes() }
func (m Rlopen) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rlopen) IOunit() uint32 { return guint32(m[20:24]) }
func (m Rlopen) String() string { return fmt.Sprintf("Rlopen qid=%s", m.Qid()) }

type Tlcreate msg

func (m Tlcreate) Tag() uint16   { return msg(m).Tag() }
func (m Tlcreate) Len() int64    { return msg(m).Len() }
func (m Tlcreate) nbytes() int64 { return msg(m).nbytes() }
func (m Tlcreate) Fid() uint32   { return guint32(m[7:11]) }
func (m Tlcreate) Name() []byte  { return msg(m).nthField(11, 0) }
func (m Tlcreate) Flags() uint32 {
	off := 11 + 2 + len(m.Name())
	return guint32(m[off : off+4])
}
func (m Tlcreate) Mode() uint32 {
	off := 11 + 2 + len(m.Name()) + 4
	return guint32(m[off : off+4])
}
func (m Tlcreate) Gid() uint32 {
	off := 11 + 2 + len(m.Name()) + 8
	return guint32(m[off : off+4])
}
func (m Tlcreate) String() string {
	return fmt.Sprintf("Tlcreate fid=%x name=%q flags=%#o mode=%#o gid=%d", m.Fid(), m.Name(), m.Flags(), m.Mode(), m.Gid())
}

type Rlcreate msg

func (m Rlcreate) Tag() uint16    { return msg(m).Tag() }
func (m Rlcreate) Len() int64     { return msg(m).Len() }
func (m Rlcreate) nbytes() int64  { return msg(m).nbytes() }
func (m Rlcreate) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rlcreate) IOunit() uint32 { return guint32(m[20:24]) }
func (m Rlcreate) String() string { return fmt.Sprintf("Rlcreate qid=%s", m.Qid()) }

type Tsymlink msg

func (m Tsymlink) Tag() uint16    { return msg(m).Tag() }
func (m Tsymlink) Len() int64     { return msg(m).Len() }
func (m Tsymlink) nbytes() int64  { return msg(m).nbytes() }
func (m Tsymlink) Fid() uint32    { return guint32(m[7:11]) }
func (m Tsymlink) Name() []byte   { return msg(m).nthField(11, 0) }
func (m Tsymlink) Target() []byte { return msg(m).nthField(11, 1) }
func (m Tsymlink) Gid() uint32 {
	off := 11 + 2 + len(m.Name()) + 2 + len(m.Target())
	return guint32(m[off : off+4])
}
func (m Tsymlink) String() string {
	return fmt.Sprintf("Tsymlink fid=%x name=%q target=%q gid=%d", m.Fid(), m.Name(), m.Target(), m.Gid())
}

type Rsymlink msg

func (m Rsymlink) Tag() uint16    { return msg(m).Tag() }
func (m Rsymlink) Len() int64     { return msg(m).Len() }
func (m Rsymlink) nbytes() int64  { return msg(m).nbytes() }
func (m Rsymlink) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rsymlink) String() string { return fmt.Sprintf("Rsymlink qid=%s", m.Qid()) }

type Tmknod msg

func (m Tmknod) Tag() uint16   { return msg(m).Tag() }
func (m Tmknod) Len() int64    { return msg(m).Len() }
func (m Tmknod) nbytes() int64 { return msg(m).nbytes() }
func (m Tmknod) Fid() uint32   { return guint32(m[7:11]) }
func (m Tmknod) Name() []byte  { return msg(m).nthField(11, 0) }
func (m Tmknod) tail(n int) uint32 {
	off := 11 + 2 + len(m.Name()) + n*4
	return guint32(m[off : off+4])
}
func (m Tmknod) Mode() uint32  { return m.tail(0) }
func (m Tmknod) Major() uint32 { return m.tail(1) }
func (m Tmknod) Minor() uint32 { return m.tail(2) }
func (m Tmknod) Gid() uint32   { return m.tail(3) }
func (m Tmknod) String() string {
	return fmt.Sprintf("Tmknod fid=%x name=%q mode=%#o major=%d minor=%d gid=%d",
		m.Fid(), m.Name(), m.Mode(), m.Major(), m.Minor(), m.Gid())
}

type Rmknod msg

func (m Rmknod) Tag() uint16    { return msg(m).Tag() }
func (m Rmknod) Len() int64     { return msg(m).Len() }
func (m Rmknod) nbytes() int64  { return msg(m).nbytes() }
func (m Rmknod) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rmknod) String() string { return fmt.Sprintf("Rmknod qid=%s", m.Qid()) }

type Trename msg

func (m Trename) Tag() uint16    { return msg(m).Tag() }
func (m Trename) Len() int64     { return msg(m).Len() }
func (m Trename) nbytes() int64  { return msg(m).nbytes() }
func (m Trename) Fid() uint32    { return guint32(m[7:11]) }
func (m Trename) Dfid() uint32   { return guint32(m[11:15]) }
func (m Trename) Name() []byte   { return msg(m).nthField(15, 0) }
func (m Trename) String() string { return fmt.Sprintf("Trename fid=%x dfid=%x name=%q", m.Fid(), m.Dfid(), m.Name()) }

type Rrename msg

func (m Rrename) Tag() uint16    { return msg(m).Tag() }
func (m Rrename) Len() int64     { return msg(m).Len() }
func (m Rrename) nbytes() int64  { return msg(m).nbytes() }
func (m Rrename) String() string { return "Rrename" }

type Treadlink msg

func (m Treadlink) Tag() uint16    { return msg(m).Tag() }
func (m Treadlink) Len() int64     { return msg(m).Len() }
func (m Treadlink) nbytes() int64  { return msg(m).nbytes() }
func (m Treadlink) Fid() uint32    { return guint32(m[7:11]) }
func (m Treadlink) String() string { return fmt.Sprintf("Treadlink fid=%x", m.Fid()) }

type Rreadlink msg

func (m Rreadlink) Tag() uint16    { return msg(m).Tag() }
func (m Rreadlink) Len() int64     { return msg(m).Len() }
func (m Rreadlink) nbytes() int64  { return msg(m).nbytes() }
func (m Rreadlink) Target() []byte { return msg(m).nthField(7, 0) }
func (m Rreadlink) String() string { return fmt.Sprintf("Rreadlink target=%q", m.Target()) }

// Getattr request-mask bits, per Tgetattr/Rgetattr.
const (
	GetattrMode        uint64 = 0x0001
	GetattrNlink       uint64 = 0x0002
	GetattrUid         uint64 = 0x0004
	GetattrGid         uint64 = 0x0008
	GetattrRdev        uint64 = 0x0010
	GetattrAtime       uint64 = 0x0020
	GetattrMtime       uint64 = 0x0040
	GetattrCtime       uint64 = 0x0080
	GetattrIno         uint64 = 0x0100
	GetattrSize        uint64 = 0x0200
	GetattrBlocks      uint64 = 0x0400
	GetattrBtime       uint64 = 0x0800
	GetattrGen         uint64 = 0x1000
	GetattrDataVersion uint64 = 0x2000
	GetattrBasic       uint64 = 0x07ff
	GetattrAll         uint64 = 0x3fff
)

type Tgetattr msg

func (m Tgetattr) Tag() uint16        { return msg(m).Tag() }
func (m Tgetattr) Len() int64         { return msg(m).Len() }
func (m Tgetattr) nbytes() int64      { return msg(m).nbytes() }
func (m Tgetattr) Fid() uint32        { return guint32(m[7:11]) }
func (m Tgetattr) RequestMask() uint64 { return guint64(m[11:19]) }
func (m Tgetattr) String() string {
	return fmt.Sprintf("Tgetattr fid=%x mask=%#x", m.Fid(), m.RequestMask())
}

// Rgetattr carries the full stat(2)-equivalent attribute set; fields
// not named in Valid should be ignored by the caller.
type Rgetattr msg

func (m Rgetattr) Tag() uint16       { return msg(m).Tag() }
func (m Rgetattr) Len() int64        { return msg(m).Len() }
func (m Rgetattr) nbytes() int64     { return msg(m).nbytes() }
func (m Rgetattr) Valid() uint64     { return guint64(m[7:15]) }
func (m Rgetattr) Qid() Qid          { var q Qid; copy(q[:], m[15:28]); return q }
func (m Rgetattr) Mode() uint32      { return guint32(m[28:32]) }
func (m Rgetattr) Uid() uint32       { return guint32(m[32:36]) }
func (m Rgetattr) Gid() uint32       { return guint32(m[36:40]) }
func (m Rgetattr) Nlink() uint64     { return guint64(m[40:48]) }
func (m Rgetattr) Rdev() uint64      { return guint64(m[48:56]) }
func (m Rgetattr) Size() uint64      { return guint64(m[56:64]) }
func (m Rgetattr) Blksize() uint64   { return guint64(m[64:72]) }
func (m Rgetattr) Blocks() uint64    { return guint64(m[72:80]) }
func (m Rgetattr) AtimeSec() uint64  { return guint64(m[80:88]) }
func (m Rgetattr) AtimeNsec() uint64 { return guint64(m[88:96]) }
func (m Rgetattr) MtimeSec() uint64  { return guint64(m[96:104]) }
func (m Rgetattr) MtimeNsec() uint64 { return guint64(m[104:112]) }
func (m Rgetattr) CtimeSec() uint64  { return guint64(m[112:120]) }
func (m Rgetattr) CtimeNsec() uint64 { return guint64(m[120:128]) }
func (m Rgetattr) BtimeSec() uint64  { return guint64(m[128:136]) }
func (m Rgetattr) BtimeNsec() uint64 { return guint64(m[136:144]) }
func (m Rgetattr) Gen() uint64       { return guint64(m[144:152]) }
func (m Rgetattr) DataVersion() uint64 { return guint64(m[152:160]) }
func (m Rgetattr) String() string   { return fmt.Sprintf("Rgetattr qid=%s size=%d", m.Qid(), m.Size()) }

// Setattr valid-field bits, per Tsetattr.
const (
	SetattrMode     uint32 = 0x0001
	SetattrUid      uint32 = 0x0002
	SetattrGid      uint32 = 0x0004
	SetattrSize     uint32 = 0x0008
	SetattrAtime    uint32 = 0x0010
	SetattrMtime    uint32 = 0x0020
	SetattrCtime    uint32 = 0x0040
	SetattrAtimeSet uint32 = 0x0080
	SetattrMtimeSet uint32 = 0x0100
)

type Tsetattr msg

func (m Tsetattr) Tag() uint16        { return msg(m).Tag() }
func (m Tsetattr) Len() int64         { return msg(m).Len() }
func (m Tsetattr) nbytes() int64      { return msg(m).nbytes() }
func (m Tsetattr) Fid() uint32        { return guint32(m[7:11]) }
func (m Tsetattr) Valid() uint32      { return guint32(m[11:15]) }
func (m Tsetattr) Mode() uint32       { return guint32(m[15:19]) }
func (m Tsetattr) Uid() uint32        { return guint32(m[19:23]) }
func (m Tsetattr) Gid() uint32        { return guint32(m[23:27]) }
func (m Tsetattr) Size() uint64       { return guint64(m[27:35]) }
func (m Tsetattr) AtimeSec() uint64   { return guint64(m[35:43]) }
func (m Tsetattr) AtimeNsec() uint64  { return guint64(m[43:51]) }
func (m Tsetattr) MtimeSec() uint64   { return guint64(m[51:59]) }
func (m Tsetattr) MtimeNsec() uint64  { return guint64(m[59:67]) }
func (m Tsetattr) String() string    { return fmt.Sprintf("Tsetattr fid=%x valid=%#x", m.Fid(), m.Valid()) }

type Rsetattr msg

func (m Rsetattr) Tag() uint16    { return msg(m).Tag() }
func (m Rsetattr) Len() int64     { return msg(m).Len() }
func (m Rsetattr) nbytes() int64  { return msg(m).nbytes() }
func (m Rsetattr) String() string { return "Rsetattr" }

type Txattrwalk msg

func (m Txattrwalk) Tag() uint16    { return msg(m).Tag() }
func (m Txattrwalk) Len() int64     { return msg(m).Len() }
func (m Txattrwalk) nbytes() int64  { return msg(m).nbytes() }
func (m Txattrwalk) Fid() uint32    { return guint32(m[7:11]) }
func (m Txattrwalk) Attrfid() uint32 { return guint32(m[11:15]) }
func (m Txattrwalk) Name() []byte   { return msg(m).nthField(15, 0) }
func (m Txattrwalk) String() string {
	return fmt.Sprintf("Txattrwalk fid=%x attrfid=%x name=%q", m.Fid(), m.Attrfid(), m.Name())
}

type Rxattrwalk msg

func (m Rxattrwalk) Tag() uint16    { return msg(m).Tag() }
func (m Rxattrwalk) Len() int64     { return msg(m).Len() }
func (m Rxattrwalk) nbytes() int64  { return msg(m).nbytes() }
func (m Rxattrwalk) Size() uint64   { return guint64(m[7:15]) }
func (m Rxattrwalk) String() string { return fmt.Sprintf("Rxattrwalk size=%d", m.Size()) }

type Txattrcreate msg

func (m Txattrcreate) Tag() uint16   { return msg(m).Tag() }
func (m Txattrcreate) Len() int64    { return msg(m).Len() }
func (m Txattrcreate) nbytes() int64 { return msg(m).nbytes() }
func (m Txattrcreate) Fid() uint32   { return guint32(m[7:11]) }
func (m Txattrcreate) Name() []byte  { return msg(m).nthField(11, 0) }
func (m Txattrcreate) Size() uint64 {
	off := 11 + 2 + len(m.Name())
	return guint64(m[off : off+8])
}
func (m Txattrcreate) Flag() uint32 {
	off := 11 + 2 + len(m.Name()) + 8
	return guint32(m[off : off+4])
}
func (m Txattrcreate) String() string {
	return fmt.Sprintf("Txattrcreate fid=%x name=%q size=%d flag=%#x", m.Fid(), m.Name(), m.Size(), m.Flag())
}

type Rxattrcreate msg

func (m Rxattrcreate) Tag() uint16    { return msg(m).Tag() }
func (m Rxattrcreate) Len() int64     { return msg(m).Len() }
func (m Rxattrcreate) nbytes() int64  { return msg(m).nbytes() }
func (m Rxattrcreate) String() string { return "Rxattrcreate" }

type Treaddir msg

func (m Treaddir) Tag() uint16    { return msg(m).Tag() }
func (m Treaddir) Len() int64     { return msg(m).Len() }
func (m Treaddir) nbytes() int64  { return msg(m).nbytes() }
func (m Treaddir) Fid() uint32    { return guint32(m[7:11]) }
func (m Treaddir) Offset() uint64 { return guint64(m[11:19]) }
func (m Treaddir) Count() uint32  { return guint32(m[19:23]) }
func (m Treaddir) String() string {
	return fmt.Sprintf("Treaddir fid=%x offset=%d count=%d", m.Fid(), m.Offset(), m.Count())
}

type Rreaddir msg

func (m Rreaddir) Tag() uint16    { return msg(m).Tag() }
func (m Rreaddir) Len() int64     { return msg(m).Len() }
func (m Rreaddir) nbytes() int64  { return msg(m).nbytes() }
func (m Rreaddir) Count() uint32  { return guint32(m[7:11]) }
func (m Rreaddir) Data() []byte   { return m[11 : 11+m.Count()] }
func (m Rreaddir) String() string { return fmt.Sprintf("Rreaddir count=%d", m.Count()) }

type Tfsync msg

func (m Tfsync) Tag() uint16      { return msg(m).Tag() }
func (m Tfsync) Len() int64       { return msg(m).Len() }
func (m Tfsync) nbytes() int64    { return msg(m).nbytes() }
func (m Tfsync) Fid() uint32      { return guint32(m[7:11]) }
func (m Tfsync) Datasync() uint32 { return guint32(m[11:15]) }
func (m Tfsync) String() string   { return fmt.Sprintf("Tfsync fid=%x", m.Fid()) }

type Rfsync msg

func (m Rfsync) Tag() uint16    { return msg(m).Tag() }
func (m Rfsync) Len() int64     { return msg(m).Len() }
func (m Rfsync) nbytes() int64  { return msg(m).nbytes() }
func (m Rfsync) String() string { return "Rfsync" }

type Tlock msg

func (m Tlock) Tag() uint16      { return msg(m).Tag() }
func (m Tlock) Len() int64       { return msg(m).Len() }
func (m Tlock) nbytes() int64    { return msg(m).nbytes() }
func (m Tlock) Fid() uint32      { return guint32(m[7:11]) }
func (m Tlock) Type() uint8      { return m[11] }
func (m Tlock) Flags() uint32    { return guint32(m[12:16]) }
func (m Tlock) Start() uint64    { return guint64(m[16:24]) }
func (m Tlock) Length() uint64   { return guint64(m[24:32]) }
func (m Tlock) ProcID() uint32   { return guint32(m[32:36]) }
func (m Tlock) ClientID() []byte { return msg(m).nthField(36, 0) }
func (m Tlock) String() string   { return fmt.Sprintf("Tlock fid=%x type=%d start=%d length=%d", m.Fid(), m.Type(), m.Start(), m.Length()) }

type Rlock msg

func (m Rlock) Tag() uint16    { return msg(m).Tag() }
func (m Rlock) Len() int64     { return msg(m).Len() }
func (m Rlock) nbytes() int64  { return msg(m).nbytes() }
func (m Rlock) Status() uint8  { return m[7] }
func (m Rlock) String() string { return fmt.Sprintf("Rlock status=%d", m.Status()) }

type Tgetlock msg

func (m Tgetlock) Tag() uint16      { return msg(m).Tag() }
func (m Tgetlock) Len() int64       { return msg(m).Len() }
func (m Tgetlock) nbytes() int64    { return msg(m).nbytes() }
func (m Tgetlock) Fid() uint32      { return guint32(m[7:11]) }
func (m Tgetlock) Type() uint8      { return m[11] }
func (m Tgetlock) Start() uint64    { return guint64(m[12:20]) }
func (m Tgetlock) Length() uint64   { return guint64(m[20:28]) }
func (m Tgetlock) ProcID() uint32   { return guint32(m[28:32]) }
func (m Tgetlock) ClientID() []byte { return msg(m).nthField(32, 0) }
func (m Tgetlock) String() string   { return fmt.Sprintf("Tgetlock fid=%x type=%d", m.Fid(), m.Type()) }

type Rgetlock msg

func (m Rgetlock) Tag() uint16      { return msg(m).Tag() }
func (m Rgetlock) Len() int64       { return msg(m).Len() }
func (m Rgetlock) nbytes() int64    { return msg(m).nbytes() }
func (m Rgetlock) Type() uint8      { return m[7] }
func (m Rgetlock) Start() uint64    { return guint64(m[8:16]) }
func (m Rgetlock) Length() uint64   { return guint64(m[16:24]) }
func (m Rgetlock) ProcID() uint32   { return guint32(m[24:28]) }
func (m Rgetlock) ClientID() []byte { return msg(m).nthField(28, 0) }
func (m Rgetlock) String() string   { return fmt.Sprintf("Rgetlock type=%d", m.Type()) }

type Tlink msg

func (m Tlink) Tag() uint16    { return msg(m).Tag() }
func (m Tlink) Len() int64     { return msg(m).Len() }
func (m Tlink) nbytes() int64  { return msg(m).nbytes() }
func (m Tlink) Dfid() uint32   { return guint32(m[7:11]) }
func (m Tlink) Fid() uint32    { return guint32(m[11:15]) }
func (m Tlink) Name() []byte   { return msg(m).nthField(15, 0) }
func (m Tlink) String() string { return fmt.Sprintf("Tlink dfid=%x fid=%x name=%q", m.Dfid(), m.Fid(), m.Name()) }

type Rlink msg

func (m Rlink) Tag() uint16    { return msg(m).Tag() }
func (m Rlink) Len() int64     { return msg(m).Len() }
func (m Rlink) nbytes() int64  { return msg(m).nbytes() }
func (m Rlink) String() string { return "Rlink" }

type Tmkdir msg

func (m Tmkdir) Tag() uint16    { return msg(m).Tag() }
func (m Tmkdir) Len() int64     { return msg(m).Len() }
func (m Tmkdir) nbytes() int64  { return msg(m).nbytes() }
func (m Tmkdir) Fid() uint32    { return guint32(m[7:11]) }
func (m Tmkdir) Name() []byte   { return msg(m).nthField(11, 0) }
func (m Tmkdir) Mode() uint32 {
	off := 11 + 2 + len(m.Name())
	return guint32(m[off : off+4])
}
func (m Tmkdir) Gid() uint32 {
	off := 11 + 2 + len(m.Name()) + 4
	return guint32(m[off : off+4])
}
func (m Tmkdir) String() string {
	return fmt.Sprintf("Tmkdir fid=%x name=%q mode=%#o gid=%d", m.Fid(), m.Name(), m.Mode(), m.Gid())
}

type Rmkdir msg

func (m Rmkdir) Tag() uint16    { return msg(m).Tag() }
func (m Rmkdir) Len() int64     { return msg(m).Len() }
func (m Rmkdir) nbytes() int64  { return msg(m).nbytes() }
func (m Rmkdir) Qid() Qid       { var q Qid; copy(q[:], m[7:20]); return q }
func (m Rmkdir) String() string { return fmt.Sprintf("Rmkdir qid=%s", m.Qid()) }

type Trenameat msg

func (m Trenameat) Tag() uint16      { return msg(m).Tag() }
func (m Trenameat) Len() int64       { return msg(m).Len() }
func (m Trenameat) nbytes() int64    { return msg(m).nbytes() }
func (m Trenameat) Olddirfid() uint32 { return guint32(m[7:11]) }
func (m Trenameat) Oldname() []byte  { return msg(m).nthField(11, 0) }
func (m Trenameat) Newdirfid() uint32 {
	off := 11 + 2 + len(m.Oldname())
	return guint32(m[off : off+4])
}
func (m Trenameat) Newname() []byte {
	off := 11 + 2 + len(m.Oldname()) + 4
	return msg(m).nthField(off, 0)
}
func (m Trenameat) String() string {
	return fmt.Sprintf("Trenameat olddirfid=%x oldname=%q newdirfid=%x newname=%q",
		m.Olddirfid(), m.Oldname(), m.Newdirfid(), m.Newname())
}

type Rrenameat msg

func (m Rrenameat) Tag() uint16    { return msg(m).Tag() }
func (m Rrenameat) Len() int64     { return msg(m).Len() }
func (m Rrenameat) nbytes() int64  { return msg(m).nbytes() }
func (m Rrenameat) String() string { return "Rrenameat" }

type Tunlinkat msg

func (m Tunlinkat) Tag() uint16    { return msg(m).Tag() }
func (m Tunlinkat) Len() int64     { return msg(m).Len() }
func (m Tunlinkat) nbytes() int64  { return msg(m).nbytes() }
func (m Tunlinkat) Dirfid() uint32 { return guint32(m[7:11]) }
func (m Tunlinkat) Name() []byte   { return msg(m).nthField(11, 0) }
func (m Tunlinkat) Flags() uint32 {
	off := 11 + 2 + len(m.Name())
	return guint32(m[off : off+4])
}
func (m Tunlinkat) String() string {
	return fmt.Sprintf("Tunlinkat dirfid=%x name=%q flags=%#x", m.Dirfid(), m.Name(), m.Flags())
}

type Runlinkat msg

func (m Runlinkat) Tag() uint16    { return msg(m).Tag() }
func (m Runlinkat) Len() int64     { return msg(m).Len() }
func (m Runlinkat) nbytes() int64  { return msg(m).nbytes() }
func (m Runlinkat) String() string { return "Runlinkat" }
