package wire

import (
	"encoding/binary"
	"fmt"
)

// Stat describes a directory entry in the legacy 9P2000 stat format.
// 9P2000.L favors Tgetattr/Tsetattr for new code, but Stat is kept
// around for Twstat, whose "don't touch" convention (a field set to
// its zero/~0 value is left unmodified) some clients still rely on.
type Stat []byte

// Size is the length of the stat structure, not counting these two
// bytes themselves.
func (s Stat) Size() uint16 { return guint16(s[0:2]) }

// Type holds implementation-specific data outside the scope of 9P.
func (s Stat) Type() uint16 { return guint16(s[2:4]) }

// Dev holds implementation-specific data outside the scope of 9P.
func (s Stat) Dev() uint32 { return guint32(s[4:8]) }

// Qid is the unique identifier of the file.
func (s Stat) Qid() Qid { var q Qid; copy(q[:], s[8:21]); return q }

// Mode holds the permissions and flags of the file, Unix-style.
func (s Stat) Mode() uint32 { return guint32(s[21:25]) }

// Atime is the last access time, in seconds since the epoch.
func (s Stat) Atime() uint32 { return binary.LittleEndian.Uint32(s[25:29]) }

// Mtime is the last modification time, in seconds since the epoch.
func (s Stat) Mtime() uint32 { return binary.LittleEndian.Uint32(s[29:33]) }

// Length is the size of the file in bytes.
func (s Stat) Length() int64 { return int64(binary.LittleEndian.Uint64(s[33:41])) }

func (s Stat) Name() []byte { return msg(s).nthField(41, 0) }
func (s Stat) Uid() []byte  { return msg(s).nthField(41, 1) }
func (s Stat) Gid() []byte  { return msg(s).nthField(41, 2) }
func (s Stat) Muid() []byte { return msg(s).nthField(41, 3) }

func (s Stat) String() string {
	return fmt.Sprintf("type=%x dev=%x qid=%s mode=%o atime=%d mtime=%d "+
		"length=%d name=%q uid=%q gid=%q muid=%q", s.Type(), s.Dev(), s.Qid(),
		s.Mode(), s.Atime(), s.Mtime(), s.Length(), s.Name(), s.Uid(),
		s.Gid(), s.Muid())
}

// verifyStat validates a Stat structure read off the wire. Must be
// called on every Stat before trusting its fields.
func verifyStat(data []byte) error {
	var field []byte

	// type[2] dev[4] qid[13] mode[4] atime[4] mtime[4] length[8] name[s] uid[s] gid[s] muid[s]
	if len(data) < minStatLen {
		return errShortStat
	} else if len(data) > maxStatLen {
		return errLongStat
	}
	if length := guint64(data[33:41]); length > MaxFileLen {
		return errLongLength
	}
	name, rest, err := verifyField(data[41:], false, 6)
	if err != nil {
		return err
	} else if err := verifyString(name); err != nil {
		return err
	} else if len(name) > MaxFilenameLen {
		return errLongFilename
	}

	for i := 0; i < 3; i++ {
		field, rest, err = verifyField(rest, i == 2, 4-i*2)
		if err != nil {
			return err
		} else if err := verifyString(field); err != nil {
			return err
		} else if len(field) > MaxUidLen {
			return errLongUsername
		}
	}
	return nil
}

// Dirent is a single directory entry as returned in the data portion
// of an Rreaddir reply: qid[13] offset[8] type[1] name[s].
type Dirent []byte

func (d Dirent) Qid() Qid       { var q Qid; copy(q[:], d[0:13]); return q }
func (d Dirent) Offset() uint64 { return guint64(d[13:21]) }
func (d Dirent) Type() uint8    { return d[21] }
func (d Dirent) Name() []byte   { return msg(d).nthField(22, 0) }

func (d Dirent) String() string {
	return fmt.Sprintf("qid=%s offset=%d type=%x name=%q", d.Qid(), d.Offset(), d.Type(), d.Name())
}

// AppendDirent appends the wire encoding of a single directory entry
// to buf, returning the extended slice. Used by Backend implementations
// building up an Rreaddir payload.
func AppendDirent(buf []byte, qid Qid, offset uint64, etype uint8, name string) []byte {
	buf = append(buf, qid[:]...)
	var off [8]byte
	buint64(off[:], offset)
	buf = append(buf, off[:]...)
	buf = append(buf, etype)
	var sz [2]byte
	buint16(sz[:], uint16(len(name)))
	buf = append(buf, sz[:]...)
	buf = append(buf, name...)
	return buf
}
