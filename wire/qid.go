package wire

import "fmt"

// A Qid is the server's unique identifier for the file being accessed:
// two files on the same connection are the same file if and only if
// their Qids are equal.
type Qid [13]byte

// NewQid builds a Qid from its three fields.
func NewQid(qtype QidType, version uint32, path uint64) Qid {
	var q Qid
	q[0] = byte(qtype)
	buint32(q[1:5], version)
	buint64(q[5:13], path)
	return q
}

// Type returns the type of the file (directory, symlink, ...).
func (q Qid) Type() QidType { return QidType(q[0]) }

// Version increments every time the file is modified; servers that
// cannot track modification should always report 0.
func (q Qid) Version() uint32 { return guint32(q[1:5]) }

// Path is an integer unique among all files in the hierarchy. A
// deleted and recreated file with the same name must get a new Path.
func (q Qid) Path() uint64 { return guint64(q[5:13]) }

func (q Qid) String() string {
	return fmt.Sprintf("(%02x %d %x)", q.Type(), q.Version(), q.Path())
}

// QidType is a bit vector describing the type of a file, corresponding
// to the high 8 bits of the file's Unix mode word.
type QidType uint8

const (
	QTDIR     QidType = 0x80
	QTAPPEND  QidType = 0x40
	QTEXCL    QidType = 0x20
	QTMOUNT   QidType = 0x10
	QTAUTH    QidType = 0x08
	QTTMP     QidType = 0x04
	QTSYMLINK QidType = 0x02
	QTLINK    QidType = 0x01
	QTFILE    QidType = 0x00
)

func verifyQidType(t QidType) bool {
	switch t {
	case QTDIR, QTAPPEND, QTEXCL, QTMOUNT, QTAUTH, QTTMP, QTSYMLINK, QTLINK, QTFILE:
		return true
	}
	return false
}
