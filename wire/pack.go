package wire

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ninefs/ninepd/internal/util"
)

// bit-packing helpers. Callers extend the destination slice by writing
// through an *util.ErrWriter, which defers error checking until Flush.

func puint8(w *util.ErrWriter, v uint8) {
	w.WriteByte(v)
}

func puint16(w *util.ErrWriter, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.Write(buf[:])
}

func puint32(w *util.ErrWriter, v ...uint32) {
	var buf [4]byte
	for _, vv := range v {
		binary.LittleEndian.PutUint32(buf[:], vv)
		w.Write(buf[:])
	}
}

func puint64(w *util.ErrWriter, v ...uint64) {
	var buf [8]byte
	for _, vv := range v {
		binary.LittleEndian.PutUint64(buf[:], vv)
		w.Write(buf[:])
	}
}

func pbyte(w *util.ErrWriter, p []byte) {
	if len(p) > math.MaxUint16 {
		w.Err = errLongFilename
		return
	}
	puint16(w, uint16(len(p)))
	w.Write(p)
}

func pqid(w *util.ErrWriter, qids ...Qid) {
	for _, q := range qids {
		w.Write(q[:])
	}
}

func pstring(w *util.ErrWriter, s ...string) {
	for _, ss := range s {
		puint16(w, uint16(len(ss)))
		io.WriteString(w, ss)
	}
}

// pheader writes size[4] type[1] tag[2] followed by any fixed-size
// uint32 fields that immediately follow the tag in every message.
// bodyLen is the number of bytes following the size field itself
// (matching minSizeLUT's units); the wire size field written is
// bodyLen+4, since 9P counts the whole message including its own
// length prefix.
func pheader(w *util.ErrWriter, bodyLen uint32, mtype uint8, tag uint16, extra ...uint32) {
	puint32(w, bodyLen+4)
	puint8(w, mtype)
	puint16(w, tag)
	puint32(w, extra...)
}
