// Package wire provides low-level routines for parsing and producing
// 9P2000.L messages.
//
// Messages are not unmarshalled into structs; each message type is a
// thin []byte wrapper with accessor methods that read fields directly
// out of the wire representation. This keeps decoding allocation-free
// for the common case, and lets large Twrite/Rread payloads be
// streamed instead of buffered whole.
package wire

import (
	"encoding/binary"
)

// Shorthand for reading/writing fields.
var (
	guint16 = binary.LittleEndian.Uint16
	guint32 = binary.LittleEndian.Uint32
	guint64 = binary.LittleEndian.Uint64

	buint16 = binary.LittleEndian.PutUint16
	buint32 = binary.LittleEndian.PutUint32
	buint64 = binary.LittleEndian.PutUint64
)

// msg is the common byte-slice representation shared by all message
// types: size[4] type[1] tag[2] body...
type msg []byte

func (m msg) Type() uint8  { return m[4] }
func (m msg) Tag() uint16  { return guint16(m[5:7]) }
func (m msg) Body() []byte { return m[7:] }

// Len returns the number of bytes following the size[4] header, i.e.
// len(m)-4 for any fully-buffered message. The wire size field itself
// counts the whole message, header included.
func (m msg) Len() int64 { return int64(guint32(m[:4])) - 4 }

// nbytes is the number of bytes this message occupies on the wire,
// including the 4-byte size header.
func (m msg) nbytes() int64 { return int64(guint32(m[:4])) }

// nthField reads the n'th 2-byte-length-prefixed string field starting
// at offset. Callers must only invoke this on messages that have
// already passed verification.
func (m msg) nthField(offset, n int) []byte {
	size := int(guint16(m[offset : offset+2]))
	for i := 0; i < n; i++ {
		offset += size + 2
		size = int(guint16(m[offset : offset+2]))
	}
	return m[offset+2 : offset+2+size]
}

// Msg is a single 9P2000.L message, either sent by a client (a
// T-message) or a server (an R-message).
type Msg interface {
	// Tag is a transaction identifier chosen by the client. No two
	// pending T-messages on a connection may share a tag. The
	// R-message answering a T-message must carry the same tag.
	Tag() uint16

	// Len returns the size of the message body, not counting the
	// 4-byte size header.
	Len() int64

	nbytes() int64
}

// Message type numbers, matching the 9P2000.L wire protocol.
const (
	msgTlerror    = 6
	msgRlerror    = 7
	msgTstatfs    = 8
	msgRstatfs    = 9
	msgTlopen     = 12
	msgRlopen     = 13
	msgTlcreate   = 14
	msgRlcreate   = 15
	msgTsymlink   = 16
	msgRsymlink   = 17
	msgTmknod     = 18
	msgRmknod     = 19
	msgTrename    = 20
	msgRrename    = 21
	msgTreadlink  = 22
	msgRreadlink  = 23
	msgTgetattr   = 24
	msgRgetattr   = 25
	msgTsetattr   = 26
	msgRsetattr   = 27
	msgTxattrwalk   = 30
	msgRxattrwalk   = 31
	msgTxattrcreate = 32
	msgRxattrcreate = 33
	msgTreaddir   = 40
	msgRreaddir   = 41
	msgTfsync     = 50
	msgRfsync     = 51
	msgTlock      = 52
	msgRlock      = 53
	msgTgetlock   = 54
	msgRgetlock   = 55
	msgTlink      = 70
	msgRlink      = 71
	msgTmkdir     = 72
	msgRmkdir     = 73
	msgTrenameat  = 74
	msgRrenameat  = 75
	msgTunlinkat  = 76
	msgRunlinkat  = 77

	msgTversion = 100
	msgRversion = 101
	msgTauth    = 102
	msgRauth    = 103
	msgTattach  = 104
	msgRattach  = 105
	msgRerror   = 107
	msgTflush   = 108
	msgRflush   = 109
	msgTwalk    = 110
	msgRwalk    = 111
	msgTopen    = 112
	msgRopen    = 113
	msgTcreate  = 114
	msgRcreate  = 115
	msgTread    = 116
	msgRread    = 117
	msgTwrite   = 118
	msgRwrite   = 119
	msgTclunk   = 120
	msgRclunk   = 121
	msgTremove  = 122
	msgRremove  = 123
	msgTstat    = 124
	msgRstat    = 125
	msgTwstat   = 126
	msgRwstat   = 127

	msgMax = 128
)

// NOTAG is the tag used for Tversion/Rversion, the one exchange that
// happens before tags are negotiated.
const NOTAG uint16 = 0xFFFF

// NOFID is used in Tattach to indicate that no authentication fid is
// being presented.
const NOFID uint32 = 0xFFFFFFFF

// BadMessage represents a message that failed validation. Servers and
// clients alike should respond to a BadMessage with an Rlerror citing
// its Tag.
type BadMessage struct {
	Err error
	tag uint16
	n   int64
}

func (m BadMessage) Tag() uint16  { return m.tag }
func (m BadMessage) Len() int64   { return m.n }
func (m BadMessage) nbytes() int64 { return m.n + 4 }

func (m BadMessage) String() string { return "bad message: " + m.Err.Error() }
