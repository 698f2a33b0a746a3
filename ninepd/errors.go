package ninepd

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/ninefs/ninepd/wire"
)

// ErrNotSupported is returned internally when a Backend doesn't
// implement the sub-interface a request needs; it always maps to
// ENOTSUP.
var ErrNotSupported = &wire.Error{Kind: wire.KindBackend, Errno: uint32(unix.ENOTSUP), Msg: "not supported"}

// errno maps any error returned by a Backend method (or produced
// internally, e.g. fidpool.NoFid) to a 9P2000.L errno, using
// errors.As against wire.Error and falling back to EIO for plain Go
// errors the backend didn't wrap - matching spec.md §7.
func errno(err error) uint32 {
	if err == nil {
		return 0
	}
	var werr *wire.Error
	if errors.As(err, &werr) {
		switch werr.Kind {
		case wire.KindBackend:
			return werr.Errno
		case wire.KindFidInUse:
			return uint32(unix.EBADF)
		case wire.KindNoFid:
			return uint32(unix.EBADF)
		case wire.KindNoTag:
			return uint32(unix.EBADF)
		case wire.KindPermission:
			return uint32(unix.EPERM)
		case wire.KindNotFound:
			return uint32(unix.ENOENT)
		case wire.KindBusy:
			return uint32(unix.EBUSY)
		case wire.KindTooBig:
			return uint32(unix.E2BIG)
		case wire.KindBadMessage, wire.KindBadVersion, wire.KindShortMessage:
			return uint32(unix.EINVAL)
		}
	}
	return uint32(unix.EIO)
}
