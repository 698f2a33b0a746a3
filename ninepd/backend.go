package ninepd

import (
	"context"

	"github.com/ninefs/ninepd/wire"
)

// Backend is the minimum a filesystem implementation must provide: a
// way to turn a Tattach's (uname, aname) pair into an opaque root
// handle. Every other 9P operation is optional, expressed as a
// narrower sub-interface the dispatcher type-asserts Backend against;
// a fid whose Backend doesn't implement the interface a given request
// needs gets an ENOTSUP Rlerror, matching spec.md §6's "callbacks may
// be null when not applicable."
//
// The aux value returned by Attach (and by Walker/Creator/etc. below)
// is opaque backend-owned state, stored in the fid table's Fid.Aux.
// If it implements fidpool.Destroyer, its Destroy method runs when
// the fid's last reference is dropped.
type Backend interface {
	Attach(ctx context.Context, uname, aname string, uid uint32) (aux any, qid wire.Qid, err error)
}

type Walker interface {
	Walk(ctx context.Context, aux any, name string) (newAux any, qid wire.Qid, err error)
}

type Opener interface {
	Open(ctx context.Context, aux any, mode uint32) (qid wire.Qid, iounit uint32, err error)
}

type Creator interface {
	Create(ctx context.Context, aux any, name string, flags, mode, gid uint32) (newAux any, qid wire.Qid, iounit uint32, err error)
}

type Mkdirer interface {
	Mkdir(ctx context.Context, dirAux any, name string, mode, gid uint32) (wire.Qid, error)
}

type ReaderAt interface {
	ReadAt(ctx context.Context, aux any, p []byte, offset int64) (n int, err error)
}

type WriterAt interface {
	WriteAt(ctx context.Context, aux any, p []byte, offset int64) (n int, err error)
}

// Readdirer returns directory entries starting at offset, encoded
// with wire.AppendDirent, truncated to fit in count bytes.
type Readdirer interface {
	Readdir(ctx context.Context, aux any, offset uint64, count uint32) ([]byte, error)
}

type Getattrer interface {
	Getattr(ctx context.Context, aux any, mask uint64) (wire.Attr, error)
}

type Setattrer interface {
	Setattr(ctx context.Context, aux any, valid, mode, uid, gid uint32, size uint64, atimeSec, atimeNsec, mtimeSec, mtimeNsec uint64) error
}

type Renamer interface {
	Rename(ctx context.Context, aux any, dirAux any, newname string) error
}

type Renameater interface {
	Renameat(ctx context.Context, olddirAux any, oldname string, newdirAux any, newname string) error
}

type Symlinker interface {
	Symlink(ctx context.Context, dirAux any, name, target string, gid uint32) (wire.Qid, error)
}

type Linker interface {
	Link(ctx context.Context, dirAux any, targetAux any, name string) error
}

type Mknoder interface {
	Mknod(ctx context.Context, dirAux any, name string, mode, major, minor, gid uint32) (wire.Qid, error)
}

type Readlinker interface {
	Readlink(ctx context.Context, aux any) (string, error)
}

// Statfs mirrors the fields of an Rstatfs reply.
type Statfs struct {
	Type, Bsize                             uint32
	Blocks, Bfree, Bavail, Files, Ffree, Fsid uint64
	Namelen                                  uint32
}

type Statfser interface {
	Statfs(ctx context.Context, aux any) (Statfs, error)
}

type Locker interface {
	Lock(ctx context.Context, aux any, ltype uint8, flags uint32, start, length uint64, procID uint32, clientID string) (status uint8, err error)
}

type Getlocker interface {
	Getlock(ctx context.Context, aux any, ltype uint8, start, length uint64, procID uint32, clientID string) (respType uint8, respStart, respLength uint64, respProcID uint32, respClientID string, err error)
}

type Xattrwalker interface {
	Xattrwalk(ctx context.Context, aux any, name string) (newAux any, size uint64, err error)
}

type Xattrcreater interface {
	Xattrcreate(ctx context.Context, aux any, name string, size uint64, flag uint32) (newAux any, err error)
}

type Fsyncer interface {
	Fsync(ctx context.Context, aux any, datasync bool) error
}

type Unlinkater interface {
	Unlinkat(ctx context.Context, dirAux any, name string, flags uint32) error
}

// Remover implements the legacy 9P2000 Tremove (clunk + delete in one
// step). 9P2000.L clients use Tunlinkat instead; Remover exists for
// backends that still want to support the older op.
type Remover interface {
	Remove(ctx context.Context, aux any) error
}
