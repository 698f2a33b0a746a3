// Command ninepd-loopback is a minimal demonstration server: it wires
// an in-memory file hierarchy to a real 9P2000.L listener so the
// client library and wire protocol can be exercised by hand (mount
// with a 9P2000.L-capable kernel client, or drive it with
// package client) without needing a real filesystem underneath.
package main

import (
	"context"
	"errors"
	"os"
	"path"
	"sort"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/ninefs/ninepd/internal/filetree"
	"github.com/ninefs/ninepd/internal/qidpool"
	"github.com/ninefs/ninepd/wire"
)

// file holds the mutable content of a regular file. Entry.Value holds
// a *file for regular files and nil for directories.
type file struct {
	mu   sync.Mutex
	data []byte
}

// loopback implements ninepd.Backend (and several of its optional
// sub-interfaces) over an internal/filetree.Tree. Every fid's aux
// value is the normalized path string it was walked to; the tree
// itself is guarded by mu since filetree.Tree is not safe for
// concurrent use.
type loopback struct {
	mu   sync.RWMutex
	tree *filetree.Tree
	qids *qidpool.Pool
}

func newLoopback() *loopback {
	l := &loopback{tree: filetree.New(), qids: qidpool.New()}
	l.tree.Put("/", os.ModeDir|0755, nil)
	return l
}

var errNotFound = &wire.Error{Kind: wire.KindNotFound, Msg: "no such file or directory"}
var errNotDir = &wire.Error{Kind: wire.KindBackend, Errno: uint32(unix.ENOTDIR), Msg: "not a directory"}
var errExist = &wire.Error{Kind: wire.KindBackend, Errno: uint32(unix.EEXIST), Msg: "file exists"}
var errIsDir = &wire.Error{Kind: wire.KindBackend, Errno: uint32(unix.EISDIR), Msg: "is a directory"}

func (l *loopback) qidFor(p string, dir bool) wire.Qid {
	qtype := wire.QTFILE
	if dir {
		qtype = wire.QTDIR
	}
	return l.qids.LoadOrStore(p, qtype)
}

func (l *loopback) Attach(ctx context.Context, uname, aname string, uid uint32) (any, wire.Qid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	root, ok := l.tree.Get("/")
	if !ok {
		return nil, wire.Qid{}, errNotFound
	}
	return "/", l.qidFor("/", root.IsDir()), nil
}

func (l *loopback) Walk(ctx context.Context, aux any, name string) (any, wire.Qid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	dir := aux.(string)
	if name == "" || name == "." {
		entry, ok := l.tree.Get(dir)
		if !ok {
			return nil, wire.Qid{}, errNotFound
		}
		return dir, l.qidFor(dir, entry.IsDir()), nil
	}
	child := path.Join(dir, name)
	entry, ok := l.tree.Get(child)
	if !ok {
		return nil, wire.Qid{}, errNotFound
	}
	return child, l.qidFor(child, entry.IsDir()), nil
}

func (l *loopback) Open(ctx context.Context, aux any, mode uint32) (wire.Qid, uint32, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p := aux.(string)
	entry, ok := l.tree.Get(p)
	if !ok {
		return wire.Qid{}, 0, errNotFound
	}
	return l.qidFor(p, entry.IsDir()), 0, nil
}

func (l *loopback) Create(ctx context.Context, aux any, name string, flags, mode, gid uint32) (any, wire.Qid, uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dir := aux.(string)
	if _, ok := l.tree.Get(dir); !ok {
		return nil, wire.Qid{}, 0, errNotFound
	}
	child := path.Join(dir, name)
	if _, ok := l.tree.Get(child); ok {
		return nil, wire.Qid{}, 0, errExist
	}
	l.tree.Put(child, os.FileMode(mode&0777), &file{})
	return child, l.qidFor(child, false), 0, nil
}

func (l *loopback) Mkdir(ctx context.Context, dirAux any, name string, mode, gid uint32) (wire.Qid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dir := dirAux.(string)
	if _, ok := l.tree.Get(dir); !ok {
		return wire.Qid{}, errNotFound
	}
	child := path.Join(dir, name)
	if _, ok := l.tree.Get(child); ok {
		return wire.Qid{}, errExist
	}
	l.tree.Put(child, os.ModeDir|os.FileMode(mode&0777), nil)
	return l.qidFor(child, true), nil
}

func (l *loopback) ReadAt(ctx context.Context, aux any, p []byte, offset int64) (int, error) {
	f, err := l.openFile(aux.(string))
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= int64(len(f.data)) {
		return 0, nil
	}
	return copy(p, f.data[offset:]), nil
}

func (l *loopback) WriteAt(ctx context.Context, aux any, p []byte, offset int64) (int, error) {
	f, err := l.openFile(aux.(string))
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	end := offset + int64(len(p))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	n := copy(f.data[offset:], p)
	return n, nil
}

// openFile fetches the *file backing path p, failing if p does not
// name a regular file.
func (l *loopback) openFile(p string) (*file, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.tree.Get(p)
	if !ok {
		return nil, errNotFound
	}
	if entry.IsDir() {
		return nil, errIsDir
	}
	f, ok := entry.Value.(*file)
	if !ok {
		return nil, errors.New("ninepd-loopback: entry has no backing file")
	}
	return f, nil
}

func (l *loopback) Readdir(ctx context.Context, aux any, offset uint64, count uint32) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	dir := aux.(string)
	entry, ok := l.tree.Get(dir)
	if !ok {
		return nil, errNotFound
	}
	if !entry.IsDir() {
		return nil, errNotDir
	}

	children := append([]filetree.Entry(nil), entry.Children...)
	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })

	var buf []byte
	for i, child := range children {
		if uint64(i) < offset {
			continue
		}
		next := wire.AppendDirent(buf, l.qidFor(child.FullName, child.IsDir()), uint64(i)+1, dirType(child.IsDir()), child.Name())
		if len(next) > int(count) {
			break
		}
		buf = next
	}
	return buf, nil
}

func dirType(isDir bool) uint8 {
	if isDir {
		return unix.DT_DIR
	}
	return unix.DT_REG
}

func (l *loopback) Getattr(ctx context.Context, aux any, mask uint64) (wire.Attr, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p := aux.(string)
	entry, ok := l.tree.Get(p)
	if !ok {
		return wire.Attr{}, errNotFound
	}

	mode := uint32(entry.Mode().Perm())
	var size uint64
	if entry.IsDir() {
		mode |= unix.S_IFDIR
	} else {
		mode |= unix.S_IFREG
		if f, ok := entry.Value.(*file); ok {
			f.mu.Lock()
			size = uint64(len(f.data))
			f.mu.Unlock()
		}
	}

	return wire.Attr{
		Valid: wire.GetattrBasic,
		Qid:   l.qidFor(p, entry.IsDir()),
		Mode:  mode,
		Nlink: 1,
		Size:  size,
	}, nil
}
