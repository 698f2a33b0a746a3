// Package qidpool assigns stable, unique wire.Qids to path names, for
// backends (such as cmd/ninepd-loopback's in-memory tree) that have no
// inode number of their own to report.
package qidpool

import (
	"sync"
	"sync/atomic"

	"github.com/ninefs/ninepd/wire"
)

// A Pool maintains a mapping from path name to Qid for a single
// backend instance. The zero value is an empty, ready-to-use pool.
type Pool struct {
	m    sync.Map
	path uint64
}

// New returns a new, empty Pool.
func New() *Pool {
	return &Pool{}
}

// LoadOrStore returns the Qid already associated with name, or
// allocates a fresh one of the given type with a path number unique
// within this pool.
func (p *Pool) LoadOrStore(name string, qtype wire.QidType) wire.Qid {
	if v, ok := p.m.Load(name); ok {
		return v.(wire.Qid)
	}
	path := atomic.AddUint64(&p.path, 1)
	return p.LoadOrStoreQid(name, wire.NewQid(qtype, 0, path))
}

// LoadOrStoreQid stores qid under name unless one is already present,
// in which case the existing Qid is returned instead.
func (p *Pool) LoadOrStoreQid(name string, qid wire.Qid) wire.Qid {
	actual, _ := p.m.LoadOrStore(name, qid)
	return actual.(wire.Qid)
}

// Del removes a Qid from a Pool. Once a Qid is removed from a pool, it
// will never be used again.
func (p *Pool) Del(name string) {
	p.m.Delete(name)
}

// Load fetches the Qid currently associated with name from the pool.
// The second return value is false if name has no Qid yet.
func (p *Pool) Load(name string) (wire.Qid, bool) {
	if v, ok := p.m.Load(name); ok {
		return v.(wire.Qid), true
	}
	return wire.Qid{}, false
}
