// Package fidpool implements the per-connection fid table: a
// concurrency-safe mapping from the wire's uint32 fid numbers to
// server-side Fid values, with reference counting so that a fid in
// use by one request cannot be torn down by a concurrent clunk.
package fidpool

import (
	"sync"

	"github.com/ninefs/ninepd/internal/util"
	"github.com/ninefs/ninepd/wire"
)

// NoFid is returned by Find when the requested fid number is not in
// the pool.
var NoFid = &wire.Error{Kind: wire.KindNoFid, Msg: "fid not found"}

// ErrFidInUse is returned by Create when the fid number is already
// taken.
var ErrFidInUse = &wire.Error{Kind: wire.KindFidInUse, Msg: "fid already in use"}

// Destroyer is implemented by backend-owned fid state that needs
// cleanup (closing a file descriptor, releasing a lock, ...) once its
// last reference is dropped.
type Destroyer interface {
	Destroy()
}

// Fid is one entry in the pool: the 9P qid identifying the file, plus
// whatever opaque state the Backend attached to it in Aux.
type Fid struct {
	Num     uint32
	Qid     wire.Qid
	Uid     uint32
	Aux     any
	util.RefCount
}

// destroy invokes Aux's Destroy method, if it implements Destroyer.
func (f *Fid) destroy() {
	if d, ok := f.Aux.(Destroyer); ok {
		d.Destroy()
	}
}

// Pool is a connection's fid table. The zero value is ready to use.
type Pool struct {
	mu sync.Mutex
	m  map[uint32]*Fid
}

func (p *Pool) init() {
	if p.m == nil {
		p.m = make(map[uint32]*Fid)
	}
}

// Find looks up num and returns it with an extra reference held on
// the caller's behalf; the caller must call Decref when done. It
// returns NoFid if num is not present.
func (p *Pool) Find(num uint32) (*Fid, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.init()
	f, ok := p.m[num]
	if !ok {
		return nil, NoFid
	}
	f.IncRef()
	return f, nil
}

// Create inserts a new fid under num with an initial reference count
// of 1, returning it with one additional reference so the caller owns
// both the table's reference and its own. It fails with ErrFidInUse
// if num is already present.
func (p *Pool) Create(num uint32, qid wire.Qid, uid uint32, aux any) (*Fid, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.init()
	if _, ok := p.m[num]; ok {
		return nil, ErrFidInUse
	}
	f := &Fid{Num: num, Qid: qid, Uid: uid, Aux: aux}
	f.IncRef() // the table's own reference
	p.m[num] = f
	f.IncRef() // the reference returned to the caller
	return f, nil
}

// Clunk removes num from the table, dropping the table's reference.
// If that was the last reference, the fid's destructor runs
// immediately (outside the table lock); otherwise it runs when the
// last outstanding Decref fires.
func (p *Pool) Clunk(num uint32) error {
	p.mu.Lock()
	p.init()
	f, ok := p.m[num]
	if !ok {
		p.mu.Unlock()
		return NoFid
	}
	delete(p.m, num)
	p.mu.Unlock()

	if !f.DecRef() {
		f.destroy()
	}
	return nil
}

// Decref drops a reference obtained from Find or Create. If it was
// the last outstanding reference (the fid has already been clunked),
// the destructor runs.
func (f *Fid) Decref() {
	if !f.DecRef() {
		f.destroy()
	}
}

// Count returns the number of fids currently in the table.
func (p *Pool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

// Destroy runs the destructor on every remaining fid and empties the
// table, returning the number of fids that were still open (i.e. were
// never clunked by the client). Called when a connection's read loop
// reaches EOF or a decode error and moves to DRAINING.
func (p *Pool) Destroy() int {
	p.mu.Lock()
	p.init()
	remaining := p.m
	p.m = make(map[uint32]*Fid)
	p.mu.Unlock()

	for _, f := range remaining {
		f.destroy()
	}
	return len(remaining)
}
