package fidpool

import (
	"errors"
	"testing"

	"github.com/ninefs/ninepd/wire"
)

type countingAux struct{ destroyed *bool }

func (c countingAux) Destroy() { *c.destroyed = true }

func TestPoolCreateFindClunk(t *testing.T) {
	var p Pool
	q := wire.NewQid(wire.QTFILE, 0, 1)

	f, err := p.Create(1, q, 1000, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.Decref() // drop the caller's own reference from Create

	if p.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", p.Count())
	}

	found, err := p.Find(1)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.Qid != q {
		t.Errorf("Qid mismatch")
	}
	found.Decref()

	if err := p.Clunk(1); err != nil {
		t.Fatalf("Clunk: %v", err)
	}
	if p.Count() != 0 {
		t.Errorf("Count() after Clunk = %d, want 0", p.Count())
	}

	if _, err := p.Find(1); !errors.Is(err, NoFid) && err != NoFid {
		t.Errorf("Find after Clunk = %v, want NoFid", err)
	}
}

func TestPoolCreateDuplicateFails(t *testing.T) {
	var p Pool
	q := wire.NewQid(wire.QTFILE, 0, 1)
	if _, err := p.Create(5, q, 0, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := p.Create(5, q, 0, nil); err != ErrFidInUse {
		t.Fatalf("second Create = %v, want ErrFidInUse", err)
	}
}

func TestFidDestroyedOnLastDecref(t *testing.T) {
	var p Pool
	q := wire.NewQid(wire.QTFILE, 0, 2)
	destroyed := false

	f, err := p.Create(9, q, 0, countingAux{&destroyed})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ref, err := p.Find(9)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	if err := p.Clunk(9); err != nil {
		t.Fatalf("Clunk: %v", err)
	}
	if destroyed {
		t.Fatal("destroyed before outstanding references dropped")
	}

	f.Decref()
	if destroyed {
		t.Fatal("destroyed before all references dropped")
	}

	ref.Decref()
	if !destroyed {
		t.Fatal("Destroy was not called after last reference dropped")
	}
}

func TestPoolDestroyRunsAllDestructors(t *testing.T) {
	var p Pool
	var destroyed [3]bool
	for i := range destroyed {
		f, err := p.Create(uint32(i), wire.NewQid(wire.QTFILE, 0, uint64(i)), 0, countingAux{&destroyed[i]})
		if err != nil {
			t.Fatalf("Create(%d): %v", i, err)
		}
		f.Decref()
	}

	n := p.Destroy()
	if n != 3 {
		t.Errorf("Destroy() = %d, want 3", n)
	}
	for i, d := range destroyed {
		if !d {
			t.Errorf("fid %d was not destroyed", i)
		}
	}
	if p.Count() != 0 {
		t.Errorf("Count() after Destroy = %d, want 0", p.Count())
	}
}
