package main

import (
	"context"
	"testing"

	"github.com/ninefs/ninepd/wire"
)

func TestLoopbackAttachWalkReadWrite(t *testing.T) {
	l := newLoopback()
	ctx := context.Background()

	rootAux, rootQid, err := l.Attach(ctx, "glenda", "", 0)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if rootQid.Type() != wire.QTDIR {
		t.Fatalf("root qid type = %v, want QTDIR", rootQid.Type())
	}

	fileAux, _, iounit, err := l.Create(ctx, rootAux, "greeting", 0, 0644, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = iounit

	n, err := l.WriteAt(ctx, fileAux, []byte("hello"), 0)
	if err != nil || n != 5 {
		t.Fatalf("WriteAt = %d, %v", n, err)
	}

	buf := make([]byte, 5)
	n, err = l.ReadAt(ctx, fileAux, buf, 0)
	if err != nil || string(buf[:n]) != "hello" {
		t.Fatalf("ReadAt = %q, %v", buf[:n], err)
	}

	walkedAux, walkedQid, err := l.Walk(ctx, rootAux, "greeting")
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if walkedAux != fileAux {
		t.Fatalf("Walk aux = %v, want %v", walkedAux, fileAux)
	}
	if walkedQid.Type() != wire.QTFILE {
		t.Fatalf("walked qid type = %v, want QTFILE", walkedQid.Type())
	}

	attr, err := l.Getattr(ctx, fileAux, wire.GetattrBasic)
	if err != nil {
		t.Fatalf("Getattr: %v", err)
	}
	if attr.Size != 5 {
		t.Fatalf("Getattr size = %d, want 5", attr.Size)
	}
}

func TestLoopbackMkdirAndReaddir(t *testing.T) {
	l := newLoopback()
	ctx := context.Background()

	rootAux, _, err := l.Attach(ctx, "glenda", "", 0)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if _, err := l.Mkdir(ctx, rootAux, "sub", 0755, 0); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if _, _, _, err := l.Create(ctx, rootAux, "a.txt", 0, 0644, 0); err != nil {
		t.Fatalf("Create: %v", err)
	}

	data, err := l.Readdir(ctx, rootAux, 0, 4096)
	if err != nil {
		t.Fatalf("Readdir: %v", err)
	}

	var names []string
	for len(data) > 0 {
		d := wire.Dirent(data)
		names = append(names, string(d.Name()))
		entrySize := 13 + 8 + 1 + 2 + len(d.Name())
		data = data[entrySize:]
	}
	if len(names) != 2 || names[0] != "a.txt" || names[1] != "sub" {
		t.Fatalf("Readdir names = %v, want [a.txt sub]", names)
	}
}

func TestLoopbackCreateExistingFails(t *testing.T) {
	l := newLoopback()
	ctx := context.Background()

	rootAux, _, _ := l.Attach(ctx, "glenda", "", 0)
	if _, _, _, err := l.Create(ctx, rootAux, "dup", 0, 0644, 0); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, _, err := l.Create(ctx, rootAux, "dup", 0, 0644, 0); err == nil {
		t.Fatal("second Create of same name succeeded, want error")
	}
}
