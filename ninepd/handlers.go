package ninepd

import (
	"context"
	"io"
	"net"

	"github.com/ninefs/ninepd/wire"
)

func (c *Conn) handleAttach(ctx context.Context, m wire.Tattach) bool {
	uname := string(m.Uname())
	aname := string(m.Aname())

	if c.srv.Auth != nil {
		nc, _ := c.rwc.(net.Conn)
		if err := c.srv.Auth.Authenticate(ctx, nc, uname, aname); err != nil {
			c.rerror(m.Tag(), &wire.Error{Kind: wire.KindPermission, Msg: err.Error()})
			return false
		}
	}

	user, err := c.srv.users().Uname2User(uname)
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}

	aux, qid, err := c.srv.Backend.Attach(ctx, uname, aname, user.Uid)
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}

	f, err := c.fids.Create(m.Fid(), qid, user.Uid, aux)
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	f.Decref()

	c.respond(func(enc *wire.Encoder) error { return enc.Rattach(m.Tag(), qid) })
	return true
}

func (c *Conn) handleWalk(ctx context.Context, m wire.Twalk) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	samefid := m.Newfid() == m.Fid()

	n := m.Nwname()
	if n == 0 {
		if !samefid {
			nf, err := c.fids.Create(m.Newfid(), f.Qid, f.Uid, f.Aux)
			if err != nil {
				c.rerror(m.Tag(), err)
				return false
			}
			nf.Decref()
		}
		c.respond(func(enc *wire.Encoder) error { return enc.Rwalk(m.Tag()) })
		return true
	}

	walker, ok := c.srv.Backend.(Walker)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}

	qids := make([]wire.Qid, 0, n)
	aux := f.Aux
	for i := 0; i < n; i++ {
		newAux, qid, err := walker.Walk(ctx, aux, string(m.Wname(i)))
		if err != nil {
			break
		}
		aux = newAux
		qids = append(qids, qid)
	}

	full := len(qids) == n

	if samefid {
		switch {
		case full:
			// newfid == fid: there is only one fid to mutate, so a
			// full walk replaces its identity in place instead of
			// going through Create (which would fail with
			// ErrFidInUse against the still-live fid).
			f.Qid = qids[len(qids)-1]
			f.Aux = aux
		case len(qids) > 0:
			// Some but not all elements resolved: the client asked
			// the walked-to identity to replace fid itself, but
			// leaving fid unaffected (as a failed walk must) while
			// also having consumed part of the path is undefined, so
			// refuse outright rather than guess.
			c.rerror(m.Tag(), &wire.Error{Kind: wire.KindBadMessage, Msg: "partial walk with newfid == fid"})
			return false
		}
		// len(qids) == 0: fid is left untouched, same as the
		// newfid != fid case below.
	} else if full {
		nf, err := c.fids.Create(m.Newfid(), qids[len(qids)-1], f.Uid, aux)
		if err != nil {
			c.rerror(m.Tag(), err)
			return false
		}
		nf.Decref()
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rwalk(m.Tag(), qids...) })
	return true
}

func (c *Conn) handleLopen(ctx context.Context, m wire.Tlopen) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	opener, ok := c.srv.Backend.(Opener)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	qid, iounit, err := opener.Open(ctx, f.Aux, m.Flags())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	f.Qid = qid
	c.respond(func(enc *wire.Encoder) error { return enc.Rlopen(m.Tag(), qid, iounit) })
	return true
}

func (c *Conn) handleLcreate(ctx context.Context, m wire.Tlcreate) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	creator, ok := c.srv.Backend.(Creator)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	newAux, qid, iounit, err := creator.Create(ctx, f.Aux, string(m.Name()), m.Flags(), m.Mode(), m.Gid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	f.Aux = newAux
	f.Qid = qid
	c.respond(func(enc *wire.Encoder) error { return enc.Rlcreate(m.Tag(), qid, iounit) })
	return true
}

func (c *Conn) handleMkdir(ctx context.Context, m wire.Tmkdir) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	mkdirer, ok := c.srv.Backend.(Mkdirer)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	qid, err := mkdirer.Mkdir(ctx, f.Aux, string(m.Name()), m.Mode(), m.Gid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rmkdir(m.Tag(), qid) })
	return true
}

func (c *Conn) handleRead(ctx context.Context, m wire.Tread) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	reader, ok := c.srv.Backend.(ReaderAt)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	count := m.Count()
	if uint32(c.msize) > 0 && count > c.msize {
		count = c.msize
	}
	buf := make([]byte, count)
	n, err := reader.ReadAt(ctx, f.Aux, buf, int64(m.Offset()))
	if err != nil && err != io.EOF {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { _, werr := enc.Rread(m.Tag(), buf[:n]); return werr })
	return true
}

func (c *Conn) handleWrite(ctx context.Context, m wire.Twrite) bool {
	defer m.Close()

	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	writer, ok := c.srv.Backend.(WriterAt)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	data, err := io.ReadAll(m)
	if err != nil {
		c.rerror(m.Tag(), &wire.Error{Kind: wire.KindIO, Msg: err.Error()})
		return false
	}
	n, err := writer.WriteAt(ctx, f.Aux, data, int64(m.Offset()))
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rwrite(m.Tag(), uint32(n)) })
	return true
}

func (c *Conn) handleReaddir(ctx context.Context, m wire.Treaddir) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	direr, ok := c.srv.Backend.(Readdirer)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	data, err := direr.Readdir(ctx, f.Aux, m.Offset(), m.Count())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rreaddir(m.Tag(), data) })
	return true
}

func (c *Conn) handleGetattr(ctx context.Context, m wire.Tgetattr) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	getter, ok := c.srv.Backend.(Getattrer)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	attr, err := getter.Getattr(ctx, f.Aux, m.RequestMask())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rgetattr(m.Tag(), attr) })
	return true
}

func (c *Conn) handleSetattr(ctx context.Context, m wire.Tsetattr) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	setter, ok := c.srv.Backend.(Setattrer)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	err = setter.Setattr(ctx, f.Aux, m.Valid(), m.Mode(), m.Uid(), m.Gid(), m.Size(),
		m.AtimeSec(), m.AtimeNsec(), m.MtimeSec(), m.MtimeNsec())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rsetattr(m.Tag()) })
	return true
}

func (c *Conn) handleRename(ctx context.Context, m wire.Trename) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()
	df, err := c.fids.Find(m.Dfid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer df.Decref()

	renamer, ok := c.srv.Backend.(Renamer)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	if err := renamer.Rename(ctx, f.Aux, df.Aux, string(m.Name())); err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rrename(m.Tag()) })
	return true
}

func (c *Conn) handleRenameat(ctx context.Context, m wire.Trenameat) bool {
	odf, err := c.fids.Find(m.Olddirfid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer odf.Decref()
	ndf, err := c.fids.Find(m.Newdirfid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer ndf.Decref()

	renamer, ok := c.srv.Backend.(Renameater)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	err = renamer.Renameat(ctx, odf.Aux, string(m.Oldname()), ndf.Aux, string(m.Newname()))
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rrenameat(m.Tag()) })
	return true
}

func (c *Conn) handleSymlink(ctx context.Context, m wire.Tsymlink) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	linker, ok := c.srv.Backend.(Symlinker)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	qid, err := linker.Symlink(ctx, f.Aux, string(m.Name()), string(m.Target()), m.Gid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rsymlink(m.Tag(), qid) })
	return true
}

func (c *Conn) handleLink(ctx context.Context, m wire.Tlink) bool {
	df, err := c.fids.Find(m.Dfid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer df.Decref()
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	linker, ok := c.srv.Backend.(Linker)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	if err := linker.Link(ctx, df.Aux, f.Aux, string(m.Name())); err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rlink(m.Tag()) })
	return true
}

func (c *Conn) handleMknod(ctx context.Context, m wire.Tmknod) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	mknoder, ok := c.srv.Backend.(Mknoder)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	qid, err := mknoder.Mknod(ctx, f.Aux, string(m.Name()), m.Mode(), m.Major(), m.Minor(), m.Gid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rmknod(m.Tag(), qid) })
	return true
}

func (c *Conn) handleReadlink(ctx context.Context, m wire.Treadlink) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	linker, ok := c.srv.Backend.(Readlinker)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	target, err := linker.Readlink(ctx, f.Aux)
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rreadlink(m.Tag(), target) })
	return true
}

func (c *Conn) handleStatfs(ctx context.Context, m wire.Tstatfs) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	fs, ok := c.srv.Backend.(Statfser)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	st, err := fs.Statfs(ctx, f.Aux)
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error {
		return enc.Rstatfs(m.Tag(), st.Type, st.Bsize, st.Blocks, st.Bfree, st.Bavail, st.Files, st.Ffree, st.Fsid, st.Namelen)
	})
	return true
}

func (c *Conn) handleLock(ctx context.Context, m wire.Tlock) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	locker, ok := c.srv.Backend.(Locker)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	status, err := locker.Lock(ctx, f.Aux, m.Type(), m.Flags(), m.Start(), m.Length(), m.ProcID(), string(m.ClientID()))
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rlock(m.Tag(), status) })
	return true
}

func (c *Conn) handleGetlock(ctx context.Context, m wire.Tgetlock) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	locker, ok := c.srv.Backend.(Getlocker)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	ltype, start, length, procID, clientID, err := locker.Getlock(
		ctx, f.Aux, m.Type(), m.Start(), m.Length(), m.ProcID(), string(m.ClientID()))
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error {
		return enc.Rgetlock(m.Tag(), ltype, start, length, procID, clientID)
	})
	return true
}

func (c *Conn) handleXattrwalk(ctx context.Context, m wire.Txattrwalk) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	xw, ok := c.srv.Backend.(Xattrwalker)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	newAux, size, err := xw.Xattrwalk(ctx, f.Aux, string(m.Name()))
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	nf, err := c.fids.Create(m.Attrfid(), f.Qid, f.Uid, newAux)
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	nf.Decref()
	c.respond(func(enc *wire.Encoder) error { return enc.Rxattrwalk(m.Tag(), size) })
	return true
}

func (c *Conn) handleXattrcreate(ctx context.Context, m wire.Txattrcreate) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	xc, ok := c.srv.Backend.(Xattrcreater)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	newAux, err := xc.Xattrcreate(ctx, f.Aux, string(m.Name()), m.Size(), m.Flag())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	f.Aux = newAux
	c.respond(func(enc *wire.Encoder) error { return enc.Rxattrcreate(m.Tag()) })
	return true
}

func (c *Conn) handleFsync(ctx context.Context, m wire.Tfsync) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	syncer, ok := c.srv.Backend.(Fsyncer)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	if err := syncer.Fsync(ctx, f.Aux, m.Datasync() != 0); err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rfsync(m.Tag()) })
	return true
}

func (c *Conn) handleUnlinkat(ctx context.Context, m wire.Tunlinkat) bool {
	f, err := c.fids.Find(m.Dirfid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	defer f.Decref()

	unlinker, ok := c.srv.Backend.(Unlinkater)
	if !ok {
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	if err := unlinker.Unlinkat(ctx, f.Aux, string(m.Name()), m.Flags()); err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Runlinkat(m.Tag()) })
	return true
}

func (c *Conn) handleRemove(ctx context.Context, m wire.Tremove) bool {
	f, err := c.fids.Find(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}

	remover, ok := c.srv.Backend.(Remover)
	if !ok {
		f.Decref()
		c.fids.Clunk(m.Fid())
		c.rerror(m.Tag(), ErrNotSupported)
		return false
	}
	err = remover.Remove(ctx, f.Aux)
	f.Decref()
	c.fids.Clunk(m.Fid())
	if err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rremove(m.Tag()) })
	return true
}

func (c *Conn) handleClunk(ctx context.Context, m wire.Tclunk) bool {
	if err := c.fids.Clunk(m.Fid()); err != nil {
		c.rerror(m.Tag(), err)
		return false
	}
	c.respond(func(enc *wire.Encoder) error { return enc.Rclunk(m.Tag()) })
	return true
}
