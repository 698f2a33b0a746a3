package wire

// msgParseLUT dispatches a verified, fully-buffered message to a
// validator/constructor for its concrete type. Twrite/Rread payloads
// may still be streaming in from the underlying reader; those are
// handled specially by the Decoder before reaching this table.
var msgParseLUT = [msgMax]func(msg) (Msg, error){
	msgRlerror: parseRlerror,

	msgTstatfs: parseTstatfs,
	msgRstatfs: parseRstatfs,

	msgTlopen: parseTlopen,
	msgRlopen: parseRlopen,

	msgTlcreate: parseTlcreate,
	msgRlcreate: parseRlcreate,

	msgTsymlink: parseTsymlink,
	msgRsymlink: parseRsymlink,

	msgTmknod: parseTmknod,
	msgRmknod: parseRmknod,

	msgTrename: parseTrename,
	msgRrename: parseRrename,

	msgTreadlink: parseTreadlink,
	msgRreadlink: parseRreadlink,

	msgTgetattr: parseTgetattr,
	msgRgetattr: parseRgetattr,

	msgTsetattr: parseTsetattr,
	msgRsetattr: parseRsetattr,

	msgTxattrwalk: parseTxattrwalk,
	msgRxattrwalk: parseRxattrwalk,

	msgTxattrcreate: parseTxattrcreate,
	msgRxattrcreate: parseRxattrcreate,

	msgTreaddir: parseTreaddir,
	msgRreaddir: parseRreaddir,

	msgTfsync: parseTfsync,
	msgRfsync: parseRfsync,

	msgTlock: parseTlock,
	msgRlock: parseRlock,

	msgTgetlock: parseTgetlock,
	msgRgetlock: parseRgetlock,

	msgTlink: parseTlink,
	msgRlink: parseRlink,

	msgTmkdir: parseTmkdir,
	msgRmkdir: parseRmkdir,

	msgTrenameat: parseTrenameat,
	msgRrenameat: parseRrenameat,

	msgTunlinkat: parseTunlinkat,
	msgRunlinkat: parseRunlinkat,

	msgTversion: parseTversion,
	msgRversion: parseRversion,
	msgTauth:    parseTauth,
	msgRauth:    parseRauth,
	msgTattach:  parseTattach,
	msgRattach:  parseRattach,
	msgRerror:   parseRerror,
	msgTflush:   parseTflush,
	msgRflush:   parseRflush,
	msgTwalk:    parseTwalk,
	msgRwalk:    parseRwalk,
	msgTopen:    parseTopen,
	msgRopen:    parseRopen,
	msgTcreate:  parseTcreate,
	msgRcreate:  parseRcreate,
	msgTclunk:   parseTclunk,
	msgRclunk:   parseRclunk,
	msgTremove:  parseTremove,
	msgRremove:  parseRremove,
	msgTstat:    parseTstat,
	msgRstat:    parseRstat,
	msgTwstat:   parseTwstat,
	msgRwstat:   parseRwstat,
	msgTread:    parseTread,
	msgRwrite:   parseRwrite,
	// msgTwrite and msgRread are parsed directly by the Decoder, since
	// their payload may stream from the underlying reader rather than
	// sit fully-buffered.
}

func verifyQid(q Qid) error {
	if !verifyQidType(q.Type()) {
		return errInvalidQidType
	}
	return nil
}

func parseTversion(m msg) (Msg, error) {
	ver, _, err := verifyField(m.Body()[4:], true, 0)
	if err != nil {
		return nil, err
	}
	if err := verifyString(ver); err != nil {
		return nil, err
	}
	if len(ver) > MaxVersionLen {
		return nil, errLongVersion
	}
	return Tversion(m), nil
}

func parseRversion(m msg) (Msg, error) {
	if _, err := parseTversion(m); err != nil {
		return nil, err
	}
	return Rversion(m), nil
}

func verifyUnameAname(body []byte) error {
	uname, rest, err := verifyField(body, false, 2)
	if err != nil {
		return err
	} else if err := verifyString(uname); err != nil {
		return err
	} else if len(uname) > MaxUidLen {
		return errLongUsername
	}
	aname, _, err := verifyField(rest, true, 0)
	if err != nil {
		return err
	} else if err := verifyString(aname); err != nil {
		return err
	} else if len(aname) > MaxAttachLen {
		return errLongAname
	}
	return nil
}

func parseTauth(m msg) (Msg, error) {
	if err := verifyUnameAname(m.Body()[4:]); err != nil {
		return nil, err
	}
	return Tauth(m), nil
}

func parseRauth(m msg) (Msg, error) {
	var q Qid
	copy(q[:], m.Body()[0:13])
	if err := verifyQid(q); err != nil {
		return nil, err
	}
	return Rauth(m), nil
}

func parseTattach(m msg) (Msg, error) {
	if err := verifyUnameAname(m.Body()[8:]); err != nil {
		return nil, err
	}
	return Tattach(m), nil
}

func parseRattach(m msg) (Msg, error) {
	if _, err := parseRauth(m); err != nil {
		return nil, err
	}
	return Rattach(m), nil
}

func parseRerror(m msg) (Msg, error) {
	str, _, err := verifyField(m.Body(), true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyString(str); err != nil {
		return nil, err
	} else if len(str) > MaxErrorLen {
		return nil, errLongError
	}
	return Rerror(m), nil
}

func parseTflush(m msg) (Msg, error) { return Tflush(m), nil }
func parseRflush(m msg) (Msg, error) { return Rflush(m), nil }

func parseTwalk(m msg) (Msg, error) {
	nwelem := guint16(m.Body()[8:10])
	if nwelem > MaxWElem {
		return nil, errMaxWElem
	}
	elems := m.Body()[10:]
	var err error
	var el []byte
	for i := uint16(0); i < nwelem; i++ {
		last := i == nwelem-1
		el, elems, err = verifyField(elems, last, int(nwelem-i-1)*2)
		if err != nil {
			return nil, err
		} else if err := verifyPathElem(el); err != nil {
			return nil, err
		} else if len(el) > MaxFilenameLen {
			return nil, errLongFilename
		}
	}
	return Twalk(m), nil
}

func parseRwalk(m msg) (Msg, error) {
	nwqid := guint16(m.Body()[0:2])
	if nwqid > MaxWElem {
		return nil, errMaxWElem
	}
	want := int64(nwqid)*13 + 2
	if n := int64(len(m.Body())); n != want {
		if n < want {
			return nil, errUnderSize
		}
		return nil, errOverSize
	}
	for i := uint16(0); i < nwqid; i++ {
		var q Qid
		copy(q[:], m.Body()[2+i*13:2+i*13+13])
		if err := verifyQid(q); err != nil {
			return nil, err
		}
	}
	return Rwalk(m), nil
}

func parseTread(m msg) (Msg, error)  { return Tread(m), nil }
func parseRwrite(m msg) (Msg, error) { return Rwrite(m), nil }

func parseTopen(m msg) (Msg, error) { return Topen(m), nil }

func parseRopen(m msg) (Msg, error) {
	var q Qid
	copy(q[:], m.Body()[0:13])
	if err := verifyQid(q); err != nil {
		return nil, err
	}
	return Ropen(m), nil
}

func parseTcreate(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[4:], false, 5)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	} else if len(name) > MaxFilenameLen {
		return nil, errLongFilename
	}
	return Tcreate(m), nil
}

func parseRcreate(m msg) (Msg, error) {
	if _, err := parseRopen(m); err != nil {
		return nil, err
	}
	return Rcreate(m), nil
}

func parseTclunk(m msg) (Msg, error)  { return Tclunk(m), nil }
func parseRclunk(m msg) (Msg, error)  { return Rclunk(m), nil }
func parseTremove(m msg) (Msg, error) { return Tremove(m), nil }
func parseRremove(m msg) (Msg, error) { return Rremove(m), nil }
func parseTstat(m msg) (Msg, error)   { return Tstat(m), nil }

func parseRstat(m msg) (Msg, error) {
	stat, _, err := verifyField(m.Body(), true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyStat(stat); err != nil {
		return nil, err
	}
	return Rstat(m), nil
}

func parseTwstat(m msg) (Msg, error) {
	stat, _, err := verifyField(m.Body()[4:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyStat(stat); err != nil {
		return nil, err
	}
	return Twstat(m), nil
}

func parseRwstat(m msg) (Msg, error) { return Rwstat(m), nil }

func parseRlerror(m msg) (Msg, error) { return Rlerror(m), nil }

func parseTstatfs(m msg) (Msg, error) { return Tstatfs(m), nil }
func parseRstatfs(m msg) (Msg, error) { return Rstatfs(m), nil }

func parseTlopen(m msg) (Msg, error) { return Tlopen(m), nil }

func parseRlopen(m msg) (Msg, error) {
	var q Qid
	copy(q[:], m.Body()[0:13])
	if err := verifyQid(q); err != nil {
		return nil, err
	}
	return Rlopen(m), nil
}

func parseTlcreate(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[4:], false, 12)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	} else if len(name) > MaxFilenameLen {
		return nil, errLongFilename
	}
	return Tlcreate(m), nil
}

func parseRlcreate(m msg) (Msg, error) {
	if _, err := parseRlopen(m); err != nil {
		return nil, err
	}
	return Rlcreate(m), nil
}

func parseTsymlink(m msg) (Msg, error) {
	name, rest, err := verifyField(m.Body()[4:], false, 6)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	}
	target, _, err := verifyField(rest, false, 4)
	if err != nil {
		return nil, err
	} else if err := verifyString(target); err != nil {
		return nil, err
	}
	return Tsymlink(m), nil
}

func parseRsymlink(m msg) (Msg, error) {
	var q Qid
	copy(q[:], m.Body()[0:13])
	if err := verifyQid(q); err != nil {
		return nil, err
	}
	return Rsymlink(m), nil
}

func parseTmknod(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[4:], false, 16)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	}
	return Tmknod(m), nil
}

func parseRmknod(m msg) (Msg, error) {
	var q Qid
	copy(q[:], m.Body()[0:13])
	if err := verifyQid(q); err != nil {
		return nil, err
	}
	return Rmknod(m), nil
}

func parseTrename(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[8:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	}
	return Trename(m), nil
}

func parseRrename(m msg) (Msg, error) { return Rrename(m), nil }

func parseTreadlink(m msg) (Msg, error) { return Treadlink(m), nil }

func parseRreadlink(m msg) (Msg, error) {
	target, _, err := verifyField(m.Body(), true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyString(target); err != nil {
		return nil, err
	}
	return Rreadlink(m), nil
}

func parseTgetattr(m msg) (Msg, error) { return Tgetattr(m), nil }

func parseRgetattr(m msg) (Msg, error) {
	var q Qid
	copy(q[:], m.Body()[8:21])
	if err := verifyQid(q); err != nil {
		return nil, err
	}
	return Rgetattr(m), nil
}

func parseTsetattr(m msg) (Msg, error) { return Tsetattr(m), nil }
func parseRsetattr(m msg) (Msg, error) { return Rsetattr(m), nil }

func parseTxattrwalk(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[8:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyString(name); err != nil {
		return nil, err
	}
	return Txattrwalk(m), nil
}

func parseRxattrwalk(m msg) (Msg, error) { return Rxattrwalk(m), nil }

func parseTxattrcreate(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[4:], false, 12)
	if err != nil {
		return nil, err
	} else if err := verifyString(name); err != nil {
		return nil, err
	}
	return Txattrcreate(m), nil
}

func parseRxattrcreate(m msg) (Msg, error) { return Rxattrcreate(m), nil }

func parseTreaddir(m msg) (Msg, error) { return Treaddir(m), nil }

func parseRreaddir(m msg) (Msg, error) {
	count := guint32(m.Body()[0:4])
	if int64(count)+4 != int64(len(m.Body())) {
		return nil, errOverSize
	}
	return Rreaddir(m), nil
}

func parseTfsync(m msg) (Msg, error) { return Tfsync(m), nil }
func parseRfsync(m msg) (Msg, error) { return Rfsync(m), nil }

func parseTlock(m msg) (Msg, error) {
	cid, _, err := verifyField(m.Body()[29:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyString(cid); err != nil {
		return nil, err
	}
	return Tlock(m), nil
}

func parseRlock(m msg) (Msg, error) { return Rlock(m), nil }

func parseTgetlock(m msg) (Msg, error) {
	cid, _, err := verifyField(m.Body()[25:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyString(cid); err != nil {
		return nil, err
	}
	return Tgetlock(m), nil
}

func parseRgetlock(m msg) (Msg, error) {
	cid, _, err := verifyField(m.Body()[21:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyString(cid); err != nil {
		return nil, err
	}
	return Rgetlock(m), nil
}

func parseTlink(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[8:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	}
	return Tlink(m), nil
}

func parseRlink(m msg) (Msg, error) { return Rlink(m), nil }

func parseTmkdir(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[4:], false, 8)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	}
	return Tmkdir(m), nil
}

func parseRmkdir(m msg) (Msg, error) {
	var q Qid
	copy(q[:], m.Body()[0:13])
	if err := verifyQid(q); err != nil {
		return nil, err
	}
	return Rmkdir(m), nil
}

func parseTrenameat(m msg) (Msg, error) {
	oldname, rest, err := verifyField(m.Body()[4:], false, 6)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(oldname); err != nil {
		return nil, err
	}
	newname, _, err := verifyField(rest[4:], true, 0)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(newname); err != nil {
		return nil, err
	}
	return Trenameat(m), nil
}

func parseRrenameat(m msg) (Msg, error) { return Rrenameat(m), nil }

func parseTunlinkat(m msg) (Msg, error) {
	name, _, err := verifyField(m.Body()[4:], false, 4)
	if err != nil {
		return nil, err
	} else if err := verifyPathElem(name); err != nil {
		return nil, err
	}
	return Tunlinkat(m), nil
}

func parseRunlinkat(m msg) (Msg, error) { return Runlinkat(m), nil }
