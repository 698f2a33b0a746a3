package wire

// Validating messages becomes more complicated if we allow arbitrarily
// long values for the non-fixed fields of a message. To simplify
// things, we place limits on how big any of these fields can be.

// MaxVersionLen is the maximum length of the protocol version string.
const MaxVersionLen = 20

// MaxOffset is the maximum value of the offset field in Tread/Twrite.
const MaxOffset = 1<<63 - 1

// MaxFilenameLen is the maximum length of a single path element.
const MaxFilenameLen = 512

// MaxWElem is the maximum number of path elements in a single Twalk.
const MaxWElem = 16

// MaxUidLen is the maximum length of a username or group name.
const MaxUidLen = 45

// MaxErrorLen is the maximum length of the Ename field of a legacy
// Rerror message.
const MaxErrorLen = 512

// MaxAttachLen is the maximum length of the aname field of Tattach and
// Tauth requests.
const MaxAttachLen = 255

// MinBufSize is the minimum size of a Decoder's internal buffer: large
// enough to hold a maximally-sized Twalk.
const MinBufSize = MaxWElem*(MaxFilenameLen+2) + 17 // size[4] type[1] tag[2] fid[4] newfid[4] nwname[2]

// DefaultBufSize is the default size of a Decoder's internal buffer.
const DefaultBufSize = 1 << 20

// Layout of the 9P2000 stat structure, see stat(5).
const minStatLen = 49
const maxStatLen = minStatLen + MaxFilenameLen + (MaxUidLen * 3)

// MaxFileLen bounds the length field of a stat structure.
const MaxFileLen = 1<<63 - 1

const maxWalkLen = MaxWElem * MaxFilenameLen

// maxMsgSize is the largest message the wire format can express.
const maxMsgSize = 1<<32 - 1

// minMsgSize is the smallest possible message: size[4] type[1] tag[2].
const minMsgSize = 4 + 1 + 2

// DirentHdrSize is the fixed-size portion (qid[13] offset[8] type[1]
// and the name's 2-byte length) of each entry returned by Rreaddir,
// not counting the name's bytes.
const DirentHdrSize = 13 + 8 + 1 + 2

// minSizeLUT holds the minimum size of a message, not counting the
// 4-byte size header, indexed by message type.
var minSizeLUT = [msgMax]int16{
	msgRlerror: 7, // Rlerror tag[2] ecode[4]

	msgTstatfs: 7,  // Tstatfs tag[2] fid[4]
	msgRstatfs: 63, // Rstatfs tag[2] type[4] bsize[4] blocks[8] bfree[8] bavail[8] files[8] ffree[8] fsid[8] namelen[4]

	msgTlopen: 11, // Tlopen tag[2] fid[4] flags[4]
	msgRlopen: 20, // Rlopen tag[2] qid[13] iounit[4]

	msgTlcreate: 21, // Tlcreate tag[2] fid[4] name[s] flags[4] mode[4] gid[4]
	msgRlcreate: 20, // Rlcreate tag[2] qid[13] iounit[4]

	msgTsymlink: 15, // Tsymlink tag[2] fid[4] name[s] symtgt[s] gid[4]
	msgRsymlink: 16, // Rsymlink tag[2] qid[13]

	msgTmknod: 25, // Tmknod tag[2] fid[4] name[s] mode[4] major[4] minor[4] gid[4]
	msgRmknod: 16, // Rmknod tag[2] qid[13]

	msgTrename: 13, // Trename tag[2] fid[4] dfid[4] name[s]
	msgRrename: 3,  // Rrename tag[2]

	msgTreadlink: 7, // Treadlink tag[2] fid[4]
	msgRreadlink: 5, // Rreadlink tag[2] target[s]

	msgTgetattr: 15,  // Tgetattr tag[2] fid[4] request_mask[8]
	msgRgetattr: 156, // Rgetattr tag[2] valid[8] qid[13] mode[4] uid[4] gid[4] nlink[8] rdev[8] size[8] blksize[8] blocks[8] 4*(atime,mtime,ctime,btime)[8] gen[8] data_version[8]

	msgTsetattr: 63, // Tsetattr tag[2] fid[4] valid[4] mode[4] uid[4] gid[4] size[8] atime_sec[8] atime_nsec[8] mtime_sec[8] mtime_nsec[8]
	msgRsetattr: 3,  // Rsetattr tag[2]

	msgTxattrwalk: 13, // Txattrwalk tag[2] fid[4] attrfid[4] name[s]
	msgRxattrwalk: 11, // Rxattrwalk tag[2] size[8]

	msgTxattrcreate: 21, // Txattrcreate tag[2] fid[4] name[s] size[8] flag[4]
	msgRxattrcreate: 3,  // Rxattrcreate tag[2]

	msgTreaddir: 19, // Treaddir tag[2] fid[4] offset[8] count[4]
	msgRreaddir: 7,  // Rreaddir tag[2] count[4] data[count]

	msgTfsync: 11, // Tfsync tag[2] fid[4] datasync[4]
	msgRfsync: 3,  // Rfsync tag[2]

	msgTlock: 34, // Tlock tag[2] fid[4] type[1] flags[4] start[8] length[8] proc_id[4] client_id[s]
	msgRlock: 4,  // Rlock tag[2] status[1]

	msgTgetlock: 30, // Tgetlock tag[2] fid[4] type[1] start[8] length[8] proc_id[4] client_id[s]
	msgRgetlock: 26, // Rgetlock tag[2] type[1] start[8] length[8] proc_id[4] client_id[s]

	msgTlink: 13, // Tlink tag[2] dfid[4] fid[4] name[s]
	msgRlink: 3,  // Rlink tag[2]

	msgTmkdir: 17, // Tmkdir tag[2] fid[4] name[s] mode[4] gid[4]
	msgRmkdir: 16, // Rmkdir tag[2] qid[13]

	msgTrenameat: 15, // Trenameat tag[2] olddirfid[4] oldname[s] newdirfid[4] newname[s]
	msgRrenameat: 3,  // Rrenameat tag[2]

	msgTunlinkat: 13, // Tunlinkat tag[2] dirfid[4] name[s] flags[4]
	msgRunlinkat: 3,  // Runlinkat tag[2]

	msgTversion: 9,              // Tversion tag[2] msize[4] version[s]
	msgRversion: 9,              // Rversion tag[2] msize[4] version[s]
	msgTauth:    11,             // Tauth tag[2] afid[4] uname[s] aname[s]
	msgRauth:    16,             // Rauth tag[2] aqid[13]
	msgTattach:  15,             // Tattach tag[2] fid[4] afid[4] uname[s] aname[s]
	msgRattach:  16,             // Rattach tag[2] qid[13]
	msgRerror:   5,              // Rerror tag[2] ename[s]
	msgTflush:   5,              // Tflush tag[2] oldtag[2]
	msgRflush:   3,              // Rflush tag[2]
	msgTwalk:    13,             // Twalk tag[2] fid[4] newfid[4] nwname[2] nwname*(wname[s])
	msgRwalk:    5,              // Rwalk tag[2] nwqid[2] nwqid*(wqid[13])
	msgTopen:    8,              // Topen tag[2] fid[4] mode[1]
	msgRopen:    20,             // Ropen tag[2] qid[13] iounit[4]
	msgTcreate:  14,             // Tcreate tag[2] fid[4] name[s] perm[4] mode[1]
	msgRcreate:  20,             // Rcreate tag[2] qid[13] iounit[4]
	msgTread:    19,             // Tread tag[2] fid[4] offset[8] count[4]
	msgRread:    7,              // Rread tag[2] count[4] data[count]
	msgTwrite:   19,             // Twrite tag[2] fid[4] offset[8] count[4] data[count]
	msgRwrite:   7,              // Rwrite tag[2] count[4]
	msgTclunk:   7,              // Tclunk tag[2] fid[4]
	msgRclunk:   3,              // Rclunk tag[2]
	msgTremove:  7,              // Tremove tag[2] fid[4]
	msgRremove:  3,              // Rremove tag[2]
	msgTstat:    7,              // Tstat tag[2] fid[4]
	msgRstat:    5 + minStatLen, // Rstat tag[2] stat[n]
	msgTwstat:   9,              // Twstat tag[2] fid[4] stat[n]
	msgRwstat:   3,              // Rwstat tag[2]
}

// fixedSize reports whether a message type has no variable-length
// fields, and so must match minSizeLUT exactly.
func fixedSize(t uint8) bool {
	switch t {
	case msgTversion, msgRversion, msgTauth, msgTattach, msgRerror,
		msgTwalk, msgRwalk, msgTcreate, msgRread, msgTwrite, msgRstat, msgTwstat,
		msgTlcreate, msgTsymlink, msgTmknod, msgTrename,
		msgRreadlink, msgTxattrwalk,
		msgTxattrcreate, msgRreaddir, msgTlock, msgTgetlock, msgRgetlock,
		msgTlink, msgTmkdir, msgTrenameat, msgTunlinkat:
		return false
	}
	return true
}
