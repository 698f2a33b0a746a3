package usercache

import (
	"os/user"
	"strconv"
	"sync"

	"golang.org/x/sys/unix"
)

// Unix resolves names and ids against the host's passwd/group
// databases via os/user, caching results the way uxusers.c's
// np_unix_uname2user/np_unix_uid2user cache struct passwd lookups in
// a hash table rather than re-querying NSS on every call.
type Unix struct {
	mu     sync.RWMutex
	users  map[string]User
	uids   map[uint32]User
	groups map[string]Group
	gids   map[uint32]Group
}

// NewUnix returns a ready-to-use host-backed cache.
func NewUnix() *Unix {
	return &Unix{
		users:  make(map[string]User),
		uids:   make(map[uint32]User),
		groups: make(map[string]Group),
		gids:   make(map[uint32]Group),
	}
}

func (c *Unix) Uname2User(uname string) (User, error) {
	c.mu.RLock()
	u, ok := c.users[uname]
	c.mu.RUnlock()
	if ok {
		return u, nil
	}

	pw, err := user.Lookup(uname)
	if err != nil {
		return User{}, ErrNotFound{What: "user", Key: uname}
	}
	uid, err := strconv.ParseUint(pw.Uid, 10, 32)
	if err != nil {
		return User{}, err
	}
	u = User{Name: pw.Username, Uid: uint32(uid)}
	c.store(u)
	return u, nil
}

func (c *Unix) Uid2User(uid uint32) (User, error) {
	c.mu.RLock()
	u, ok := c.uids[uid]
	c.mu.RUnlock()
	if ok {
		return u, nil
	}

	pw, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return User{}, ErrNotFound{What: "user", Key: strconv.FormatUint(uint64(uid), 10)}
	}
	u = User{Name: pw.Username, Uid: uid}
	c.store(u)
	return u, nil
}

func (c *Unix) store(u User) {
	c.mu.Lock()
	c.users[u.Name] = u
	c.uids[u.Uid] = u
	c.mu.Unlock()
}

func (c *Unix) Gname2Group(gname string) (Group, error) {
	c.mu.RLock()
	g, ok := c.groups[gname]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	grp, err := user.LookupGroup(gname)
	if err != nil {
		return Group{}, ErrNotFound{What: "group", Key: gname}
	}
	gid, err := strconv.ParseUint(grp.Gid, 10, 32)
	if err != nil {
		return Group{}, err
	}
	g = Group{Name: grp.Name, Gid: uint32(gid)}
	c.storeGroup(g)
	return g, nil
}

func (c *Unix) Gid2Group(gid uint32) (Group, error) {
	c.mu.RLock()
	g, ok := c.gids[gid]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	grp, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10))
	if err != nil {
		return Group{}, ErrNotFound{What: "group", Key: strconv.FormatUint(uint64(gid), 10)}
	}
	g = Group{Name: grp.Name, Gid: gid}
	c.storeGroup(g)
	return g, nil
}

func (c *Unix) storeGroup(g Group) {
	c.mu.Lock()
	c.groups[g.Name] = g
	c.gids[g.Gid] = g
	c.mu.Unlock()
}

// IsMember looks up u's supplementary groups via os/user and reports
// whether g is among them, matching np_unix_ismember's pass over
// u->groups (built from getgrent in np_init_user_groups).
func (c *Unix) IsMember(u User, g Group) (bool, error) {
	osUser, err := user.LookupId(strconv.FormatUint(uint64(u.Uid), 10))
	if err != nil {
		return false, ErrNotFound{What: "user", Key: u.Name}
	}
	gids, err := osUser.GroupIds()
	if err != nil {
		return false, err
	}
	want := strconv.FormatUint(uint64(g.Gid), 10)
	for _, gid := range gids {
		if gid == want {
			return true, nil
		}
	}
	return false, nil
}

// PeerCredentials resolves the User and Group of the process on the
// other end of a Unix domain socket, via SO_PEERCRED, turning a
// connection's ucred into a 9P principal without trusting any
// caller-supplied uname/aname. auth.SocketPeerID does not call it; it
// reads the peer uid itself and resolves the uname through Uname2User.
func (c *Unix) PeerCredentials(fd int) (User, Group, error) {
	cred, err := unix.GetsockoptUcred(fd, unix.SOL_SOCKET, unix.SO_PEERCRED)
	if err != nil {
		return User{}, Group{}, err
	}
	u, err := c.Uid2User(uint32(cred.Uid))
	if err != nil {
		u = User{Name: strconv.FormatUint(uint64(cred.Uid), 10), Uid: uint32(cred.Uid)}
	}
	g, err := c.Gid2Group(uint32(cred.Gid))
	if err != nil {
		g = Group{Name: strconv.FormatUint(uint64(cred.Gid), 10), Gid: uint32(cred.Gid)}
	}
	return u, g, nil
}
