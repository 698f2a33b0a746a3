package usercache

import (
	"fmt"
	"sync"
)

// ErrUserExists is returned by Private.AddUser when uname or uid is
// already registered, matching pvusers.c's Euserexists check in
// np_priv_user_add (it looks the candidate up by both name and id
// before inserting, and refuses either collision).
var ErrUserExists = fmt.Errorf("usercache: user already exists")

// ErrGroupExists is the group-side analogue of ErrUserExists,
// matching pvusers.c's Egroupexists.
var ErrGroupExists = fmt.Errorf("usercache: group already exists")

// Private is an explicit, admin-populated user/group table: nothing
// is resolved automatically, and every entry must be added with
// AddUser/AddGroup before a client can attach as that principal.
// Grounded on pvusers.c's np_priv_userpool_create, which backs a
// server instance meant to enforce a fixed, curated identity set
// rather than trusting the host or the client's own claims.
type Private struct {
	mu      sync.RWMutex
	users   map[string]User
	uids    map[uint32]User
	groups  map[string]Group
	gids    map[uint32]Group
	members memberSet
}

// NewPrivate returns an empty Private cache with no registered users
// or groups.
func NewPrivate() *Private {
	return &Private{
		users:  make(map[string]User),
		uids:   make(map[uint32]User),
		groups: make(map[string]Group),
		gids:   make(map[uint32]Group),
	}
}

// AddUser registers uname/uid as a valid principal. It fails with
// ErrUserExists if either the name or the id is already registered.
func (c *Private) AddUser(uname string, uid uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[uname]; ok {
		return ErrUserExists
	}
	if _, ok := c.uids[uid]; ok {
		return ErrUserExists
	}
	u := User{Name: uname, Uid: uid}
	c.users[uname] = u
	c.uids[uid] = u
	return nil
}

// AddGroup registers gname/gid. It fails with ErrGroupExists if
// either is already registered.
func (c *Private) AddGroup(gname string, gid uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.groups[gname]; ok {
		return ErrGroupExists
	}
	if _, ok := c.gids[gid]; ok {
		return ErrGroupExists
	}
	g := Group{Name: gname, Gid: gid}
	c.groups[gname] = g
	c.gids[gid] = g
	return nil
}

func (c *Private) Uname2User(uname string) (User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if u, ok := c.users[uname]; ok {
		return u, nil
	}
	return User{}, ErrNotFound{What: "user", Key: uname}
}

func (c *Private) Uid2User(uid uint32) (User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if u, ok := c.uids[uid]; ok {
		return u, nil
	}
	return User{}, ErrNotFound{What: "user", Key: fmt.Sprint(uid)}
}

func (c *Private) Gname2Group(gname string) (Group, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if g, ok := c.groups[gname]; ok {
		return g, nil
	}
	return Group{}, ErrNotFound{What: "group", Key: gname}
}

func (c *Private) Gid2Group(gid uint32) (Group, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if g, ok := c.gids[gid]; ok {
		return g, nil
	}
	return Group{}, ErrNotFound{What: "group", Key: fmt.Sprint(gid)}
}

// memberSet maps a uid to the set of gids it belongs to; populated
// separately from AddUser/AddGroup since membership is many-to-many.
type memberSet map[uint32]map[uint32]bool

// AddMember records that u belongs to g. Both must already be
// registered via AddUser/AddGroup.
func (c *Private) AddMember(u User, g Group) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.members == nil {
		c.members = make(memberSet)
	}
	if c.members[u.Uid] == nil {
		c.members[u.Uid] = make(map[uint32]bool)
	}
	c.members[u.Uid][g.Gid] = true
}

func (c *Private) IsMember(u User, g Group) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.members[u.Uid][g.Gid], nil
}
