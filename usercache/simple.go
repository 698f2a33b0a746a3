package usercache

import (
	"strconv"
	"sync"
)

// Simple remembers whatever uname is presented to it the first time
// and hands back the same User on every subsequent lookup, without
// ever consulting the host. Uid2User always misses, matching
// simpleusers.c's np_simpl_uid2user, which unconditionally returns
// NULL: a Simple cache has no way to invent a name for a bare uid.
// It's useful for a server with no real concept of identity, where
// any name presented in Tattach should just be accepted.
type Simple struct {
	mu     sync.Mutex
	users  map[string]User
	groups map[string]Group
}

// NewSimple returns an empty, ready-to-use Simple cache.
func NewSimple() *Simple {
	return &Simple{
		users:  make(map[string]User),
		groups: make(map[string]Group),
	}
}

func (c *Simple) Uname2User(uname string) (User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if u, ok := c.users[uname]; ok {
		return u, nil
	}
	u := User{Name: uname, Uid: ^uint32(0)}
	c.users[uname] = u
	return u, nil
}

func (c *Simple) Uid2User(uid uint32) (User, error) {
	return User{}, ErrNotFound{What: "user", Key: strconv.FormatUint(uint64(uid), 10)}
}

func (c *Simple) Gname2Group(gname string) (Group, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.groups[gname]; ok {
		return g, nil
	}
	g := Group{Name: gname, Gid: ^uint32(0)}
	c.groups[gname] = g
	return g, nil
}

func (c *Simple) Gid2Group(gid uint32) (Group, error) {
	return Group{}, ErrNotFound{What: "group", Key: strconv.FormatUint(uint64(gid), 10)}
}

// IsMember always reports false; a Simple cache doesn't track
// membership, matching np_simpl_ismember's "XXX something fancier?"
// stub.
func (c *Simple) IsMember(User, Group) (bool, error) {
	return false, nil
}
