package usercache

import "testing"

func TestSimpleRemembersPresentedNames(t *testing.T) {
	c := NewSimple()
	u1, err := c.Uname2User("glenda")
	if err != nil {
		t.Fatalf("Uname2User: %v", err)
	}
	u2, err := c.Uname2User("glenda")
	if err != nil {
		t.Fatalf("Uname2User (second): %v", err)
	}
	if u1 != u2 {
		t.Errorf("got different Users for repeated lookups of the same uname")
	}
	if _, err := c.Uid2User(1000); err == nil {
		t.Error("Uid2User should always miss for a Simple cache")
	}
}

func TestSimpleIsMemberAlwaysFalse(t *testing.T) {
	c := NewSimple()
	u, _ := c.Uname2User("glenda")
	g, _ := c.Gname2Group("wheel")
	ok, err := c.IsMember(u, g)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if ok {
		t.Error("IsMember should always report false for a Simple cache")
	}
}

func TestPrivateRejectsDuplicateUser(t *testing.T) {
	c := NewPrivate()
	if err := c.AddUser("glenda", 1000); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if err := c.AddUser("glenda", 1001); err != ErrUserExists {
		t.Errorf("duplicate uname: got %v, want ErrUserExists", err)
	}
	if err := c.AddUser("boyd", 1000); err != ErrUserExists {
		t.Errorf("duplicate uid: got %v, want ErrUserExists", err)
	}
}

func TestPrivateLookupAndMembership(t *testing.T) {
	c := NewPrivate()
	if err := c.AddUser("glenda", 1000); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if err := c.AddGroup("sys", 10); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	u, err := c.Uname2User("glenda")
	if err != nil {
		t.Fatalf("Uname2User: %v", err)
	}
	g, err := c.Gid2Group(10)
	if err != nil {
		t.Fatalf("Gid2Group: %v", err)
	}

	ok, err := c.IsMember(u, g)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if ok {
		t.Fatal("IsMember should be false before AddMember")
	}

	c.AddMember(u, g)
	ok, err = c.IsMember(u, g)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if !ok {
		t.Fatal("IsMember should be true after AddMember")
	}
}

func TestPrivateUnknownLookupFails(t *testing.T) {
	c := NewPrivate()
	if _, err := c.Uname2User("nobody"); err == nil {
		t.Error("expected ErrNotFound for unregistered uname")
	}
}
