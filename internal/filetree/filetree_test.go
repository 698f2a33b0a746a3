package filetree

import "testing"

func TestBasic(t *testing.T) {
	fs := New()
	fs.Put("/usr/bin", 0, nil)
	fs.Put("/usr/lib64", 0, nil)

	dir, ok := fs.Get("/usr/../usr/./././/")
	if !ok {
		t.Fatal("/usr not found")
	}
	if len(dir.Children) != 2 {
		t.Fatalf("/usr has %d children, want 2", len(dir.Children))
	}
}

func TestSameValue(t *testing.T) {
	fs := New()
	fs.Put("/usr/bin/emacs", 0, "vi")

	entry, ok := fs.Get("/usr/bin")
	if !ok {
		t.Error("/usr/bin not found")
	}
	direct, ok := fs.Get("/usr/bin/emacs")
	if !ok {
		t.Error("/usr/bin/emacs not found")
	}
	if direct.Value != "vi" {
		t.Errorf("unexpected content %v", direct.Value)
	}
	if len(entry.Children) != 1 {
		t.Errorf("/usr/bin has %d children, expected 1",
			len(entry.Children))
	} else if child := entry.Children[0]; direct.Value != child.Value {
		t.Errorf("%v != %v", direct.Value, child.Value)
	}
}

func TestMatch(t *testing.T) {
	const (
		ancestor   = "/usr"
		descendant = "/usr/local/bin/httpd"
	)
	fs := New()
	fs.Put(ancestor, 0, "foo")

	entry, ok := fs.LongestPrefix(descendant)
	if !ok {
		t.Fatalf("LongestPrefix did not find ancestor %s of %s",
			ancestor, descendant)
	}
	if entry.FullName != ancestor {
		t.Errorf("got %v, wanted %v", entry.FullName, ancestor)
	}
	if entry.Value != "foo" {
		t.Errorf("ancestor entry did not contain expected Value: "+
			"got %v, wanted \"foo\"", entry.Value)
	}
}

func TestRootIsReachable(t *testing.T) {
	fs := New()
	fs.Put("/a/b.txt", 0, nil)

	root, ok := fs.Get("/")
	if !ok {
		t.Fatal("root not found after Put")
	}
	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Children))
	}
}
