package filesystem

import (
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cases := map[string]string{
		"/etc/rules.yaml": "/etc/rules.yaml",
		"~/rules.yaml":    filepath.Join("/home/tester", "rules.yaml"),
		"rules.yaml":      filepath.Join("/home/tester", AppDirName, "rules.yaml"),
		"sub/history.db":  filepath.Join("/home/tester", AppDirName, "sub", "history.db"),
	}
	for in, want := range cases {
		if got := ResolvePath(in); got != want {
			t.Fatalf("ResolvePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !DirExists(dir) {
		t.Fatalf("expected %s to exist", dir)
	}
	if DirExists(filepath.Join(dir, "missing")) {
		t.Fatal("expected missing dir to be reported absent")
	}
}
