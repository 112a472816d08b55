package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cases := map[string]string{
		"":          "",
		"/tmp":      "/tmp",
		"~":         home,
		"~/sub/dir": filepath.Join(home, "sub", "dir"),
	}
	for in, want := range cases {
		got, err := ExpandHome(in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ExpandHome(%q)=%q want %q", in, got, want)
		}
	}
}

func TestPathExists(t *testing.T) {
	d := t.TempDir()
	if !PathExists(d) {
		t.Fatalf("temp dir should exist")
	}
	if PathExists(filepath.Join(d, "missing")) {
		t.Fatalf("missing file reported as existing")
	}
}

func TestFirstExisting(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	if err := os.WriteFile(filepath.Join(home, "b.yaml"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, ok := FirstExisting("", filepath.Join(home, "a.yaml"), "~/b.yaml")
	if !ok || got != filepath.Join(home, "b.yaml") {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := FirstExisting(filepath.Join(home, "nope")); ok {
		t.Fatalf("expected no match")
	}
}
