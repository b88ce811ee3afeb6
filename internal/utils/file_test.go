package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !DirExists(dir) {
		t.Error("directory was not created")
	}

	// Second call on an existing directory is a no-op
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestGetFileExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.HEIC", "heic"},
		{"good1.jpg", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}
	for _, tc := range cases {
		if got := GetFileExtension(tc.in); got != tc.want {
			t.Errorf("GetFileExtension(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("existing file reported missing")
	}
	if FileExists(dir) {
		t.Error("directory must not count as file")
	}
	if FileExists(filepath.Join(dir, "nope")) {
		t.Error("missing file reported existing")
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !DirExists(dir) {
		t.Error("existing directory reported missing")
	}
	if DirExists(filepath.Join(dir, "nope")) {
		t.Error("missing directory reported existing")
	}
}
