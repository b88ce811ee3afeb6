package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

// touch creates an empty file inside dir
func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func newClass(t *testing.T, label string) ClassFolder {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, label)
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	return ClassFolder{Label: label, Dir: dir}
}

func TestClasses(t *testing.T) {
	classes := Classes("/data", Labels)

	if len(classes) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(classes))
	}

	if classes[0].Label != "Good" {
		t.Errorf("expected first label Good, got %s", classes[0].Label)
	}

	if classes[1].Dir != filepath.Join("/data", "Bad") {
		t.Errorf("unexpected dir: %s", classes[1].Dir)
	}
}

func TestExists(t *testing.T) {
	c := newClass(t, "Good")
	if !c.Exists() {
		t.Error("existing folder reported as missing")
	}

	missing := ClassFolder{Label: "Bad", Dir: filepath.Join(t.TempDir(), "Bad")}
	if missing.Exists() {
		t.Error("missing folder reported as existing")
	}
}

func TestCanonicalName(t *testing.T) {
	c := ClassFolder{Label: "Good"}
	if got := c.CanonicalName(7); got != "good7.jpg" {
		t.Errorf("expected good7.jpg, got %s", got)
	}
}

func TestSuffix(t *testing.T) {
	c := ClassFolder{Label: "Good"}

	cases := []struct {
		name string
		n    int
		ok   bool
	}{
		{"good1.jpg", 1, true},
		{"good17.jpg", 17, true},
		{"GOOD5.JPG", 5, true},
		{"Good12.Jpg", 12, true},
		{"IMG_1234.jpg", 0, false},
		{"bad3.jpg", 0, false},
		{"good.jpg", 0, false},
		{"good3.jpeg", 0, false},
		{"good3extra.jpg", 0, false},
	}

	for _, tc := range cases {
		n, ok := c.Suffix(tc.name)
		if ok != tc.ok || n != tc.n {
			t.Errorf("Suffix(%q) = (%d, %v), expected (%d, %v)", tc.name, n, ok, tc.n, tc.ok)
		}
	}
}

func TestHEICFiles(t *testing.T) {
	c := newClass(t, "Good")
	touch(t, c.Dir, "IMG_002.HEIC")
	touch(t, c.Dir, "IMG_001.heic")
	touch(t, c.Dir, "IMG_003.Heic")
	touch(t, c.Dir, "IMG_004.heif")
	touch(t, c.Dir, "good1.jpg")

	files, err := c.HEICFiles()
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 4 {
		t.Fatalf("expected 4 HEIC files, got %d: %v", len(files), files)
	}

	// Sorted by path for reproducible processing order
	if filepath.Base(files[0]) != "IMG_001.heic" {
		t.Errorf("expected IMG_001.heic first, got %s", filepath.Base(files[0]))
	}
}

func TestJPEGFilesDeduplicates(t *testing.T) {
	c := newClass(t, "Bad")
	touch(t, c.Dir, "bad1.jpg")
	touch(t, c.Dir, "IMG_100.JPG")
	touch(t, c.Dir, "IMG_099.jpg")
	touch(t, c.Dir, "note.txt")

	files, err := c.JPEGFiles()
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 JPEG files, got %d: %v", len(files), files)
	}

	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Errorf("files not sorted: %v", files)
		}
	}
}

func TestMaxSuffix(t *testing.T) {
	c := newClass(t, "Good")

	// No canonical files
	n, err := c.MaxSuffix()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected 0 for empty folder, got %d", n)
	}

	// Gaps do not matter, only the max counts
	touch(t, c.Dir, "good1.jpg")
	touch(t, c.Dir, "good3.jpg")
	touch(t, c.Dir, "good4.jpg")
	touch(t, c.Dir, "IMG_500.jpg")

	n, err = c.MaxSuffix()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("expected max suffix 4, got %d", n)
	}
}

func TestCanonicalCount(t *testing.T) {
	c := newClass(t, "Ugly")
	touch(t, c.Dir, "ugly1.jpg")
	touch(t, c.Dir, "ugly2.jpg")
	touch(t, c.Dir, "IMG_1.jpg")

	count, err := c.CanonicalCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 canonical files, got %d", count)
	}
}
