// Package dataset models the class-labeled folder layout of the training
// data and the canonical sequential naming scheme used inside it.
//
// The dataset root contains one subdirectory per class label. Canonically
// named files follow the pattern <lowercase label><positive integer>.jpg
// (good1.jpg, bad17.jpg), with no zero padding. All state is derived from
// the filesystem on every call; nothing is cached or persisted.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Labels is the fixed class label set, in folder order.
var Labels = []string{"Good", "Bad", "Ugly"}

// ModelLabels is the class label set in the order the classifier emits
// probabilities (alphabetical, matching the training directory scan).
var ModelLabels = []string{"Bad", "Good", "Ugly"}

// heifExts are the extensions treated as HEIC-family input, matched
// case-insensitively.
var heifExts = []string{".heic", ".heif"}

// ClassFolder is one class label's directory under the dataset root.
type ClassFolder struct {
	Label string
	Dir   string
}

// Classes resolves the given labels against a dataset root. Folders are not
// required to exist; callers check Exists per class and skip missing ones.
func Classes(root string, labels []string) []ClassFolder {
	out := make([]ClassFolder, 0, len(labels))
	for _, label := range labels {
		out = append(out, ClassFolder{
			Label: label,
			Dir:   filepath.Join(root, label),
		})
	}
	return out
}

// Exists reports whether the class directory is present.
func (c ClassFolder) Exists() bool {
	info, err := os.Stat(c.Dir)
	return err == nil && info.IsDir()
}

// CanonicalName returns the canonical filename for suffix n.
func (c ClassFolder) CanonicalName(n int) string {
	return strings.ToLower(c.Label) + strconv.Itoa(n) + ".jpg"
}

// Pattern returns the canonical-name matcher for this class,
// case-insensitive, with the numeric suffix captured.
func (c ClassFolder) Pattern() *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(strings.ToLower(c.Label)) + `(\d+)\.jpg$`)
}

// Suffix parses the canonical numeric suffix out of a filename. The second
// return is false when the name is not canonical for this class.
func (c ClassFolder) Suffix(name string) (int, bool) {
	m := c.Pattern().FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// HEICFiles lists HEIC-family files in the class folder, sorted by path for
// reproducible processing order.
func (c ClassFolder) HEICFiles() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read class folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, want := range heifExts {
			if strings.EqualFold(ext, want) {
				files = append(files, filepath.Join(c.Dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// JPEGFiles lists JPEG files in the class folder. Case-variant globs are
// unioned through a set because cloud-sync clients have been seen listing
// the same file twice. The result is sorted by path.
func (c ClassFolder) JPEGFiles() ([]string, error) {
	seen := map[string]struct{}{}
	for _, pattern := range []string{"*.jpg", "*.JPG"} {
		matches, err := filepath.Glob(filepath.Join(c.Dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// MaxSuffix returns the highest canonical numeric suffix in the class
// folder, or 0 when no canonical files exist. The next free number is
// always MaxSuffix()+1 regardless of gaps.
func (c ClassFolder) MaxSuffix() (int, error) {
	files, err := c.JPEGFiles()
	if err != nil {
		return 0, err
	}

	max := 0
	for _, f := range files {
		if n, ok := c.Suffix(filepath.Base(f)); ok && n > max {
			max = n
		}
	}
	return max, nil
}

// CanonicalCount counts files matching <label>*.jpg, the per-class figure
// reported after a rename pass.
func (c ClassFolder) CanonicalCount() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.Dir, strings.ToLower(c.Label)+"*.jpg"))
	if err != nil {
		return 0, fmt.Errorf("failed to count canonical files: %w", err)
	}
	return len(matches), nil
}
