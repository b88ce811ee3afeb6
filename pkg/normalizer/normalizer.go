// Package normalizer brings every class folder of the dataset into the
// canonical naming scheme. It runs two independent, idempotent passes:
// a convert pass that turns HEIC originals into sequentially named JPEGs,
// and a rename pass that folds legacy camera-named JPEGs into the same
// sequence.
//
// All failures are per-file: they are logged, tallied into the returned
// summary, and never abort the batch. Completed conversions and renames
// stay in place even when later files fail. The process assumes it is the
// only writer, but a cloud-sync client may still move files underneath it,
// so every mutating step re-checks that its source file still exists and
// treats a vanished file as a silent skip.
package normalizer

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Wh0FF24/Conveyor-belt/pkg/codec"
	"github.com/Wh0FF24/Conveyor-belt/pkg/dataset"
)

// DecodeFunc decodes one HEIC stream into an image.
type DecodeFunc func(io.Reader) (image.Image, error)

// Config holds configuration for the normalizer.
type Config struct {
	Labels      []string
	JPEGQuality int
	// KeepOriginals leaves HEIC files in place after conversion. The
	// default is to delete them.
	KeepOriginals bool
	Decode        DecodeFunc
	Logger        *logrus.Logger
}

// Normalizer converts and renames dataset images in place.
type Normalizer struct {
	config Config
}

// ConvertSummary aggregates the outcome of a convert pass.
type ConvertSummary struct {
	Converted int
	Deleted   int
	Errors    int
}

// RenameSummary aggregates the outcome of a rename pass.
type RenameSummary struct {
	Renamed     int
	Skipped     int
	Errors      int
	FinalCounts map[string]int
}

// Summary combines both passes of a full run.
type Summary struct {
	Convert ConvertSummary
	Rename  RenameSummary
}

// New creates a Normalizer with default configuration: the fixed label set,
// JPEG quality 95, originals deleted after successful conversion, and the
// codec package's HEIF decoder.
func New() *Normalizer {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a Normalizer with custom configuration. Zero-value
// fields fall back to the defaults.
func NewWithConfig(config Config) *Normalizer {
	if config.Labels == nil {
		config.Labels = dataset.Labels
	}
	if config.JPEGQuality == 0 {
		config.JPEGQuality = 95
	}
	if config.Decode == nil {
		config.Decode = codec.DecodeHEIF
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	return &Normalizer{config: config}
}

// Run executes the convert pass followed by the rename pass. Each pass is
// independent; a second run with no filesystem changes in between is a
// no-op.
func (n *Normalizer) Run(root string) (Summary, error) {
	conv, err := n.Convert(root)
	if err != nil {
		return Summary{}, err
	}
	ren, err := n.RenameLegacy(root)
	if err != nil {
		return Summary{Convert: conv}, err
	}
	return Summary{Convert: conv, Rename: ren}, nil
}

// Convert scans every class folder for HEIC files, converts each to a JPEG
// named with the next free canonical suffix, and optionally deletes the
// original. It returns an error only when the dataset root itself is
// missing; everything below that is handled per file.
func (n *Normalizer) Convert(root string) (ConvertSummary, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return ConvertSummary{}, fmt.Errorf("dataset root not found: %s", root)
	}

	var summary ConvertSummary
	for _, class := range dataset.Classes(root, n.config.Labels) {
		log := n.config.Logger.WithField("class", class.Label)

		if !class.Exists() {
			log.Warnf("folder not found: %s", class.Dir)
			continue
		}

		heics, err := class.HEICFiles()
		if err != nil {
			log.Errorf("scan failed: %v", err)
			summary.Errors++
			continue
		}
		if len(heics) == 0 {
			log.Debug("no HEIC files found")
			continue
		}
		log.Infof("found %d HEIC files", len(heics))

		next, err := class.MaxSuffix()
		if err != nil {
			log.Errorf("suffix scan failed: %v", err)
			summary.Errors++
			continue
		}
		next++

		for _, src := range heics {
			// A sync client may have moved the file since the scan.
			if _, err := os.Stat(src); os.IsNotExist(err) {
				log.Debugf("skipping (already moved): %s", filepath.Base(src))
				continue
			}

			target := filepath.Join(class.Dir, class.CanonicalName(next))
			log.Infof("converting %s -> %s", filepath.Base(src), filepath.Base(target))

			if err := n.convertFile(src, target); err != nil {
				log.Errorf("error converting %s: %v", filepath.Base(src), err)
				summary.Errors++
				continue
			}
			summary.Converted++
			next++

			if !n.config.KeepOriginals {
				if err := os.Remove(src); err != nil {
					log.Errorf("error deleting %s: %v", filepath.Base(src), err)
					summary.Errors++
					continue
				}
				summary.Deleted++
			}
		}
	}
	return summary, nil
}

// convertFile decodes one HEIC file, flattens it to RGB and writes it as a
// JPEG at the configured quality.
func (n *Normalizer) convertFile(src, target string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open: %w", err)
	}
	defer f.Close()

	img, err := n.config.Decode(f)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	rgb := codec.ToRGB(img)
	if err := codec.SaveJPEG(rgb, target, n.config.JPEGQuality); err != nil {
		return fmt.Errorf("jpeg encode failed: %w", err)
	}
	return nil
}

// RenameLegacy folds every non-canonical JPEG in each class folder into the
// canonical sequence, continuing from the highest existing suffix. If the
// target name is already occupied the source file is skipped and its number
// is not reassigned to a different file.
func (n *Normalizer) RenameLegacy(root string) (RenameSummary, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return RenameSummary{}, fmt.Errorf("dataset root not found: %s", root)
	}

	summary := RenameSummary{FinalCounts: map[string]int{}}
	for _, class := range dataset.Classes(root, n.config.Labels) {
		log := n.config.Logger.WithField("class", class.Label)

		if !class.Exists() {
			log.Warnf("folder not found: %s", class.Dir)
			continue
		}

		jpgs, err := class.JPEGFiles()
		if err != nil {
			log.Errorf("scan failed: %v", err)
			summary.Errors++
			continue
		}

		maxNum := 0
		var toRename []string
		for _, f := range jpgs {
			if num, ok := class.Suffix(filepath.Base(f)); ok {
				if num > maxNum {
					maxNum = num
				}
			} else {
				toRename = append(toRename, f)
			}
		}
		log.Infof("already renamed: %d, need to rename: %d", len(jpgs)-len(toRename), len(toRename))

		n.renameFiles(class, toRename, maxNum, log, &summary)

		count, err := class.CanonicalCount()
		if err != nil {
			log.Errorf("final count failed: %v", err)
			summary.Errors++
			continue
		}
		summary.FinalCounts[class.Label] = count
		log.Infof("final count: %d files", count)
	}
	return summary, nil
}

// renameFiles assigns each outstanding file the next suffix after maxNum.
// An occupied target name skips the source file; the consumed number is not
// reassigned, so no other file is affected by the collision.
func (n *Normalizer) renameFiles(class dataset.ClassFolder, toRename []string, maxNum int, log *logrus.Entry, summary *RenameSummary) {
	for _, src := range toRename {
		if _, err := os.Stat(src); os.IsNotExist(err) {
			log.Debugf("skipping (already moved): %s", filepath.Base(src))
			continue
		}

		maxNum++
		target := filepath.Join(class.Dir, class.CanonicalName(maxNum))

		if _, err := os.Stat(target); err == nil {
			log.Infof("skipping (target exists): %s", filepath.Base(target))
			summary.Skipped++
			continue
		}

		log.Infof("renaming %s -> %s", filepath.Base(src), filepath.Base(target))
		if err := os.Rename(src, target); err != nil {
			log.Errorf("error renaming %s: %v", filepath.Base(src), err)
			summary.Errors++
			continue
		}
		summary.Renamed++
	}
}
