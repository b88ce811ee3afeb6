// Package conveyorbelt provides the batch-processing side of the candy
// classification toolkit: converting phone-native HEIC photos into JPEG and
// folding every class folder's images into a dense sequential naming scheme.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		conveyorbelt "github.com/Wh0FF24/Conveyor-belt"
//	)
//
//	func main() {
//		toolkit := conveyorbelt.New()
//
//		summary, err := toolkit.Normalize("Training_Data")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("converted %d, deleted %d, errors %d\n",
//			summary.Convert.Converted, summary.Convert.Deleted, summary.Convert.Errors)
//	}
//
// The module consists of these components:
//
// 1. Dataset (pkg/dataset): class folders, canonical names, sequence counters
// 2. Normalizer (pkg/normalizer): the HEIC convert pass and legacy rename pass
// 3. Codec (pkg/codec): HEIC/JPEG/PNG/WebP decode and encode
// 4. Classify (pkg/classify): the pre-trained candy model behind OpenCV DNN
// 5. Live (pkg/live): webcam preview with prediction overlay
// 6. Viewer (pkg/viewer): dataset sample browsing
// 7. Audit (pkg/audit): label spot-checks against an Ollama vision model
//
// The camera-facing packages (classify, live, viewer) depend on OpenCV via
// gocv and are wired up in cmd/candytool; this facade only covers the pure
// filesystem pipeline so it stays usable without OpenCV installed.
//
// Every pass is idempotent: rerunning against an unchanged dataset is a
// no-op, and per-file failures never abort a batch.
package conveyorbelt

import (
	"github.com/Wh0FF24/Conveyor-belt/internal/config"
	"github.com/Wh0FF24/Conveyor-belt/pkg/dataset"
	"github.com/Wh0FF24/Conveyor-belt/pkg/normalizer"
)

// Version of the toolkit
const Version = "1.0.0"

// Toolkit is a high-level interface to the dataset pipeline.
type Toolkit struct {
	normalizer *normalizer.Normalizer
	config     *config.Config
}

// New creates a Toolkit with default configuration: labels Good/Bad/Ugly,
// JPEG quality 95, HEIC originals deleted after conversion.
func New() *Toolkit {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates a Toolkit from an explicit configuration.
func NewWithConfig(cfg *config.Config) *Toolkit {
	return &Toolkit{
		normalizer: normalizer.NewWithConfig(normalizer.Config{
			Labels:        cfg.Dataset.Labels,
			JPEGQuality:   cfg.Normalizer.JPEGQuality,
			KeepOriginals: cfg.Normalizer.KeepOriginals,
		}),
		config: cfg,
	}
}

// Normalize runs the convert pass followed by the rename pass over root.
func (t *Toolkit) Normalize(root string) (normalizer.Summary, error) {
	return t.normalizer.Run(root)
}

// Convert runs only the HEIC conversion pass.
func (t *Toolkit) Convert(root string) (normalizer.ConvertSummary, error) {
	return t.normalizer.Convert(root)
}

// RenameLegacy runs only the legacy JPEG rename pass.
func (t *Toolkit) RenameLegacy(root string) (normalizer.RenameSummary, error) {
	return t.normalizer.RenameLegacy(root)
}

// Classes resolves the configured class folders against root.
func (t *Toolkit) Classes(root string) []dataset.ClassFolder {
	return dataset.Classes(root, t.config.Dataset.Labels)
}

// GetVersion returns the toolkit version.
func GetVersion() string {
	return Version
}
