// Package viewer shows sample images from the labeled dataset folders,
// downscaled to fit the screen.
package viewer

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/Wh0FF24/Conveyor-belt/pkg/dataset"
)

// Config holds configuration for the sample viewer.
type Config struct {
	// MaxImages is the number of images shown per class.
	MaxImages int
	// MaxHeight is the display height cap; larger images are scaled down
	// preserving aspect ratio.
	MaxHeight int
	Logger    *logrus.Logger
}

// Viewer steps through dataset samples one window at a time.
type Viewer struct {
	config Config
}

// New creates a Viewer with default configuration (3 images per class,
// 800 px max height).
func New() *Viewer {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a Viewer with custom configuration.
func NewWithConfig(config Config) *Viewer {
	if config.MaxImages == 0 {
		config.MaxImages = 3
	}
	if config.MaxHeight == 0 {
		config.MaxHeight = 800
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	return &Viewer{config: config}
}

// ViewAll shows samples from every class folder under root. 'q' during any
// image stops the whole walk; any other key advances.
func (v *Viewer) ViewAll(root string, labels []string) error {
	for _, class := range dataset.Classes(root, labels) {
		quit, err := v.ViewClass(class)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return nil
}

// ViewClass shows the first MaxImages JPEGs of one class folder. It returns
// true when the user pressed 'q'.
func (v *Viewer) ViewClass(class dataset.ClassFolder) (bool, error) {
	log := v.config.Logger.WithField("class", class.Label)

	if !class.Exists() {
		log.Warnf("folder not found: %s", class.Dir)
		return false, nil
	}

	files, err := class.JPEGFiles()
	if err != nil {
		return false, fmt.Errorf("failed to list %s: %w", class.Dir, err)
	}
	if len(files) > v.config.MaxImages {
		files = files[:v.config.MaxImages]
	}
	log.Infof("viewing %d images, press any key to continue, 'q' to quit", len(files))

	for _, path := range files {
		quit, err := v.showImage(class, path)
		if err != nil {
			log.Errorf("could not load %s: %v", path, err)
			continue
		}
		if quit {
			return true, nil
		}
	}
	return false, nil
}

// showImage displays one image in its own window and waits for a key.
func (v *Viewer) showImage(class dataset.ClassFolder, path string) (bool, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return false, fmt.Errorf("unreadable image")
	}
	defer img.Close()

	w, h := img.Cols(), img.Rows()
	v.config.Logger.Infof("%s: original size %dx%d", path, w, h)

	display := img
	resized := false
	if h > v.config.MaxHeight {
		scale := float64(v.config.MaxHeight) / float64(h)
		display = gocv.NewMat()
		gocv.Resize(img, &display, image.Pt(int(float64(w)*scale), int(float64(h)*scale)), 0, 0, gocv.InterpolationArea)
		resized = true
	}
	if resized {
		defer display.Close()
	}

	window := gocv.NewWindow(fmt.Sprintf("%s - %s", class.Label, path))
	defer window.Close()
	window.IMShow(display)
	key := window.WaitKey(0)

	return key == 'q', nil
}
