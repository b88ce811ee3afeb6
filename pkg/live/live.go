// Package live runs the classifier against a webcam feed and overlays the
// prediction on screen. The camera, window and frame buffers are owned by
// the Preview and released when Run returns.
package live

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/Wh0FF24/Conveyor-belt/internal/utils"
	"github.com/Wh0FF24/Conveyor-belt/pkg/classify"
	"github.com/Wh0FF24/Conveyor-belt/pkg/dataset"
)

// classColors maps each label to its overlay color.
var classColors = map[string]color.RGBA{
	"Good": {0, 255, 0, 0},
	"Bad":  {255, 0, 0, 0},
	"Ugly": {255, 165, 0, 0},
}

var (
	white = color.RGBA{255, 255, 255, 0}
	gray  = color.RGBA{200, 200, 200, 0}
	black = color.RGBA{0, 0, 0, 0}
	red   = color.RGBA{255, 0, 0, 0}
)

// Config holds configuration for the live preview.
type Config struct {
	WindowTitle string
	// CameraIndexes is tried in order until a device opens.
	CameraIndexes []int
	// PreviewSize is the side length of the model-input thumbnail.
	PreviewSize int
	// SaveDir receives frames captured with the 's' key.
	SaveDir string
	Logger  *logrus.Logger
}

// Preview is the interactive classification loop.
type Preview struct {
	classifier classify.Classifier
	config     Config
}

// New creates a Preview with default configuration.
func New(classifier classify.Classifier) *Preview {
	return NewWithConfig(classifier, Config{})
}

// NewWithConfig creates a Preview with custom configuration. Zero-value
// fields fall back to the defaults.
func NewWithConfig(classifier classify.Classifier, config Config) *Preview {
	if config.WindowTitle == "" {
		config.WindowTitle = "Live Candy Classification - Press 'q' to quit"
	}
	if config.CameraIndexes == nil {
		config.CameraIndexes = []int{0, 1}
	}
	if config.PreviewSize == 0 {
		config.PreviewSize = 128
	}
	if config.SaveDir == "" {
		config.SaveDir = "."
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	return &Preview{classifier: classifier, config: config}
}

// openCamera tries each configured index until one opens.
func (p *Preview) openCamera() (*gocv.VideoCapture, error) {
	for _, idx := range p.config.CameraIndexes {
		cam, err := gocv.OpenVideoCapture(idx)
		if err == nil && cam.IsOpened() {
			p.config.Logger.Infof("opened camera index %d", idx)
			return cam, nil
		}
		if cam != nil {
			cam.Close()
		}
		p.config.Logger.Warnf("could not open camera index %d", idx)
	}
	return nil, fmt.Errorf("could not open any camera (tried %v)", p.config.CameraIndexes)
}

// Run blocks until the user quits or the camera stops delivering frames.
// Keys: 'q' quit, 's' save the raw frame, 'p' pause/resume.
func (p *Preview) Run() error {
	if err := utils.EnsureDir(p.config.SaveDir); err != nil {
		return fmt.Errorf("failed to create save dir: %w", err)
	}

	cam, err := p.openCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	window := gocv.NewWindow(p.config.WindowTitle)
	defer window.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	log := p.config.Logger
	log.Info("controls: 'q' quit, 's' save frame, 'p' pause/resume")

	paused := false
	captures := 0

	for {
		if !paused {
			if ok := cam.Read(&frame); !ok || frame.Empty() {
				return fmt.Errorf("could not read frame from camera")
			}
		}

		pred, err := p.classifier.Predict(frame)
		if err != nil {
			log.Errorf("prediction failed: %v", err)
			continue
		}

		display := frame.Clone()
		p.drawOverlay(&display, frame, pred, paused)
		window.IMShow(display)
		display.Close()

		switch window.WaitKey(1) {
		case 'q':
			return nil
		case 's':
			name := filepath.Join(p.config.SaveDir, fmt.Sprintf("capture_%d.jpg", captures))
			if ok := gocv.IMWrite(name, frame); !ok {
				log.Errorf("could not save %s", name)
				break
			}
			log.Infof("saved %s - predicted %s (%.1f%%)", name, pred.Label, pred.Confidence*100)
			captures++
		case 'p':
			paused = !paused
			if paused {
				log.Info("paused")
			} else {
				log.Info("resumed")
			}
		}
	}
}

// drawOverlay paints the prediction panel, center crosshair, model-input
// thumbnail and pause indicator onto display.
func (p *Preview) drawOverlay(display *gocv.Mat, frame gocv.Mat, pred classify.Prediction, paused bool) {
	boxColor, ok := classColors[pred.Label]
	if !ok {
		boxColor = white
	}

	// Prediction panel top-left
	panel := image.Rect(10, 10, 350, 130)
	gocv.Rectangle(display, panel, black, -1)
	gocv.Rectangle(display, panel, boxColor, 2)
	gocv.PutText(display, fmt.Sprintf("Prediction: %s", pred.Label),
		image.Pt(20, 45), gocv.FontHersheySimplex, 0.9, boxColor, 2)
	gocv.PutText(display, fmt.Sprintf("Confidence: %.1f%%", pred.Confidence*100),
		image.Pt(20, 75), gocv.FontHersheySimplex, 0.7, white, 2)
	gocv.PutText(display, classify.FormatProbs(dataset.ModelLabels, pred.Probs),
		image.Pt(20, 110), gocv.FontHersheySimplex, 0.5, gray, 1)

	// Center crosshair to help align the candy
	w, h := display.Cols(), display.Rows()
	cx, cy := w/2, h/2
	gocv.Line(display, image.Pt(cx-30, cy), image.Pt(cx+30, cy), white, 1)
	gocv.Line(display, image.Pt(cx, cy-30), image.Pt(cx, cy+30), white, 1)

	// Model-input thumbnail top-right
	size := p.config.PreviewSize
	px, py := w-size-20, 20
	if px > 0 && py+size < h {
		thumb := gocv.NewMat()
		gocv.Resize(frame, &thumb, image.Pt(size, size), 0, 0, gocv.InterpolationArea)
		roi := display.Region(image.Rect(px, py, px+size, py+size))
		thumb.CopyTo(&roi)
		roi.Close()
		thumb.Close()

		gocv.Rectangle(display, image.Rect(px-2, py-2, px+size+2, py+size+2), white, 2)
		gocv.PutText(display, "Model Input", image.Pt(px, py+size+20),
			gocv.FontHersheySimplex, 0.5, white, 1)
	}

	if paused {
		gocv.PutText(display, "PAUSED", image.Pt(w/2-50, h-30),
			gocv.FontHersheySimplex, 1, red, 2)
	}
}
