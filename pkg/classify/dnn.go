package classify

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/Wh0FF24/Conveyor-belt/internal/utils"
)

// Config holds configuration for the DNN classifier.
type Config struct {
	// ModelPath is an ONNX export of the trained model.
	ModelPath string
	// InputSize is the square side length the model expects.
	InputSize int
	// Labels in model output order; defaults to the fixed set.
	Labels []string
}

// DNNClassifier runs the trained model through OpenCV's DNN module.
type DNNClassifier struct {
	net    gocv.Net
	config Config
}

// NewDNN loads the model artifact and fails fast when it is missing or
// unreadable, before any camera or filesystem activity starts.
func NewDNN(config Config) (*DNNClassifier, error) {
	if config.InputSize == 0 {
		config.InputSize = 128
	}
	if config.Labels == nil {
		config.Labels = defaultLabels()
	}

	if !utils.FileExists(config.ModelPath) {
		return nil, fmt.Errorf("model file not found: %s", config.ModelPath)
	}

	net := gocv.ReadNetFromONNX(config.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", config.ModelPath)
	}

	return &DNNClassifier{net: net, config: config}, nil
}

// Labels returns the label set in model output order.
func (c *DNNClassifier) Labels() []string {
	return c.config.Labels
}

// Predict resizes the BGR frame to the model input size, swaps channels to
// RGB and scores it.
func (c *DNNClassifier) Predict(frame gocv.Mat) (Prediction, error) {
	if frame.Empty() {
		return Prediction{}, fmt.Errorf("empty frame")
	}

	size := image.Pt(c.config.InputSize, c.config.InputSize)
	blob := gocv.BlobFromImage(frame, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	c.net.SetInput(blob, "")
	out := c.net.Forward("")
	defer out.Close()

	raw := make([]float32, len(c.config.Labels))
	for i := range raw {
		raw[i] = out.GetFloatAt(0, i)
	}
	return prediction(c.config.Labels, raw)
}

// Close releases the underlying network.
func (c *DNNClassifier) Close() error {
	return c.net.Close()
}
