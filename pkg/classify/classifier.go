// Package classify runs the externally trained candy classifier over camera
// frames. The model artifact is consumed as-is; nothing here trains or
// modifies it.
package classify

import (
	"fmt"
	"math"
	"strings"

	"gocv.io/x/gocv"

	"github.com/Wh0FF24/Conveyor-belt/pkg/dataset"
)

// Prediction is the classifier's verdict for one frame.
type Prediction struct {
	Label      string
	Confidence float32
	Probs      []float32
}

// Classifier scores a BGR camera frame against the fixed label set.
type Classifier interface {
	Predict(frame gocv.Mat) (Prediction, error)
	Close() error
}

// FormatProbs renders the full probability vector as a single line,
// e.g. "Bad:12% Good:80% Ugly:8%".
func FormatProbs(labels []string, probs []float32) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if i >= len(probs) {
			break
		}
		parts = append(parts, fmt.Sprintf("%s:%.0f%%", label, probs[i]*100))
	}
	return strings.Join(parts, " ")
}

// argMax returns the index of the largest probability.
func argMax(probs []float32) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}

// softmax normalizes raw logits into a probability distribution.
func softmax(logits []float32) []float32 {
	max := logits[argMax(logits)]
	out := make([]float32, len(logits))
	var sum float64
	for i, v := range logits {
		e := math.Exp(float64(v - max))
		out[i] = float32(e)
		sum += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}

// normalized reports whether the vector already looks like a probability
// distribution. Models exported with a softmax head satisfy this; raw
// logit heads do not.
func normalized(probs []float32) bool {
	var sum float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			return false
		}
		sum += float64(p)
	}
	return math.Abs(sum-1) <= 0.01
}

// prediction builds a Prediction from a raw output vector, applying softmax
// only when the model did not.
func prediction(labels []string, raw []float32) (Prediction, error) {
	if len(raw) != len(labels) {
		return Prediction{}, fmt.Errorf("model emitted %d scores for %d labels", len(raw), len(labels))
	}
	probs := raw
	if !normalized(probs) {
		probs = softmax(raw)
	}
	idx := argMax(probs)
	return Prediction{
		Label:      labels[idx],
		Confidence: probs[idx],
		Probs:      probs,
	}, nil
}

// defaultLabels is the probability-vector order of the trained model.
func defaultLabels() []string {
	return dataset.ModelLabels
}
