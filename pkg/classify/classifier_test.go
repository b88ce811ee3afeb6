package classify

import (
	"math"
	"path/filepath"
	"testing"
)

func TestArgMax(t *testing.T) {
	cases := []struct {
		probs []float32
		want  int
	}{
		{[]float32{0.1, 0.8, 0.1}, 1},
		{[]float32{0.9, 0.05, 0.05}, 0},
		{[]float32{0.2, 0.3, 0.5}, 2},
		{[]float32{0.5, 0.5}, 0}, // ties resolve to the first index
	}
	for _, tc := range cases {
		if got := argMax(tc.probs); got != tc.want {
			t.Errorf("argMax(%v) = %d, expected %d", tc.probs, got, tc.want)
		}
	}
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{2, 1, 0.1})

	var sum float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probability out of range: %v", probs)
		}
		sum += float64(p)
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("probabilities sum to %f, expected 1", sum)
	}
	if argMax(probs) != 0 {
		t.Errorf("largest logit should stay largest: %v", probs)
	}
}

func TestNormalized(t *testing.T) {
	if !normalized([]float32{0.1, 0.8, 0.1}) {
		t.Error("softmax output should be recognized as normalized")
	}
	if normalized([]float32{2, 1, 0.1}) {
		t.Error("raw logits should not be recognized as normalized")
	}
	if normalized([]float32{0.4, 0.4, 0.4}) {
		t.Error("sum well above 1 should not pass")
	}
}

func TestPrediction(t *testing.T) {
	labels := []string{"Bad", "Good", "Ugly"}

	// Already-normalized output is used as-is
	p, err := prediction(labels, []float32{0.1, 0.7, 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if p.Label != "Good" {
		t.Errorf("expected Good, got %s", p.Label)
	}
	if p.Confidence != 0.7 {
		t.Errorf("expected confidence 0.7, got %f", p.Confidence)
	}

	// Logit output gets softmaxed first
	p, err = prediction(labels, []float32{-1, 0.5, 3})
	if err != nil {
		t.Fatal(err)
	}
	if p.Label != "Ugly" {
		t.Errorf("expected Ugly, got %s", p.Label)
	}
	if p.Confidence <= 0 || p.Confidence > 1 {
		t.Errorf("confidence out of range: %f", p.Confidence)
	}
}

func TestPredictionLengthMismatch(t *testing.T) {
	if _, err := prediction([]string{"Bad", "Good", "Ugly"}, []float32{0.5, 0.5}); err == nil {
		t.Error("expected error for score/label length mismatch")
	}
}

func TestFormatProbs(t *testing.T) {
	got := FormatProbs([]string{"Bad", "Good", "Ugly"}, []float32{0.12, 0.80, 0.08})
	want := "Bad:12% Good:80% Ugly:8%"
	if got != want {
		t.Errorf("FormatProbs = %q, expected %q", got, want)
	}
}

func TestNewDNNMissingModel(t *testing.T) {
	_, err := NewDNN(Config{ModelPath: filepath.Join(t.TempDir(), "missing.onnx")})
	if err == nil {
		t.Error("expected fail-fast error for missing model file")
	}
}
