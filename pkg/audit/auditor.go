// Package audit spot-checks dataset labels with a local Ollama vision
// model. It samples canonical files from each class folder, asks the model
// which class the candy belongs to and reports disagreements with the
// folder label. The dataset is never modified.
package audit

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/ollama/ollama/api"
	"github.com/sirupsen/logrus"

	"github.com/Wh0FF24/Conveyor-belt/pkg/codec"
	"github.com/Wh0FF24/Conveyor-belt/pkg/dataset"
)

// Verdict is the model's answer for one image.
type Verdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Mismatch records one disagreement between folder label and model verdict.
type Mismatch struct {
	File    string
	Verdict Verdict
}

// Report aggregates an audit over one class folder.
type Report struct {
	Class      string
	Checked    int
	Agreed     int
	Errors     int
	Mismatches []Mismatch
}

// Config holds configuration for the auditor.
type Config struct {
	// URL of the Ollama server; any path component is ignored.
	URL   string
	Model string
	// Labels the model may answer with; defaults to the fixed class set.
	Labels []string
	// SampleSize caps how many files are checked per class.
	SampleSize int
	// SendMaxDim bounds the long side of images sent to the model, 0 keeps
	// the original size.
	SendMaxDim int
	// SendQuality is the JPEG quality of images sent to the model.
	SendQuality int
	Logger      *logrus.Logger
}

// Auditor wraps the Ollama API client.
type Auditor struct {
	client *api.Client
	config Config
}

// New creates an Auditor talking to the given Ollama server.
func New(config Config) (*Auditor, error) {
	if config.URL == "" {
		config.URL = "http://localhost:11434"
	}
	if config.Labels == nil {
		config.Labels = dataset.Labels
	}
	if config.SampleSize == 0 {
		config.SampleSize = 5
	}
	if config.SendMaxDim == 0 {
		config.SendMaxDim = 1024
	}
	if config.SendQuality == 0 {
		config.SendQuality = 85
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	parsed, err := url.Parse(config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}

	return &Auditor{
		client: api.NewClient(base, http.DefaultClient),
		config: config,
	}, nil
}

// AuditClass checks the first SampleSize canonical files of a class folder.
// Per-file failures are counted and never abort the audit.
func (a *Auditor) AuditClass(ctx context.Context, class dataset.ClassFolder) (Report, error) {
	report := Report{Class: class.Label}
	log := a.config.Logger.WithField("class", class.Label)

	if !class.Exists() {
		log.Warnf("folder not found: %s", class.Dir)
		return report, nil
	}

	files, err := class.JPEGFiles()
	if err != nil {
		return report, fmt.Errorf("failed to list %s: %w", class.Dir, err)
	}

	var canonical []string
	for _, f := range files {
		if _, ok := class.Suffix(filepath.Base(f)); ok {
			canonical = append(canonical, f)
		}
	}
	if len(canonical) > a.config.SampleSize {
		canonical = canonical[:a.config.SampleSize]
	}

	for _, path := range canonical {
		verdict, err := a.AuditImage(ctx, path)
		if err != nil {
			log.Errorf("audit failed for %s: %v", filepath.Base(path), err)
			report.Errors++
			continue
		}
		report.Checked++
		if strings.EqualFold(verdict.Label, class.Label) {
			report.Agreed++
		} else {
			log.Infof("mismatch: %s labeled %s, model says %s (%.2f)",
				filepath.Base(path), class.Label, verdict.Label, verdict.Confidence)
			report.Mismatches = append(report.Mismatches, Mismatch{File: path, Verdict: verdict})
		}
	}
	return report, nil
}

// AuditImage asks the model to classify a single image file.
func (a *Auditor) AuditImage(ctx context.Context, path string) (Verdict, error) {
	// Longer default timeout: vision models on CPU are slow
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}

	payload, err := a.prepare(path)
	if err != nil {
		return Verdict{}, err
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: a.config.Model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: buildPrompt(a.config.Labels),
				Images:  []api.ImageData{api.ImageData(payload)},
			},
		},
		Stream: &streamFalse,
	}

	var content string
	err = a.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("ollama chat error: %w", err)
	}
	if content == "" {
		return Verdict{}, fmt.Errorf("empty response from ollama")
	}

	return parseVerdict(content, a.config.Labels)
}

// prepare loads an image, bounds its long side and JPEG-encodes it for the
// model.
func (a *Auditor) prepare(path string) ([]byte, error) {
	img, err := codec.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	if max := a.config.SendMaxDim; max > 0 {
		b := img.Bounds()
		if b.Dx() > max || b.Dy() > max {
			if b.Dx() >= b.Dy() {
				img = imaging.Resize(img, max, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, max, imaging.Lanczos)
			}
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: a.config.SendQuality}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

// buildPrompt constrains the model to the class set and strict JSON.
func buildPrompt(labels []string) string {
	return fmt.Sprintf(`You are grading candy photos for a classification dataset.

The only valid classes are: %s.

Return JSON only:
{"label": "string", "confidence": 0.0}

HARD RULES
- "label" must be exactly one of the valid classes.
- "confidence" is your certainty in [0,1].
- JSON only. No markdown, no code fences, no comments, no trailing commas.`,
		strings.Join(labels, ", "))
}
