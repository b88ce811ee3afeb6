package audit

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// parseVerdict parses the model's JSON answer, tolerating the usual chat
// noise around it, and validates the label against the class set.
func parseVerdict(raw string, labels []string) (Verdict, error) {
	raw = sanitizeModelJSON(raw)
	if !strings.HasPrefix(raw, "{") {
		return Verdict{}, fmt.Errorf("no JSON in model response")
	}

	var v Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Verdict{}, fmt.Errorf("failed to parse model response: %w", err)
	}

	for _, label := range labels {
		if strings.EqualFold(v.Label, label) {
			v.Label = label
			if v.Confidence < 0 {
				v.Confidence = 0
			}
			if v.Confidence > 1 {
				v.Confidence = 1
			}
			return v, nil
		}
	}
	return Verdict{}, fmt.Errorf("model answered with unknown label %q", v.Label)
}

// sanitizeModelJSON removes code fences, comments and trailing commas, and
// keeps only the outermost JSON object.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	// Strip triple-backtick fences if present
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	// Remove /* ... */ block comments
	reBlock := regexp.MustCompile(`(?s)/\*.*?\*/`)
	raw = reBlock.ReplaceAllString(raw, "")

	// Remove // comments
	reLine := regexp.MustCompile(`(?m)^\s*//.*$`)
	raw = reLine.ReplaceAllString(raw, "")
	reInline := regexp.MustCompile(`(?m)//.*$`)
	raw = reInline.ReplaceAllString(raw, "")

	// Remove trailing commas before } or ]
	reTrailing := regexp.MustCompile(`,(\s*[}\]])`)
	raw = reTrailing.ReplaceAllString(raw, "$1")

	// Keep only the outermost {...}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}
