package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Wh0FF24/Conveyor-belt/pkg/audit"
	"github.com/Wh0FF24/Conveyor-belt/pkg/normalizer"
)

func TestPrintConvertSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintConvertSummary(normalizer.ConvertSummary{Converted: 3, Deleted: 3, Errors: 1}, &buf)

	out := buf.String()
	for _, want := range []string{"Converted:", "3", "Errors:", "1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintRenameSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintRenameSummary(normalizer.RenameSummary{
		Renamed:     2,
		FinalCounts: map[string]int{"Good": 5, "Bad": 2},
	}, &buf)

	out := buf.String()
	if !strings.Contains(out, "Good") || !strings.Contains(out, "Bad") {
		t.Errorf("per-class counts missing:\n%s", out)
	}
	// Classes print in sorted order
	if strings.Index(out, "Bad") > strings.Index(out, "Good") {
		t.Errorf("classes not sorted:\n%s", out)
	}
}

func TestPrintAuditReports(t *testing.T) {
	var buf bytes.Buffer
	PrintAuditReports([]audit.Report{
		{Class: "Good", Checked: 5, Agreed: 4, Mismatches: []audit.Mismatch{
			{File: "good3.jpg", Verdict: audit.Verdict{Label: "Bad", Confidence: 0.7}},
		}},
	}, &buf)

	out := buf.String()
	if !strings.Contains(out, "good3.jpg") || !strings.Contains(out, "model says Bad") {
		t.Errorf("mismatch detail missing:\n%s", out)
	}
}
