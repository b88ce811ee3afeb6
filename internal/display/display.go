// Package display renders run summaries as plain tables on standard output.
package display

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/Wh0FF24/Conveyor-belt/pkg/audit"
	"github.com/Wh0FF24/Conveyor-belt/pkg/normalizer"
)

// PrintConvertSummary prints the aggregate counters of a convert pass.
func PrintConvertSummary(s normalizer.ConvertSummary, out io.Writer) {
	fmt.Fprintln(out, "CONVERSION SUMMARY")
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Converted:\t%d\n", s.Converted)
	fmt.Fprintf(w, "  HEIC files deleted:\t%d\n", s.Deleted)
	fmt.Fprintf(w, "  Errors:\t%d\n", s.Errors)
	w.Flush()
}

// PrintRenameSummary prints the rename counters and per-class file counts.
func PrintRenameSummary(s normalizer.RenameSummary, out io.Writer) {
	fmt.Fprintln(out, "RENAME SUMMARY")
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Renamed:\t%d\n", s.Renamed)
	fmt.Fprintf(w, "  Skipped:\t%d\n", s.Skipped)
	fmt.Fprintf(w, "  Errors:\t%d\n", s.Errors)
	w.Flush()

	labels := make([]string, 0, len(s.FinalCounts))
	for label := range s.FinalCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	w = tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CLASS\tFILES")
	for _, label := range labels {
		fmt.Fprintf(w, "%s\t%d\n", label, s.FinalCounts[label])
	}
	w.Flush()
}

// PrintAuditReports prints one row per audited class plus any mismatches.
func PrintAuditReports(reports []audit.Report, out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CLASS\tCHECKED\tAGREED\tMISMATCHED\tERRORS")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", r.Class, r.Checked, r.Agreed, len(r.Mismatches), r.Errors)
	}
	w.Flush()

	for _, r := range reports {
		for _, m := range r.Mismatches {
			fmt.Fprintf(out, "  %s: labeled %s, model says %s (%.2f)\n",
				m.File, r.Class, m.Verdict.Label, m.Verdict.Confidence)
		}
	}
}
