package processor

import (
	"fmt"
	"sort"
	"time"
)

// FileFailure is one line of the failure report.
type FileFailure struct {
	Path    string
	Kind    string
	Message string
}

// Summary is the aggregated state of a batch. Only the Aggregator writes it.
type Summary struct {
	OutputRoot      string
	Total           int
	Processed       int
	Succeeded       int
	Failed          int
	Failures        []FileFailure
	DeleteRequested bool
	Deleted         int
	Warnings        []FileFailure   // Soft problems on successful conversions.
	Durations       []time.Duration // One per outcome that ran a task.
	Wall            time.Duration
	BytesIn         int64
	BytesOut        int64
}

// Interrupted is the number of discovered files never dispatched.
func (s Summary) Interrupted() int {
	return s.Total - s.Processed
}

// Retained is the number of processed originals still on disk.
func (s Summary) Retained() int {
	return s.Processed - s.Deleted
}

// Average is the mean per-file conversion time over tasks that ran.
func (s Summary) Average() time.Duration {
	if len(s.Durations) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range s.Durations {
		sum += d
	}
	return sum / time.Duration(len(s.Durations))
}

// SummaryRow is one label/value line of the rendered summary.
type SummaryRow struct {
	Label string
	Value string
}

// Rows renders the summary as a fixed sequence of rows. The deletion rows
// only appear when deletion was requested.
func (s Summary) Rows() []SummaryRow {
	rows := []SummaryRow{
		{Label: "Total files processed", Value: fmt.Sprintf("%d", s.Processed)},
		{Label: "Converted", Value: fmt.Sprintf("%d", s.Succeeded)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
	}
	if n := s.Interrupted(); n > 0 {
		rows = append(rows, SummaryRow{Label: "Not started (interrupted)", Value: fmt.Sprintf("%d", n)})
	}
	rows = append(rows,
		SummaryRow{Label: "Total time", Value: s.Wall.Round(time.Millisecond).String()},
		SummaryRow{Label: "Average per file", Value: s.Average().Round(time.Millisecond).String()},
		SummaryRow{Label: "Input size", Value: FormatBytes(s.BytesIn)},
		SummaryRow{Label: "Output size", Value: FormatBytes(s.BytesOut)},
	)
	if s.DeleteRequested {
		rows = append(rows,
			SummaryRow{Label: "Originals deleted", Value: fmt.Sprintf("%d", s.Deleted)},
			SummaryRow{Label: "Originals retained", Value: fmt.Sprintf("%d", s.Retained())},
		)
	}
	return rows
}

// Aggregator folds outcomes into a Summary. It is not safe for concurrent
// use; one goroutine drains the outcome stream and calls Add.
type Aggregator struct {
	summary Summary
}

func NewAggregator(outputRoot string, total int, deleteRequested bool) *Aggregator {
	return &Aggregator{summary: Summary{
		OutputRoot:      outputRoot,
		Total:           total,
		DeleteRequested: deleteRequested,
	}}
}

// Add records one outcome and returns the matching progress delta.
func (a *Aggregator) Add(o Outcome) ProgressUpdate {
	s := &a.summary
	s.Processed++
	if !o.skipped {
		s.Durations = append(s.Durations, o.Elapsed)
	}
	update := ProgressUpdate{Path: o.Input.RelPath, ProcessedDelta: 1}

	if !o.Succeeded() {
		s.Failed++
		s.Failures = append(s.Failures, FileFailure{
			Path:    o.Input.RelPath,
			Kind:    o.Failure.Kind.String(),
			Message: o.Failure.Message,
		})
		update.ErrorDelta = 1
		return update
	}

	s.Succeeded++
	s.BytesIn += o.OriginalSize
	s.BytesOut += o.ConvertedSize
	update.BytesInDelta = o.OriginalSize
	update.BytesOutDelta = o.ConvertedSize
	if o.Deleted {
		s.Deleted++
	}
	if o.ExifWarning != "" {
		s.Warnings = append(s.Warnings, FileFailure{
			Path:    o.Input.RelPath,
			Kind:    "ExifWarning",
			Message: o.ExifWarning,
		})
	}
	if o.DeleteWarning != "" {
		s.Warnings = append(s.Warnings, FileFailure{
			Path:    o.Input.RelPath,
			Kind:    "DeleteWarning",
			Message: o.DeleteWarning,
		})
	}
	return update
}

// Finish stamps the wall time and returns the summary with failures sorted
// by path.
func (a *Aggregator) Finish(wall time.Duration) Summary {
	s := a.summary
	s.Wall = wall
	s.Failures = sortedFailures(s.Failures)
	s.Warnings = sortedFailures(s.Warnings)
	return s
}

func sortedFailures(in []FileFailure) []FileFailure {
	out := append([]FileFailure(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}
