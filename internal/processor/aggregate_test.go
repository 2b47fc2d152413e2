package processor

import (
	"errors"
	"testing"
	"time"
)

func TestAggregator_Tallies(t *testing.T) {
	agg := NewAggregator("/out", 4, true)

	outcomes := []Outcome{
		{Input: InputFile{RelPath: "b.heic"}, Elapsed: 30 * time.Millisecond, OriginalSize: 300, ConvertedSize: 200, Deleted: true},
		failed(InputFile{RelPath: "z.heic"}, 10*time.Millisecond, KindDecode, errors.New("bad header")),
		{Input: InputFile{RelPath: "a.heic"}, Elapsed: 20 * time.Millisecond, OriginalSize: 100, ConvertedSize: 50, DeleteWarning: "permission denied", ExifWarning: "too large"},
		failed(InputFile{RelPath: "c.heic"}, 20*time.Millisecond, KindWrite, errors.New("disk full")),
	}

	var processed, errs int
	var bytesIn int64
	for _, o := range outcomes {
		u := agg.Add(o)
		processed += u.ProcessedDelta
		errs += u.ErrorDelta
		bytesIn += u.BytesInDelta
		if u.Path != o.Input.RelPath {
			t.Errorf("update path %q, want %q", u.Path, o.Input.RelPath)
		}
	}
	if processed != 4 || errs != 2 || bytesIn != 400 {
		t.Errorf("progress deltas = %d/%d/%d", processed, errs, bytesIn)
	}

	s := agg.Finish(time.Second)
	if s.Processed != 4 || s.Succeeded != 2 || s.Failed != 2 {
		t.Errorf("counts = %d/%d/%d", s.Processed, s.Succeeded, s.Failed)
	}
	if s.BytesIn != 400 || s.BytesOut != 250 {
		t.Errorf("bytes = %d/%d", s.BytesIn, s.BytesOut)
	}
	if s.Deleted != 1 || s.Retained() != 3 {
		t.Errorf("deleted/retained = %d/%d", s.Deleted, s.Retained())
	}
	if s.Average() != 20*time.Millisecond {
		t.Errorf("Average = %v, want 20ms", s.Average())
	}
	if len(s.Failures) != 2 || s.Failures[0].Path != "c.heic" || s.Failures[1].Path != "z.heic" {
		t.Errorf("failures not sorted by path: %+v", s.Failures)
	}
	if s.Failures[1].Kind != "DecodeError" || s.Failures[1].Message != "bad header" {
		t.Errorf("failure detail = %+v", s.Failures[1])
	}
	if len(s.Warnings) != 2 || s.Warnings[0].Kind != "ExifWarning" || s.Warnings[1].Kind != "DeleteWarning" {
		t.Errorf("warnings = %+v", s.Warnings)
	}
	if s.Interrupted() != 0 {
		t.Errorf("Interrupted = %d", s.Interrupted())
	}
}

func TestSummary_Rows(t *testing.T) {
	s := Summary{Total: 3, Processed: 3, Succeeded: 2, Failed: 1, Wall: 1500 * time.Millisecond, BytesIn: 2048}

	labels := func(rows []SummaryRow) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Label
		}
		return out
	}

	want := []string{"Total files processed", "Converted", "Failed", "Total time", "Average per file", "Input size", "Output size"}
	rows := s.Rows()
	if got := labels(rows); !sliceEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	if rows[0].Value != "3" || rows[3].Value != "1.5s" || rows[5].Value != "2.0 KiB" {
		t.Errorf("values = %+v", rows)
	}

	s.DeleteRequested = true
	s.Deleted = 2
	rows = s.Rows()
	last := rows[len(rows)-2:]
	if last[0].Label != "Originals deleted" || last[0].Value != "2" || last[1].Value != "1" {
		t.Errorf("delete rows = %+v", last)
	}

	s.Total = 5
	found := false
	for _, r := range s.Rows() {
		if r.Label == "Not started (interrupted)" && r.Value == "2" {
			found = true
		}
	}
	if !found {
		t.Error("interrupted row missing")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAggregator_SkippedOutcomesNotAveraged(t *testing.T) {
	agg := NewAggregator("/out", 2, false)
	agg.Add(Outcome{Input: InputFile{RelPath: "a.heic"}, Elapsed: 30 * time.Millisecond})

	collision := failed(InputFile{RelPath: "a.heif"}, 0, KindWrite, errors.New("output a.jpg already produced by a.heic"))
	collision.skipped = true
	agg.Add(collision)

	s := agg.Finish(time.Second)
	if s.Processed != 2 || s.Failed != 1 {
		t.Errorf("counts = %d/%d", s.Processed, s.Failed)
	}
	if len(s.Durations) != 1 || s.Average() != 30*time.Millisecond {
		t.Errorf("durations = %v, average = %v, want only the task that ran", s.Durations, s.Average())
	}
}
