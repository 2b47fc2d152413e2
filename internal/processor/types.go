package processor

import (
	"fmt"
	"time"
)

// InputFile is one discovered source image.
type InputFile struct {
	Path    string // Absolute path.
	RelPath string // Path relative to the input root, OS separators.
}

// FailureKind classifies why a single conversion failed.
type FailureKind int

const (
	KindDecode FailureKind = iota + 1
	KindResize
	KindEncode
	KindWrite
	KindInternal
)

func (k FailureKind) String() string {
	switch k {
	case KindDecode:
		return "DecodeError"
	case KindResize:
		return "ResizeError"
	case KindEncode:
		return "EncodeError"
	case KindWrite:
		return "WriteError"
	case KindInternal:
		return "InternalError"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure is the reason attached to a failed Outcome.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f Failure) Error() string {
	return f.Kind.String() + ": " + f.Message
}

// Outcome is the result of converting one InputFile. It is a success when
// Failure is nil; the remaining fields then describe the written output.
type Outcome struct {
	Input         InputFile
	OutputPath    string
	Elapsed       time.Duration
	OriginalSize  int64
	ConvertedSize int64
	Deleted       bool   // Original removed after a successful conversion.
	DeleteWarning string // Set when removing the original failed.
	ExifWarning   string // Set when the EXIF block could not be carried over.
	Failure       *Failure

	skipped bool // Rejected before reaching a worker.
}

func (o Outcome) Succeeded() bool { return o.Failure == nil }

func failed(file InputFile, elapsed time.Duration, kind FailureKind, err error) Outcome {
	return Outcome{
		Input:   file,
		Elapsed: elapsed,
		Failure: &Failure{Kind: kind, Message: err.Error()},
	}
}

// ProgressUpdate carries counter deltas for the live progress display. The
// aggregator emits one after every outcome.
type ProgressUpdate struct {
	Path           string
	TotalDelta     int
	ProcessedDelta int
	ErrorDelta     int
	BytesInDelta   int64
	BytesOutDelta  int64
}

type ScanReport struct {
	Path     string
	Details  []ScanDetail
	Insights []ScanInsight
	Err      error
}

type ScanDetail struct {
	Category string
	Values   []string
}

type ScanInsight struct {
	Kind    string
	Message string
}
