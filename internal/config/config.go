// Package config turns raw command-line options into a validated, immutable
// conversion configuration shared read-only by every conversion task.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultQuality = 90
	DefaultWorkers = 4

	// DefaultOutputDirName is created under the input directory when no
	// output directory is given.
	DefaultOutputDirName = "ConvertedFiles"
)

// Size is a bounding box in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Options holds option values as the user typed them. Populated by the CLI
// layer and handed to [New] exactly once.
type Options struct {
	InputDir        string
	OutputDir       string
	Quality         int
	Workers         int
	Resize          string
	DeleteOriginals bool
	Recursive       bool
	Verbose         bool
	AssumeYes       bool
}

// DefaultOptions returns Options with defaults applied, honoring the
// HEIC2JPG_QUALITY and HEIC2JPG_WORKERS environment overrides.
func DefaultOptions() Options {
	return Options{
		Quality: EnvInt(EnvQuality, DefaultQuality),
		Workers: EnvInt(EnvWorkers, DefaultWorkers),
	}
}

// Config is the validated run configuration. It is built once by [New] and
// passed by value; nothing mutates it afterwards.
type Config struct {
	InputDir        string // Absolute input root.
	OutputDir       string // Custom output root as given; empty selects the default.
	Quality         int    // JPEG quality, 1-100.
	Workers         int    // Concurrent conversions, >= 1.
	Resize          *Size  // Optional bounding box; nil disables resizing.
	DeleteOriginals bool
	Recursive       bool
	Verbose         bool
	AssumeYes       bool // Skip the non-empty output confirmation.
}

// New validates opts and returns the immutable Config. Every failure is a
// *SetupError wrapping ErrInvalidConfig.
func New(opts Options) (Config, error) {
	var cfg Config

	input := strings.TrimSpace(opts.InputDir)
	if input == "" {
		return cfg, invalid("input", "input directory is required")
	}
	absInput, err := filepath.Abs(input)
	if err != nil {
		return cfg, &SetupError{Op: "input", Err: err}
	}

	if opts.Quality < 1 || opts.Quality > 100 {
		return cfg, invalid("quality", "quality must be between 1 and 100, got %d", opts.Quality)
	}
	if opts.Workers < 1 {
		return cfg, invalid("workers", "worker count must be at least 1, got %d", opts.Workers)
	}

	var resize *Size
	if strings.TrimSpace(opts.Resize) != "" {
		size, err := ParseResize(opts.Resize)
		if err != nil {
			return cfg, err
		}
		resize = &size
	}

	output := strings.TrimSpace(opts.OutputDir)
	if output != "" {
		absOutput, err := filepath.Abs(output)
		if err != nil {
			return cfg, &SetupError{Op: "output", Err: err}
		}
		output = absOutput
	}

	return Config{
		InputDir:        absInput,
		OutputDir:       output,
		Quality:         opts.Quality,
		Workers:         opts.Workers,
		Resize:          resize,
		DeleteOriginals: opts.DeleteOriginals,
		Recursive:       opts.Recursive,
		Verbose:         opts.Verbose,
		AssumeYes:       opts.AssumeYes,
	}, nil
}

// ParseResize parses a "WxH" bounding box such as "1920x1080". Both
// dimensions must be positive integers; the separator may be x or X.
func ParseResize(raw string) (Size, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Size{}, invalid("resize", "resize must look like WIDTHxHEIGHT, got %q", raw)
	}
	width, errW := strconv.Atoi(strings.TrimSpace(w))
	height, errH := strconv.Atoi(strings.TrimSpace(h))
	if errW != nil || errH != nil {
		return Size{}, invalid("resize", "resize must look like WIDTHxHEIGHT, got %q", raw)
	}
	if width <= 0 || height <= 0 {
		return Size{}, invalid("resize", "resize dimensions must be positive, got %q", raw)
	}
	return Size{Width: width, Height: height}, nil
}
