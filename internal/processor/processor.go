package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"heic2jpg/internal/codec"
	"heic2jpg/internal/config"
)

// Deps are the collaborators Run needs besides the configuration.
type Deps struct {
	Decoder codec.Decoder
	Encoder codec.Encoder
	Logger  *zap.Logger

	// Confirm is asked before writing into a non-empty output directory.
	// Returning false aborts the run with ErrDeclined. A nil Confirm declines
	// unless cfg.AssumeYes is set.
	Confirm func(outputRoot string) (bool, error)
}

// Run converts every HEIC/HEIF file under cfg.InputDir. Setup problems
// (missing input, declined overwrite, unusable output directory) are returned
// as *config.SetupError before anything is converted. Per-file failures never
// stop the batch; they are reported in the returned Summary. When no files
// match, Run returns an empty summary and ErrEmptySet.
//
// Outcomes are drained by this goroutine alone, which owns the Summary and
// sends one ProgressUpdate per outcome on updates (when non-nil). Per-file
// problems are logged at Info; the Summary is where they are reported.
func Run(ctx context.Context, cfg config.Config, deps Deps, updates chan<- ProgressUpdate) (Summary, error) {
	started := time.Now()
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Decoder == nil {
		deps.Decoder = codec.HEIFDecoder{}
	}
	if deps.Encoder == nil {
		deps.Encoder = codec.JPEGEncoder{}
	}

	outputRoot, err := ResolveOutput(cfg)
	if err != nil {
		return Summary{}, &config.SetupError{Op: "output", Err: err}
	}
	summary := Summary{OutputRoot: outputRoot, DeleteRequested: cfg.DeleteOriginals}

	files, err := Discover(cfg.InputDir, outputRoot, cfg.Recursive)
	if err != nil {
		return summary, err
	}
	log.Debug("discovered files", zap.Int("count", len(files)), zap.String("input", cfg.InputDir))

	_, nonEmpty, err := OutputState(outputRoot)
	if err != nil {
		return summary, &config.SetupError{Op: "output", Err: err}
	}
	if nonEmpty && !cfg.AssumeYes {
		ok := false
		if deps.Confirm != nil {
			ok, err = deps.Confirm(outputRoot)
			if err != nil {
				return summary, &config.SetupError{Op: "confirm", Err: err}
			}
		}
		if !ok {
			return summary, &config.SetupError{Op: "output", Err: fmt.Errorf("%w: %s", ErrDeclined, outputRoot)}
		}
	}
	if err := EnsureDir(outputRoot); err != nil {
		return summary, &config.SetupError{Op: "output", Err: err}
	}

	agg := NewAggregator(outputRoot, len(files), cfg.DeleteOriginals)
	emit := func(update ProgressUpdate) {
		if updates != nil {
			updates <- update
		}
	}
	emit(ProgressUpdate{TotalDelta: len(files)})

	work, collisions := splitCollisions(outputRoot, files)
	for _, o := range collisions {
		log.Info("skipping file with colliding output", zap.String("input", o.Input.RelPath))
		emit(agg.Add(o))
	}

	conv := NewConverter(cfg, outputRoot, deps.Decoder, deps.Encoder, log)
	outcomes := Dispatch(ctx, work, cfg.Workers, conv.Convert, func(file InputFile, err error) Outcome {
		return failed(file, 0, KindInternal, err)
	})
	for o := range outcomes {
		if o.Succeeded() {
			log.Info("converted",
				zap.String("input", o.Input.RelPath),
				zap.String("output", o.OutputPath),
				zap.Duration("elapsed", o.Elapsed),
				zap.Int64("bytes_in", o.OriginalSize),
				zap.Int64("bytes_out", o.ConvertedSize),
			)
		} else {
			log.Info("conversion failed",
				zap.String("input", o.Input.RelPath),
				zap.Stringer("kind", o.Failure.Kind),
				zap.String("reason", o.Failure.Message),
			)
		}
		emit(agg.Add(o))
	}

	summary = agg.Finish(time.Since(started))
	if ctx.Err() != nil && !errors.Is(ctx.Err(), context.Canceled) {
		return summary, ctx.Err()
	}
	return summary, nil
}

// splitCollisions keeps the first file (in RelPath order) for each output
// path and turns the rest into WriteError outcomes, so no two workers ever
// write the same file. Paths are compared case-insensitively to stay safe on
// case-insensitive filesystems.
func splitCollisions(outputRoot string, files []InputFile) ([]InputFile, []Outcome) {
	seen := make(map[string]string, len(files))
	work := make([]InputFile, 0, len(files))
	var collisions []Outcome
	for _, file := range files {
		key := strings.ToLower(filepath.Clean(OutputPath(outputRoot, file)))
		if first, dup := seen[key]; dup {
			o := failed(file, 0, KindWrite,
				fmt.Errorf("output %s already produced by %s", filepath.Base(OutputPath(outputRoot, file)), first))
			o.skipped = true
			collisions = append(collisions, o)
			continue
		}
		seen[key] = file.RelPath
		work = append(work, file)
	}
	return work, collisions
}
