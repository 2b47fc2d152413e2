package processor

import (
	"context"
	"sort"

	"heic2jpg/internal/codec"
	"heic2jpg/internal/config"
)

// Scan reports the privacy-relevant EXIF tags of every HEIC/HEIF file under
// cfg.InputDir without writing anything. Reports are sorted by path; a file
// whose metadata cannot be read gets a report with Err set.
func Scan(ctx context.Context, cfg config.Config, reader codec.MetadataReader, updates chan<- ProgressUpdate) ([]ScanReport, error) {
	if reader == nil {
		reader = codec.HEIFDecoder{}
	}

	outputRoot, err := ResolveOutput(cfg)
	if err != nil {
		return nil, &config.SetupError{Op: "output", Err: err}
	}
	files, err := Discover(cfg.InputDir, outputRoot, cfg.Recursive)
	if err != nil {
		return nil, err
	}

	if updates != nil {
		updates <- ProgressUpdate{TotalDelta: len(files)}
	}

	scan := func(file InputFile) ScanReport {
		report := ScanReport{Path: file.RelPath}
		block, err := reader.Exif(file.Path)
		if err != nil {
			report.Err = err
			return report
		}
		details, err := analyzeExif(block)
		if err != nil {
			report.Err = err
			return report
		}
		report.Details = details
		report.Insights = buildInsights(details)
		return report
	}
	recovered := func(file InputFile, err error) ScanReport {
		return ScanReport{Path: file.RelPath, Err: err}
	}

	reports := make([]ScanReport, 0, len(files))
	for report := range Dispatch(ctx, files, cfg.Workers, scan, recovered) {
		if updates != nil {
			update := ProgressUpdate{Path: report.Path, ProcessedDelta: 1}
			if report.Err != nil {
				update.ErrorDelta = 1
			}
			updates <- update
		}
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports, nil
}
