package processor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"heic2jpg/internal/config"
)

// heifExtensions are matched case-insensitively, with leading dot.
var heifExtensions = map[string]bool{
	".heic": true,
	".heif": true,
	".hif":  true,
}

// Discover lists the HEIC/HEIF files under root. Without recursive only the
// root itself is inspected. When recursing, the outputRoot subtree is skipped
// so a run never picks up its own output. Files are sorted by RelPath.
//
// A missing root, or one that is not a directory, is a SetupError wrapping
// ErrNotFound. An empty result is returned together with ErrEmptySet.
func Discover(root, outputRoot string, recursive bool) ([]InputFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &config.SetupError{Op: "discover", Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, &config.SetupError{Op: "discover", Err: fmt.Errorf("%w: %s", ErrNotFound, absRoot)}
	}

	// The output subtree is only pruned when it sits strictly inside the root.
	var outputAbs string
	if outputRoot != "" {
		if abs, absErr := filepath.Abs(outputRoot); absErr == nil {
			abs = filepath.Clean(abs)
			if abs != filepath.Clean(absRoot) && isWithin(abs, absRoot) {
				outputAbs = abs
			}
		}
	}

	var files []InputFile
	fsys := os.DirFS(absRoot)
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == "." {
				return walkErr
			}
			// Unreadable subdirectories are skipped rather than failing the batch.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == "." {
				return nil
			}
			if !recursive {
				return fs.SkipDir
			}
			if outputAbs != "" && isWithin(filepath.Join(absRoot, filepath.FromSlash(path)), outputAbs) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !heifExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel := filepath.FromSlash(path)
		files = append(files, InputFile{
			Path:    filepath.Join(absRoot, rel),
			RelPath: rel,
		})
		return nil
	})
	if err != nil {
		return nil, &config.SetupError{Op: "discover", Err: err}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	if len(files) == 0 {
		return nil, ErrEmptySet
	}
	return files, nil
}
