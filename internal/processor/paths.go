package processor

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"heic2jpg/internal/config"
)

const outputExt = ".jpg"

// ResolveOutput returns the absolute output root for cfg: the custom output
// directory when one was given, otherwise ConvertedFiles under the input root.
func ResolveOutput(cfg config.Config) (string, error) {
	if cfg.OutputDir != "" {
		return filepath.Abs(cfg.OutputDir)
	}
	return filepath.Join(cfg.InputDir, config.DefaultOutputDirName), nil
}

// OutputState reports whether dir exists and whether it holds any entries.
func OutputState(dir string) (exists bool, nonEmpty bool, err error) {
	f, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, false, nil
		}
		return false, false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return true, false, err
	}
	if !info.IsDir() {
		return true, false, &os.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")}
	}

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, false, nil
		}
		return true, false, err
	}
	return true, true, nil
}

// EnsureDir creates dir and its parents; existing directories are fine.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// OutputPath mirrors file under outputRoot with a .jpg extension:
// <input>/sub/dir/a.heic becomes <outputRoot>/sub/dir/a.jpg.
func OutputPath(outputRoot string, file InputFile) string {
	rel := file.RelPath
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + outputExt
	return filepath.Join(outputRoot, rel)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
