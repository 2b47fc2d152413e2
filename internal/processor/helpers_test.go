package processor

import (
	"os"
	"path/filepath"
	"testing"

	"heic2jpg/internal/codec"
	"heic2jpg/internal/codec/codectest"
	"heic2jpg/internal/config"
)

// writeFixture writes a PNG-backed fixture at dir/rel.
func writeFixture(t *testing.T, dir, rel string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := codectest.WriteFixture(path, w, h); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func testConfig(input string) config.Config {
	return config.Config{InputDir: input, Quality: 90, Workers: 2}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// exifTags parses the EXIF block of the JPEG at path into name -> value.
func exifTags(t *testing.T, path string) map[string]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	block, err := codec.ReadExif(f)
	if err != nil {
		t.Fatalf("read EXIF of %s: %v", path, err)
	}
	if block == nil {
		t.Fatalf("%s has no EXIF block", path)
	}
	tags, err := codectest.Tags(block)
	if err != nil {
		t.Fatalf("parse EXIF of %s: %v", path, err)
	}
	return tags
}
