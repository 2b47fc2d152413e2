package processor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"heic2jpg/internal/codec"
	"heic2jpg/internal/config"
)

// Converter turns one InputFile into a JPEG under the output root. It holds
// only read-only state, so a single Converter serves every worker.
type Converter struct {
	cfg        config.Config
	outputRoot string
	decoder    codec.Decoder
	encoder    codec.Encoder
	logger     *zap.Logger
}

func NewConverter(cfg config.Config, outputRoot string, decoder codec.Decoder, encoder codec.Encoder, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		cfg:        cfg,
		outputRoot: outputRoot,
		decoder:    decoder,
		encoder:    encoder,
		logger:     logger,
	}
}

// Convert runs decode, optional resize, encode, write and optional delete for
// file. Every failure is captured in the returned Outcome; a failed delete
// only attaches a warning to an otherwise successful one.
func (c *Converter) Convert(file InputFile) Outcome {
	start := time.Now()
	log := c.logger.With(zap.String("input", file.RelPath))

	srcInfo, err := os.Stat(file.Path)
	if err != nil {
		return failed(file, time.Since(start), KindDecode, err)
	}

	img, exif, err := c.decoder.Decode(file.Path)
	if err != nil {
		log.Debug("decode failed", zap.Error(err))
		return failed(file, time.Since(start), KindDecode, err)
	}
	var exifWarning string
	if exif == nil {
		log.Debug("no EXIF block in source")
	} else if len(exif) > codec.MaxExifSize {
		exifWarning = fmt.Sprintf("EXIF block of %d bytes exceeds one APP1 segment; written without metadata", len(exif))
		log.Debug("dropping oversized EXIF", zap.Int("bytes", len(exif)))
		exif = nil
	}

	if size := c.cfg.Resize; size != nil {
		img, err = codec.Fit(img, size.Width, size.Height)
		if err != nil {
			log.Debug("resize failed", zap.Error(err))
			return failed(file, time.Since(start), KindResize, err)
		}
		log.Debug("resized",
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()),
		)
	}

	var buf bytes.Buffer
	if err := c.encoder.Encode(&buf, img, c.cfg.Quality, exif); err != nil {
		log.Debug("encode failed", zap.Error(err))
		return failed(file, time.Since(start), KindEncode, err)
	}

	destPath := OutputPath(c.outputRoot, file)
	if filepath.Clean(destPath) == filepath.Clean(file.Path) {
		return failed(file, time.Since(start), KindWrite, fmt.Errorf("output path resolves to input path"))
	}
	if err := writeAtomic(destPath, buf.Bytes()); err != nil {
		log.Debug("write failed", zap.String("output", destPath), zap.Error(err))
		return failed(file, time.Since(start), KindWrite, err)
	}

	out := Outcome{
		Input:         file,
		OutputPath:    destPath,
		OriginalSize:  srcInfo.Size(),
		ConvertedSize: int64(buf.Len()),
		ExifWarning:   exifWarning,
	}

	if c.cfg.DeleteOriginals {
		if err := os.Remove(file.Path); err != nil {
			log.Debug("could not delete original", zap.Error(err))
			out.DeleteWarning = err.Error()
		} else {
			out.Deleted = true
		}
	}

	out.Elapsed = time.Since(start)
	return out
}

// writeAtomic writes data to a temp file beside destPath and renames it into
// place, creating parent directories as needed.
func writeAtomic(destPath string, data []byte) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(destDir, ".heic2jpg-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), destPath)
}
