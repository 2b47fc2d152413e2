package codec

import (
	"image"
	"io"
	"os"

	"github.com/adrium/goheif"
	"github.com/pkg/errors"

	"heic2jpg/pkg/imgutil"
)

func init() {
	// Without safe encoding a single-tile image aliases decoder memory that
	// is freed before Decode returns.
	goheif.SafeEncoding = true
}

// HEIFDecoder decodes HEIC/HEIF files with goheif.
type HEIFDecoder struct{}

func (HEIFDecoder) Decode(path string) (image.Image, []byte, error) {
	fin, err := openHEIF(path)
	if err != nil {
		return nil, nil, err
	}
	defer fin.Close()

	// Missing or unreadable EXIF leaves the block empty; the pixels are still usable.
	var exif []byte
	if raw, err := goheif.ExtractExif(fin); err == nil {
		exif = NormalizeExif(raw)
	}

	img, err := goheif.Decode(fin)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decode HEIF image")
	}
	return img, exif, nil
}

// Exif returns the normalized EXIF block of a HEIF file, or nil when the file
// has none.
func (HEIFDecoder) Exif(path string) ([]byte, error) {
	fin, err := openHEIF(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()

	raw, err := goheif.ExtractExif(fin)
	if err != nil {
		return nil, nil
	}
	return NormalizeExif(raw), nil
}

// openHEIF opens path and checks the ftyp brand before goheif sees it.
func openHEIF(path string) (*os.File, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open HEIF file %q", path)
	}

	kind, err := imgutil.SniffReader(fin)
	if err != nil {
		fin.Close()
		return nil, errors.Wrap(err, "read header")
	}
	if kind != imgutil.KindHEIF {
		fin.Close()
		return nil, errors.Errorf("not a HEIF container (detected %s)", kind)
	}
	if _, err := fin.Seek(0, io.SeekStart); err != nil {
		fin.Close()
		return nil, errors.Wrap(err, "rewind")
	}
	return fin, nil
}
