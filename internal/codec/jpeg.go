package codec

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// JPEGEncoder encodes baseline JPEG with imaging and splices the EXIF block in
// after SOI.
type JPEGEncoder struct{}

func (JPEGEncoder) Encode(w io.Writer, img image.Image, quality int, exif []byte) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return errors.Wrap(err, "encode JPEG image")
	}
	if err := InjectExif(&buf, w, exif); err != nil {
		return errors.Wrap(err, "attach EXIF")
	}
	return nil
}
