// Package codec holds the image capabilities the conversion pipeline depends
// on: decoding a HEIF file into pixels plus its raw EXIF block, bounding-box
// resizing, and JPEG encoding with that EXIF block re-attached.
//
// The pipeline only sees the Decoder and Encoder interfaces, so tests can
// swap in codecs that do not need real HEIC fixtures.
package codec

import (
	"image"
	"io"
)

// Decoder reads an image file and returns its pixels together with the
// embedded EXIF block in APP1 form ("Exif\x00\x00" followed by the TIFF
// structure). A nil block means the file carried no EXIF; that is not an
// error.
type Decoder interface {
	Decode(path string) (image.Image, []byte, error)
}

// Encoder writes img to w at the given quality, embedding exif when non-nil.
type Encoder interface {
	Encode(w io.Writer, img image.Image, quality int, exif []byte) error
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (image.Image, []byte, error)

func (f DecoderFunc) Decode(path string) (image.Image, []byte, error) { return f(path) }

// MetadataReader returns an image's EXIF block without decoding its pixels.
type MetadataReader interface {
	Exif(path string) ([]byte, error)
}
