// Package codectest provides fixtures and a fake decoder for exercising the
// conversion pipeline without real HEIC files.
package codectest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"fmt"
	"image/png"
	"os"

	exif "github.com/dsoprea/go-exif/v3"
)

// Tag values carried by ExifBlock.
const (
	Model    = "TestCam"
	DateTime = "2024:01:02 03:04:05"
)

// ExifBlock returns an APP1 Exif payload whose IFD0 holds Model and DateTime.
func ExifBlock() []byte {
	return append([]byte("Exif\x00\x00"), ExifTIFF()...)
}

// ExifTIFF returns the little-endian TIFF structure inside ExifBlock.
func ExifTIFF() []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0110))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(38))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0132))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(20))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(46))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	tiff.Write([]byte(Model + "\x00"))
	tiff.Write([]byte(DateTime + "\x00"))
	return tiff.Bytes()
}

// Image returns a w×h gradient.
func Image(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

// WriteFixture writes a w×h PNG to path. Decoder accepts it regardless of
// the file extension, which lets tests name it "*.heic".
func WriteFixture(path string, w, h int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Image(w, h)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ErrCorrupt is returned by Decoder for files that are not PNG fixtures.
var ErrCorrupt = errors.New("corrupt fixture")

// Decoder decodes PNG fixtures and reports Block as their metadata block.
type Decoder struct {
	Block []byte
}

func (d Decoder) Decode(path string) (image.Image, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, nil, errors.Join(ErrCorrupt, err)
	}
	return img, d.Block, nil
}

// Exif returns d.Block for readable fixtures.
func (d Decoder) Exif(path string) ([]byte, error) {
	if _, _, err := d.Decode(path); err != nil {
		return nil, err
	}
	return d.Block, nil
}

// Tags parses an APP1 Exif payload into tag name -> value.
func Tags(block []byte) (map[string]string, error) {
	entries, _, err := exif.GetFlatExifData(bytes.TrimPrefix(block, []byte("Exif\x00\x00")), nil)
	if err != nil {
		return nil, err
	}
	tags := make(map[string]string, len(entries))
	for _, entry := range entries {
		tags[entry.TagName] = fmt.Sprint(entry.Value)
	}
	return tags, nil
}
