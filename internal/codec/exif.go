package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

var (
	exifHeader   = []byte("Exif\x00\x00")
	tiffHeaderLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffHeaderBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
)

// MaxExifSize is the largest EXIF payload a single APP1 segment can hold.
const MaxExifSize = 0xffff - 2

// NormalizeExif returns raw as an APP1 Exif payload. HEIF Exif items may be
// prefixed with a 4-byte header offset, with or without the "Exif\x00\x00"
// marker; everything before the TIFF header is discarded. A block without a
// TIFF header yields nil.
func NormalizeExif(raw []byte) []byte {
	idx := bytes.Index(raw, tiffHeaderLE)
	if be := bytes.Index(raw, tiffHeaderBE); be >= 0 && (idx < 0 || be < idx) {
		idx = be
	}
	if idx < 0 {
		return nil
	}
	out := make([]byte, 0, len(exifHeader)+len(raw)-idx)
	out = append(out, exifHeader...)
	return append(out, raw[idx:]...)
}

// InjectExif copies the JPEG stream from r to w, placing exif as an APP1
// segment right after SOI. Any Exif APP1 already in the stream is dropped so
// the output carries exactly one block. A nil exif only strips.
func InjectExif(r io.Reader, w io.Writer, exif []byte) error {
	if len(exif) > MaxExifSize {
		return errors.Errorf("EXIF block too large for APP1 (%d bytes)", len(exif))
	}

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	soi := make([]byte, 2)
	if _, err := io.ReadFull(br, soi); err != nil {
		return errors.Wrap(err, "read SOI")
	}
	if soi[0] != 0xff || soi[1] != 0xd8 {
		return errors.New("invalid JPEG SOI")
	}
	if _, err := bw.Write(soi); err != nil {
		return err
	}

	if len(exif) > 0 {
		lenBuf := make([]byte, 2)
		binary.BigEndian.PutUint16(lenBuf, uint16(len(exif)+2))
		if _, err := bw.Write([]byte{0xff, 0xe1}); err != nil {
			return err
		}
		if _, err := bw.Write(lenBuf); err != nil {
			return err
		}
		if _, err := bw.Write(exif); err != nil {
			return err
		}
	}

	for {
		markerPrefix, err := br.ReadByte()
		if err != nil {
			return errors.Wrap(err, "read marker")
		}
		for markerPrefix != 0xff {
			markerPrefix, err = br.ReadByte()
			if err != nil {
				return errors.Wrap(err, "read marker")
			}
		}

		marker, err := br.ReadByte()
		if err != nil {
			return errors.Wrap(err, "read marker")
		}
		for marker == 0xff {
			marker, err = br.ReadByte()
			if err != nil {
				return errors.Wrap(err, "read marker")
			}
		}

		if marker == 0xd9 { // EOI
			if _, err := bw.Write([]byte{0xff, 0xd9}); err != nil {
				return err
			}
			break
		}

		if marker == 0xda { // SOS: the rest is entropy-coded data
			if _, err := bw.Write([]byte{0xff, marker}); err != nil {
				return err
			}
			if _, err := io.Copy(bw, br); err != nil {
				return err
			}
			break
		}

		if marker == 0x01 || (marker >= 0xd0 && marker <= 0xd7) {
			if _, err := bw.Write([]byte{0xff, marker}); err != nil {
				return err
			}
			continue
		}

		lenBuf := make([]byte, 2)
		if _, err := io.ReadFull(br, lenBuf); err != nil {
			return errors.Wrap(err, "read segment length")
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf))
		if segLen < 2 {
			return errors.New("invalid JPEG segment length")
		}
		payload := make([]byte, segLen-2)
		if _, err := io.ReadFull(br, payload); err != nil {
			return errors.Wrap(err, "read segment")
		}
		if marker == 0xe1 && bytes.HasPrefix(payload, exifHeader) {
			continue
		}

		if _, err := bw.Write([]byte{0xff, marker}); err != nil {
			return err
		}
		if _, err := bw.Write(lenBuf); err != nil {
			return err
		}
		if _, err := bw.Write(payload); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadExif returns the payload of the first Exif APP1 segment in a JPEG
// stream, or nil when there is none.
func ReadExif(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	soi := make([]byte, 2)
	if _, err := io.ReadFull(br, soi); err != nil {
		return nil, errors.Wrap(err, "read SOI")
	}
	if soi[0] != 0xff || soi[1] != 0xd8 {
		return nil, errors.New("invalid JPEG SOI")
	}

	for {
		prefix, err := br.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "read marker")
		}
		if prefix != 0xff {
			continue
		}
		marker, err := br.ReadByte()
		if err != nil {
			return nil, errors.Wrap(err, "read marker")
		}
		switch {
		case marker == 0xff:
			if err := br.UnreadByte(); err != nil {
				return nil, err
			}
			continue
		case marker == 0xd9 || marker == 0xda:
			return nil, nil
		case marker == 0x01 || (marker >= 0xd0 && marker <= 0xd7):
			continue
		}

		lenBuf := make([]byte, 2)
		if _, err := io.ReadFull(br, lenBuf); err != nil {
			return nil, errors.Wrap(err, "read segment length")
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf))
		if segLen < 2 {
			return nil, errors.New("invalid JPEG segment length")
		}
		payload := make([]byte, segLen-2)
		if _, err := io.ReadFull(br, payload); err != nil {
			return nil, errors.Wrap(err, "read segment")
		}
		if marker == 0xe1 && bytes.HasPrefix(payload, exifHeader) {
			return payload, nil
		}
	}
}
