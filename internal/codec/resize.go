package codec

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// FitSize returns the dimensions of a w×h image scaled to fit inside a
// maxW×maxH box with its aspect ratio kept. Images already inside the box are
// returned unchanged; otherwise the limiting axis lands exactly on the box.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	sx := float64(maxW) / float64(w)
	sy := float64(maxH) / float64(h)
	if sx <= sy {
		nh := int(math.Round(float64(h) * sx))
		return maxW, clamp(nh, 1, maxH)
	}
	nw := int(math.Round(float64(w) * sy))
	return clamp(nw, 1, maxW), maxH
}

// Fit scales img down into the maxW×maxH box using Lanczos resampling. It
// never enlarges: an image already inside the box is returned as is.
func Fit(img image.Image, maxW, maxH int) (image.Image, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, errors.Errorf("invalid bounding box %dx%d", maxW, maxH)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Errorf("cannot resize empty image %dx%d", b.Dx(), b.Dy())
	}

	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return img, nil
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
