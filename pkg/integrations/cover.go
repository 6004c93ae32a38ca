package integrations

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

// Cover size limits, large enough for tablet readers.
const (
	MaxCoverWidth  = 1600
	MaxCoverHeight = 2560
	coverQuality   = 90
)

// ScaleCover decodes a PNG or JPEG image, shrinks it to fit the cover limits
// while keeping its aspect ratio, and re-encodes it as JPEG.
func ScaleCover(input io.Reader) ([]byte, error) {
	img, _, err := image.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := fitDimensions(bounds.Dx(), bounds.Dy(), MaxCoverWidth, MaxCoverHeight)

	var out image.Image = img
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: coverQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func fitDimensions(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	scale := float64(maxWidth) / float64(width)
	if hs := float64(maxHeight) / float64(height); hs < scale {
		scale = hs
	}

	w, h := int(float64(width)*scale), int(float64(height)*scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
