package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// Magic byte signatures for accepted photo formats
var magicBytes = map[string][][]byte{
	"image/jpeg": {{0xFF, 0xD8, 0xFF}},
	"image/png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
}

// DetectImageType returns the MIME type implied by data's magic bytes.
func DetectImageType(data []byte) (string, error) {
	for mime, signatures := range magicBytes {
		for _, sig := range signatures {
			if bytes.HasPrefix(data, sig) {
				return mime, nil
			}
		}
	}
	return "", ErrUnsupportedImage
}

// JPEGResizer downsizes photos to fit MaxDimension and re-encodes them
// as JPEG.
type JPEGResizer struct {
	MaxDimension int
	Quality      int
}

func NewJPEGResizer(maxDimension int) *JPEGResizer {
	return &JPEGResizer{MaxDimension: maxDimension, Quality: 80}
}

func (r *JPEGResizer) Resize(data []byte) ([]byte, string, error) {
	if _, err := DetectImageType(data); err != nil {
		return nil, "", err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), r.MaxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: r.Quality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// fitWithin scales width and height down so neither exceeds limit, keeping
// the aspect ratio. Smaller images are left as they are.
func fitWithin(width, height, limit int) (int, int) {
	if limit <= 0 || (width <= limit && height <= limit) {
		return width, height
	}
	if width >= height {
		return limit, max(1, height*limit/width)
	}
	return max(1, width*limit/height), limit
}
