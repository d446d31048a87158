// Package postprocess converts raw generated images into the final strip
// format: a symmetric center crop to the target aspect ratio followed by a
// high-quality downscale to the exact output resolution.
package postprocess

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	// Register decoders for the formats providers return.
	_ "image/jpeg"
	_ "golang.org/x/image/webp"
)

// StripProcessor crops and resizes generated images into horizontal strips.
type StripProcessor struct {
	width  int
	height int
}

// NewStripProcessor builds a processor targeting width x height output.
// The crop aspect ratio is derived from the same dimensions.
func NewStripProcessor(width, height int) (*StripProcessor, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid strip dimensions %dx%d", width, height)
	}
	return &StripProcessor{width: width, height: height}, nil
}

// Process decodes raw image bytes, center-crops them to the target aspect
// ratio, scales to the exact output resolution and re-encodes as PNG.
func (p *StripProcessor) Process(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	cropped := centerCrop(src, p.width, p.height)
	scaled := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), cropped, cropped.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding strip: %w", err)
	}
	return buf.Bytes(), nil
}

// ProcessFile reads srcPath, processes it and writes the result to dstPath.
// srcPath and dstPath may be the same file.
func (p *StripProcessor) ProcessFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	out, err := p.Process(data)
	if err != nil {
		return fmt.Errorf("processing %s: %w", filepath.Base(srcPath), err)
	}

	if err := os.WriteFile(dstPath, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dstPath, err)
	}
	return nil
}

// centerCrop returns the largest centered sub-rectangle of src matching the
// targetW:targetH aspect ratio. Cropping is symmetric: excess width is
// trimmed equally from both sides, excess height from top and bottom. When
// the source already matches the ratio it is returned unchanged.
func centerCrop(src image.Image, targetW, targetH int) image.Image {
	bounds := src.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	// Compare srcW/srcH against targetW/targetH without going through
	// floating point.
	switch {
	case srcW*targetH > srcH*targetW:
		// Too wide: trim the sides.
		cropW := srcH * targetW / targetH
		offset := (srcW - cropW) / 2
		rect := image.Rect(bounds.Min.X+offset, bounds.Min.Y, bounds.Min.X+offset+cropW, bounds.Max.Y)
		return cropImage(src, rect)
	case srcW*targetH < srcH*targetW:
		// Too tall: trim top and bottom.
		cropH := srcW * targetH / targetW
		offset := (srcH - cropH) / 2
		rect := image.Rect(bounds.Min.X, bounds.Min.Y+offset, bounds.Max.X, bounds.Min.Y+offset+cropH)
		return cropImage(src, rect)
	default:
		return src
	}
}

// subImager is implemented by all stdlib image types.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropImage extracts rect from src, copying only when src does not support
// sub-images.
func cropImage(src image.Image, rect image.Rectangle) image.Image {
	if si, ok := src.(subImager); ok {
		return si.SubImage(rect)
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(dst, image.Point{}, src, rect, draw.Src, nil)
	return dst
}
