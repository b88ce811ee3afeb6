// Package codec handles decoding and encoding of the image formats the
// toolkit touches: HEIC from phone cameras, JPEG for the training set, and
// PNG/WebP for ad-hoc exports.
package codec

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/jdeng/goheif"
	_ "golang.org/x/image/webp"

	"github.com/Wh0FF24/Conveyor-belt/internal/utils"
)

// DecodeHEIF decodes a HEIC/HEIF stream into an image.
func DecodeHEIF(r io.Reader) (image.Image, error) {
	img, err := goheif.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("heif decode failed: %w", err)
	}
	return img, nil
}

// LoadImage loads an image from a file path with HEIC and WebP support.
func LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch utils.GetFileExtension(path) {
	case "heic", "heif":
		if img, err := goheif.Decode(f); err == nil {
			return img, nil
		}
	case "webp":
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
	}

	// Last resort: generic decode from the start of the file
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// ToRGB flattens an image to a plain 8-bit RGB(A) representation, the form
// the JPEG encoder and the classifier expect.
func ToRGB(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// SaveJPEG writes an image as JPEG at the given quality.
func SaveJPEG(img image.Image, path string, quality int) error {
	return imaging.Save(img, path, imaging.JPEGQuality(quality))
}

// SaveImage saves an image with the specified format, quality and (for WebP)
// lossless mode.
func SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "png":
		return imaging.Save(img, path)
	case "jpg", "jpeg":
		return SaveJPEG(img, path, quality)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
