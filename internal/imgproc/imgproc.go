// Package imgproc holds the pixel operations the pipeline needs: decoding,
// quarter-turn rotation with canvas expansion, color normalization, and
// JPEG re-encoding at fixed quality.
package imgproc

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"

	"pictriage/internal/errors"

	_ "golang.org/x/image/bmp"
	_ "image/gif"
	_ "image/png"
)

// Quality is the fixed JPEG quality for re-encoded output.
const Quality = 95

// Decode opens and decodes path with the registered formats
// (jpeg/png/gif/bmp).
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("cannot open image", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewFileError("cannot decode image", path, errors.DecodeFailed, err)
	}
	return img, nil
}

// Rotate rotates img by the given degrees clockwise (any multiple of 90,
// negative for counterclockwise), expanding the canvas so nothing is
// cropped. The same sign convention is used for the on-screen preview and
// the stored output, so what the user sees is what gets written.
func Rotate(img image.Image, degrees int) image.Image {
	d := ((degrees % 360) + 360) % 360
	if d == 0 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	if d == 180 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	}

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			c := img.At(b.Min.X+sx, b.Min.Y+sy)
			switch d {
			case 90:
				dst.Set(h-1-sy, sx, c)
			case 180:
				dst.Set(w-1-sx, h-1-sy, c)
			case 270:
				dst.Set(sy, w-1-sx, c)
			}
		}
	}
	return dst
}

// NormalizeRGB flattens alpha and palette modes onto an opaque RGBA canvas,
// compositing transparency over white.
func NormalizeRGB(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Opaque() {
		return rgba
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// EncodeJPEG re-encodes img at the fixed quality. Encoding to a fresh buffer
// strips all source metadata by construction.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, errors.NewFileError("jpeg encode failed", "", errors.EncodeFailed, err)
	}
	return buf.Bytes(), nil
}
