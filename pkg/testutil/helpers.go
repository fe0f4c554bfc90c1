// Package testutil builds the synthetic image fixtures the package tests
// share: small decodable JPEG/PNG files, JPEGs with a hand-built Exif
// segment, and minimal TIFF files standing in for RAW sources.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"
)

// TestImage returns a w x h gradient image.
func TestImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 0x80,
				A: 0xFF,
			})
		}
	}
	return img
}

// JPEGBytes encodes a gradient image as JPEG.
func JPEGBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, TestImage(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding fixture jpeg: %v", err)
	}
	return buf.Bytes()
}

// WriteJPEG writes a decodable JPEG to path.
func WriteJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	writeFile(t, path, JPEGBytes(t, w, h))
}

// WritePNG writes a decodable PNG to path.
func WritePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, TestImage(w, h)); err != nil {
		t.Fatalf("encoding fixture png: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

// WriteJPEGWithExif writes a JPEG carrying an Exif APP1 segment with the
// given orientation (0 to omit) and datetime ("" to omit, else
// "2006:01:02 15:04:05" form).
func WriteJPEGWithExif(t *testing.T, path string, w, h, orientation int, datetime string) {
	t.Helper()
	data := JPEGBytes(t, w, h)

	body := append([]byte("Exif\x00\x00"), TIFFBytes(orientation, datetime)...)
	length := len(body) + 2
	seg := append([]byte{0xFF, 0xE1, byte(length >> 8), byte(length)}, body...)

	out := append([]byte{0xFF, 0xD8}, seg...)
	out = append(out, data[2:]...)
	writeFile(t, path, out)
}

// WriteFakeRAW writes a minimal TIFF to path. With a RAW extension it
// passes the scanner's metadata probe while remaining undecodable as
// pixels, which is exactly how real RAW files behave in this tree.
func WriteFakeRAW(t *testing.T, path string, orientation int, datetime string) {
	t.Helper()
	writeFile(t, path, TIFFBytes(orientation, datetime))
}

// WriteGarbage writes bytes that decode as nothing.
func WriteGarbage(t *testing.T, path string) {
	t.Helper()
	writeFile(t, path, []byte("this is not an image at all"))
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// TIFFBytes builds a little-endian TIFF with a single IFD holding an
// optional Orientation (tag 0x0112) and DateTime (tag 0x0132) entry.
func TIFFBytes(orientation int, datetime string) []byte {
	type entry struct {
		tag     uint16
		typ     uint16
		count   uint32
		inline  uint32
		payload []byte
	}

	var entries []entry
	if orientation > 0 {
		entries = append(entries, entry{tag: 0x0112, typ: 3, count: 1, inline: uint32(orientation)})
	}
	if datetime != "" {
		s := append([]byte(datetime), 0x00)
		entries = append(entries, entry{tag: 0x0132, typ: 2, count: uint32(len(s)), payload: s})
	}

	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.Write([]byte{'I', 'I', 0x2A, 0x00})
	binary.Write(&buf, le, uint32(8)) // IFD0 offset

	binary.Write(&buf, le, uint16(len(entries)))
	dataOffset := uint32(8 + 2 + 12*len(entries) + 4)
	var data bytes.Buffer
	for _, e := range entries {
		binary.Write(&buf, le, e.tag)
		binary.Write(&buf, le, e.typ)
		binary.Write(&buf, le, e.count)
		if e.payload == nil {
			binary.Write(&buf, le, e.inline)
		} else {
			binary.Write(&buf, le, dataOffset+uint32(data.Len()))
			data.Write(e.payload)
		}
	}
	binary.Write(&buf, le, uint32(0)) // no next IFD
	buf.Write(data.Bytes())

	return buf.Bytes()
}
