// Package meta extracts the two pieces of metadata the pipeline cares about,
// the EXIF orientation and the capture timestamp, and can re-attach the
// orientation tag to a freshly encoded JPEG.
package meta

import (
	"os"
	"time"

	"pictriage/internal/errors"
	"pictriage/internal/log"

	"github.com/rwcarlsen/goexif/exif"
)

// Info carries the extracted metadata for one source file.
type Info struct {
	// Orientation is the EXIF orientation value, or 0 when absent.
	Orientation int
	// Taken is the capture timestamp, falling back to the file's
	// modification time when no EXIF date is present.
	Taken time.Time
}

// Extract reads orientation and capture date from path. goexif handles both
// JPEG metadata and the TIFF containers used by RAW formats, so the standard
// and RAW readers collapse into one call here. Extraction failures are not
// errors; the file's mtime is the timestamp of last resort.
func Extract(path string) Info {
	var info Info

	if f, err := os.Open(path); err == nil {
		if x, err := exif.Decode(f); err == nil {
			if tag, err := x.Get(exif.Orientation); err == nil {
				if v, err := tag.Int(0); err == nil && v > 0 {
					info.Orientation = v
				}
			}
			if t, err := x.DateTime(); err == nil {
				info.Taken = t
			}
		} else {
			log.Debug("no usable metadata in %s: %v", path, err)
		}
		f.Close()
	}

	if info.Taken.IsZero() {
		if fi, err := os.Stat(path); err == nil {
			info.Taken = fi.ModTime()
		} else {
			info.Taken = time.Now()
		}
	}
	return info
}

// AttachOrientation returns jpegData with a minimal APP1 Exif segment,
// carrying only the orientation tag, spliced in after the SOI marker. The
// input must be a bare JPEG stream (which a fresh encode always is).
func AttachOrientation(jpegData []byte, orientation int) ([]byte, error) {
	if len(jpegData) < 2 || jpegData[0] != 0xFF || jpegData[1] != 0xD8 {
		return nil, errors.New("not a JPEG stream")
	}
	if orientation < 1 || orientation > 8 {
		return nil, errors.Newf("orientation value %d out of range", orientation)
	}

	seg := orientationSegment(orientation)
	out := make([]byte, 0, len(jpegData)+len(seg))
	out = append(out, jpegData[:2]...)
	out = append(out, seg...)
	out = append(out, jpegData[2:]...)
	return out, nil
}

// orientationSegment builds an APP1 segment holding a little-endian TIFF
// body with a single IFD entry: tag 0x0112 (Orientation), type SHORT.
func orientationSegment(orientation int) []byte {
	tiff := []byte{
		'I', 'I', 0x2A, 0x00, // little-endian TIFF header
		0x08, 0x00, 0x00, 0x00, // offset of IFD0
		0x01, 0x00, // one entry
		0x12, 0x01, // tag 0x0112 Orientation
		0x03, 0x00, // type SHORT
		0x01, 0x00, 0x00, 0x00, // count 1
		byte(orientation), byte(orientation >> 8), 0x00, 0x00, // value, padded
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}

	body := append([]byte("Exif\x00\x00"), tiff...)
	length := len(body) + 2
	seg := []byte{0xFF, 0xE1, byte(length >> 8), byte(length)}
	return append(seg, body...)
}
