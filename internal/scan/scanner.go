// Package scan enumerates the intake directory and builds the ordered
// worklist of plausibly valid images.
package scan

import (
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pictriage/internal/errors"
	"pictriage/internal/log"

	"github.com/gobwas/glob"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// standardExts are formats validated by a full decode.
var standardExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// rawExts are camera-native formats accepted after a metadata readability
// probe rather than a pixel decode.
var rawExts = map[string]bool{
	".raw": true,
	".cr2": true,
	".nef": true,
	".arw": true,
	".dng": true,
	".orf": true,
	".rw2": true,
	".pef": true,
	".raf": true,
}

// SidecarExts are the auxiliary extensions that follow a RAW file around.
var SidecarExts = []string{".xmp", ".thm"}

// IsRaw reports whether path has a RAW extension.
func IsRaw(path string) bool {
	return rawExts[strings.ToLower(filepath.Ext(path))]
}

// Scanner validates candidate files, skipping anything matching its ignore
// patterns.
type Scanner struct {
	ignore []glob.Glob
}

// New compiles the ignore patterns into a scanner.
func New(ignorePatterns []string) (*Scanner, error) {
	s := &Scanner{}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError("invalid ignore pattern", pattern, errors.InvalidConfig, err)
		}
		s.ignore = append(s.ignore, g)
	}
	return s, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, g := range s.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Scan returns the paths in dir that validate as images, sorted ascending by
// filename. Invalid candidates are logged and excluded; the scan never aborts
// on a single bad file.
func (s *Scanner) Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("error reading intake directory", dir, errors.InvalidPath, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if s.ignored(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := s.Probe(path); err != nil {
			if !errors.Is(err, errSkip) {
				log.Warn("excluding %s: %v", path, err)
			}
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}

// errSkip marks files the scanner passes over silently (unknown extension).
var errSkip = errors.New("not a candidate")

// Probe checks a single candidate the same way Scan does: full decode for
// standard formats, metadata readability for RAW. It returns errSkip-wrapped
// errors for non-candidates so callers can tell "invalid" from "irrelevant".
func (s *Scanner) Probe(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case standardExts[ext]:
		return validateImage(path)
	case rawExts[ext]:
		return probeRaw(path)
	default:
		return errSkip
	}
}

// validateImage decodes the full image to confirm the file is intact.
func validateImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewFileError("cannot open image", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	if _, _, err := image.Decode(f); err != nil {
		return errors.NewFileError("image failed validation", path, errors.DecodeFailed, err)
	}
	return nil
}

// probeRaw accepts a RAW file if at least its metadata block parses. This is
// a lightweight readability check, not full validation.
func probeRaw(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewFileError("cannot open raw file", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	if _, err := exif.Decode(f); err != nil {
		return errors.NewFileError("raw file is not readable", path, errors.MetadataFailed, err)
	}
	return nil
}
