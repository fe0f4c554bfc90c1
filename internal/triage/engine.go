// Package triage implements the categorization pipeline: convert the current
// image, write it under the chosen category, archive RAW originals, and fall
// back to a verbatim relocation when conversion is impossible. No single
// file's failure halts a session; the only hard error is failing to move the
// bytes at all.
package triage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pictriage/internal/config"
	"pictriage/internal/errors"
	"pictriage/internal/imgproc"
	"pictriage/internal/log"
	"pictriage/internal/meta"
	"pictriage/internal/naming"
	"pictriage/internal/scan"
)

// OriginalsDirName is the archive subtree for preserved RAW sources.
const OriginalsDirName = "originals"

// Request describes one categorization: the current worklist item, the
// target category, the pending rotation in clockwise degrees, and the custom
// name if the user assigned one.
type Request struct {
	Path       string
	Category   string
	Rotation   int
	CustomName string
}

// Result reports what the pipeline did with one file.
type Result struct {
	// DestPath is where the file ended up inside the category directory.
	DestPath string
	// Converted is true for the re-encoded JPEG path, false when the
	// original was relocated verbatim.
	Converted bool
	// Archived lists paths written under the originals archive.
	Archived []string
	// Warnings are non-fatal problems to surface to the user.
	Warnings []string
}

// Engine owns the output tree and the naming state for one run.
type Engine struct {
	outDir       string
	originalsDir string
	seq          *naming.Sequencer
}

// NewEngine creates an engine writing under outDir.
func NewEngine(outDir string, seq *naming.Sequencer) *Engine {
	return &Engine{
		outDir:       outDir,
		originalsDir: filepath.Join(outDir, OriginalsDirName),
		seq:          seq,
	}
}

// OriginalsDir returns the archive directory path.
func (e *Engine) OriginalsDir() string {
	return e.originalsDir
}

// EnsureDirectories creates the intake directory, the output tree, the
// originals archive, and one directory per category (nested categories
// create their parents).
func (e *Engine) EnsureDirectories(inDir string, categories map[string]string) error {
	dirs := []string{inDir, e.outDir, e.originalsDir}
	for category := range categories {
		dirs = append(dirs, e.categoryDir(category))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewFileError("cannot create directory", dir, errors.InvalidPath, err)
		}
	}
	return nil
}

func (e *Engine) categoryDir(category string) string {
	return filepath.Join(e.outDir, filepath.FromSlash(category))
}

// Categorize runs the pipeline for one file. Conversion failures degrade to
// a verbatim relocation of the original bytes; only a failed relocation is
// returned as an error, in which case nothing was consumed and the caller
// must leave the worklist unchanged.
func (e *Engine) Categorize(req Request) (*Result, error) {
	isRaw := scan.IsRaw(req.Path)

	res, err := e.convert(req, isRaw)
	if err != nil {
		log.Warn("could not convert %s: %v; relocating original", req.Path, err)
		res, rerr := e.relocate(req, isRaw)
		if rerr != nil {
			return nil, rerr
		}
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("could not convert %s (%v); moved original instead", filepath.Base(req.Path), err))
		return res, nil
	}

	log.WithFields(log.F("dest", res.DestPath)).Infof("categorized %s", filepath.Base(req.Path))
	return res, nil
}

// convert is the happy path: decode, rotate, normalize, derive the name,
// re-encode with metadata stripped, write, then archive and remove the
// source.
func (e *Engine) convert(req Request, isRaw bool) (*Result, error) {
	res := &Result{Converted: true}

	img, err := imgproc.Decode(req.Path)
	if err != nil {
		return nil, err
	}
	if req.Rotation != 0 {
		img = imgproc.Rotate(img, req.Rotation)
	}
	rgb := imgproc.NormalizeRGB(img)

	m := meta.Extract(req.Path)

	orientFlag := "v"
	if rgb.Bounds().Dx() >= rgb.Bounds().Dy() {
		orientFlag = "h"
	}

	namePart := e.seq.Resolve(req.CustomName)
	baseName := fmt.Sprintf("%s-%s-%s.jpg", m.Taken.Format("060102"), namePart, orientFlag)

	data, err := imgproc.EncodeJPEG(rgb)
	if err != nil {
		return nil, err
	}

	// Only the orientation tag survives the strip, and only when it was
	// present in the source.
	if m.Orientation != 0 {
		withExif, aerr := meta.AttachOrientation(data, m.Orientation)
		if aerr != nil {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("orientation not preserved for %s: %v", filepath.Base(req.Path), aerr))
		} else {
			data = withExif
		}
	}

	destDir := e.categoryDir(req.Category)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, errors.NewFileError("cannot create category directory", destDir, errors.InvalidPath, err)
	}

	res.DestPath = filepath.Join(destDir, baseName)
	if err := os.WriteFile(res.DestPath, data, 0644); err != nil {
		return nil, errors.NewFileError("cannot write converted image", res.DestPath, errors.EncodeFailed, err)
	}

	if err := e.retireSource(req, isRaw, res); err != nil {
		return nil, err
	}
	return res, nil
}

// retireSource archives RAW originals and sidecars, then deletes the source
// files. Archiving is copy-then-delete so a failure can't lose the original.
func (e *Engine) retireSource(req Request, isRaw bool, res *Result) error {
	preserve := isRaw && req.Category != config.DeletedCategory

	if preserve {
		archived, err := e.archive(req.Path)
		if err != nil {
			return err
		}
		res.Archived = append(res.Archived, archived)
	}
	if err := os.Remove(req.Path); err != nil {
		return errors.NewFileError("cannot remove source", req.Path, errors.RelocateFailed, err)
	}

	if !isRaw {
		return nil
	}
	for _, sidecar := range sidecarsOf(req.Path) {
		if preserve {
			archived, err := e.archive(sidecar)
			if err != nil {
				return err
			}
			res.Archived = append(res.Archived, archived)
		}
		if err := os.Remove(sidecar); err != nil {
			return errors.NewFileError("cannot remove sidecar", sidecar, errors.RelocateFailed, err)
		}
	}
	return nil
}

// relocate is the degraded path: no conversion, the original bytes (and any
// sidecars) move verbatim into the category directory, with the RAW archive
// rule still applied.
func (e *Engine) relocate(req Request, isRaw bool) (*Result, error) {
	res := &Result{Converted: false}
	preserve := isRaw && req.Category != config.DeletedCategory

	destDir := e.categoryDir(req.Category)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, errors.NewFileError("cannot create category directory", destDir, errors.RelocateFailed, err)
	}

	if preserve {
		archived, err := e.archive(req.Path)
		if err != nil {
			return nil, err
		}
		res.Archived = append(res.Archived, archived)
	}

	res.DestPath = filepath.Join(destDir, filepath.Base(req.Path))
	if err := moveFile(req.Path, res.DestPath); err != nil {
		return nil, err
	}

	if isRaw {
		for _, sidecar := range sidecarsOf(req.Path) {
			if preserve {
				archived, err := e.archive(sidecar)
				if err != nil {
					return nil, err
				}
				res.Archived = append(res.Archived, archived)
				if err := moveFile(sidecar, filepath.Join(destDir, filepath.Base(sidecar))); err != nil {
					return nil, err
				}
			} else if err := os.Remove(sidecar); err != nil {
				return nil, errors.NewFileError("cannot remove sidecar", sidecar, errors.RelocateFailed, err)
			}
		}
	}
	return res, nil
}

// archive copies src into the originals directory, keeping its filename.
func (e *Engine) archive(src string) (string, error) {
	if err := os.MkdirAll(e.originalsDir, 0755); err != nil {
		return "", errors.NewFileError("cannot create originals directory", e.originalsDir, errors.RelocateFailed, err)
	}
	dest := filepath.Join(e.originalsDir, filepath.Base(src))
	if err := copyFile(src, dest); err != nil {
		return "", errors.NewFileError("cannot archive original", src, errors.RelocateFailed, err)
	}
	return dest, nil
}

// sidecarsOf returns the sidecar paths that exist next to a RAW file,
// sharing its stem.
func sidecarsOf(rawPath string) []string {
	stem := strings.TrimSuffix(rawPath, filepath.Ext(rawPath))
	var found []string
	for _, ext := range scan.SidecarExts {
		sidecar := stem + ext
		if fi, err := os.Stat(sidecar); err == nil && fi.Mode().IsRegular() {
			found = append(found, sidecar)
		}
	}
	return found
}

// moveFile renames src to dest, falling back to copy+remove for cross-device
// moves.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return errors.NewFileError("cannot move file", src, errors.RelocateFailed, err)
	}
	if err := os.Remove(src); err != nil {
		return errors.NewFileError("cannot remove source after copy", src, errors.RelocateFailed, err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
