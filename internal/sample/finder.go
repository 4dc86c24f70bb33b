// Package sample locates or produces the image attached to the test upload.
package sample

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ImageExtensions are the suffixes a discovered sample may carry.
	ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	// fallbackExtensions are accepted when no placeholder can be synthesized.
	fallbackExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}
)

// Image is the artifact chosen for upload.
type Image struct {
	Path string
	Name string
	Size int64
	// Created is true only for placeholders written by a Synthesizer. Discovered
	// files are never created and must never be deleted.
	Created bool
}

// Candidate is one directory entry considered for upload.
type Candidate struct {
	Name string
	Size int64
}

// FirstWithin returns the first candidate, in the given order, that has an image
// extension and is at most maxSize bytes. Oversized images are skipped and the
// scan continues.
func FirstWithin(candidates []Candidate, maxSize int64) (Candidate, bool) {
	for _, c := range candidates {
		if !HasExtension(c.Name, ImageExtensions) {
			continue
		}
		if c.Size <= maxSize {
			return c, true
		}
	}
	return Candidate{}, false
}

// FirstImage returns the first candidate with one of exts, ignoring size.
func FirstImage(candidates []Candidate, exts []string) (Candidate, bool) {
	for _, c := range candidates {
		if HasExtension(c.Name, exts) {
			return c, true
		}
	}
	return Candidate{}, false
}

// HasExtension reports whether name ends in one of exts, case-insensitively.
func HasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Finder scans a single directory (non-recursively) for sample images.
type Finder struct {
	// Dir is joined with entry names to build the returned path.
	Dir string
	// FS is the listing source. It defaults to os.DirFS(Dir); tests inject an
	// fstest.MapFS to pin the listing order.
	FS      fs.FS
	MaxSize int64
}

// Find returns the first image within the size bound.
func (f Finder) Find() (Image, bool, error) {
	candidates, err := f.Candidates()
	if err != nil {
		return Image{}, false, err
	}
	c, ok := FirstWithin(candidates, f.MaxSize)
	if !ok {
		return Image{}, false, nil
	}
	return f.image(c), true, nil
}

// Candidates lists the regular entries of the directory in listing order.
func (f Finder) Candidates() ([]Candidate, error) {
	fsys := f.FS
	if fsys == nil {
		fsys = os.DirFS(f.Dir)
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", f.Dir, err)
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Entry vanished between listing and stat.
			continue
		}
		out = append(out, Candidate{Name: e.Name(), Size: info.Size()})
	}
	return out, nil
}

func (f Finder) image(c Candidate) Image {
	return Image{
		Path: filepath.Join(f.Dir, c.Name),
		Name: c.Name,
		Size: c.Size,
	}
}
