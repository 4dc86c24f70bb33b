package sample

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"
)

// Synthesizer produces a sample image when discovery found nothing usable.
// ok is false when no image could be produced; that is not an error.
type Synthesizer interface {
	Synthesize(ctx context.Context) (img Image, ok bool, err error)
}

// JPEGSynthesizer writes a solid color placeholder JPEG.
type JPEGSynthesizer struct {
	Dir  string
	Name string
	// Side is the width and height in pixels; zero means 100.
	Side  int
	Color color.RGBA
}

// Blue is the placeholder fill color.
var Blue = color.RGBA{B: 255, A: 255}

func (s JPEGSynthesizer) Synthesize(ctx context.Context) (Image, bool, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, false, err
	}
	side := s.Side
	if side <= 0 {
		side = 100
	}
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: s.Color}, image.Point{}, draw.Src)

	path := filepath.Join(s.Dir, s.Name)
	f, err := os.Create(path)
	if err != nil {
		return Image{}, false, fmt.Errorf("create placeholder: %w", err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpeg.DefaultQuality}); err != nil {
		f.Close()
		os.Remove(path)
		return Image{}, false, fmt.Errorf("encode placeholder: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Image{}, false, fmt.Errorf("write placeholder: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Image{}, false, fmt.Errorf("stat placeholder: %w", err)
	}
	return Image{Path: path, Name: s.Name, Size: info.Size(), Created: true}, true, nil
}

// FallbackSynthesizer is used when placeholder generation is disabled. It
// settles for the first image-like file in the directory regardless of size.
type FallbackSynthesizer struct {
	Finder Finder
}

func (s FallbackSynthesizer) Synthesize(ctx context.Context) (Image, bool, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, false, err
	}
	candidates, err := s.Finder.Candidates()
	if err != nil {
		return Image{}, false, err
	}
	c, ok := FirstImage(candidates, fallbackExtensions)
	if !ok {
		return Image{}, false, nil
	}
	return s.Finder.image(c), true, nil
}
