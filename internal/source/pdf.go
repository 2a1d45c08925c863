package source

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

// PDFSource rasterizes every page of a PDF into the workspace so the pages
// flow through the regular segment pipeline. Page order is the slideshow
// order; manifests and timestamps do not apply.
type PDFSource struct {
	Path string
	DPI  int

	// MaxWidth/MaxHeight bound the rasterized page size. Pages rendered
	// larger than this (high DPI on big pages) are scaled down before
	// writing; the motion filter never needs more resolution than twice
	// the canvas.
	MaxWidth  int
	MaxHeight int
}

func (s *PDFSource) Resolve(ctx context.Context, workDir string) ([]string, error) {
	doc, err := fitz.New(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	paths := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(i, float64(s.DPI))
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", i+1, err)
		}

		path := filepath.Join(workDir, fmt.Sprintf("page_%03d.png", i))
		if err := writePNG(path, s.shrink(img)); err != nil {
			return nil, fmt.Errorf("write page %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// shrink downscales an oversized page render, preserving aspect ratio.
func (s *PDFSource) shrink(img image.Image) image.Image {
	if s.MaxWidth <= 0 || s.MaxHeight <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= s.MaxWidth && h <= s.MaxHeight {
		return img
	}

	scale := float64(s.MaxWidth) / float64(w)
	if sh := float64(s.MaxHeight) / float64(h); sh < scale {
		scale = sh
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
