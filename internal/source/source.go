package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ivlev/slideshow/internal/sequence"
)

// Source materializes slideshow input as an ordered list of image files.
// Sources that need to synthesize images (PDF pages, generated slides)
// write them into workDir, the run's scoped temporary workspace.
type Source interface {
	Resolve(ctx context.Context, workDir string) ([]string, error)
}

// ForInput picks a source for the given input path: a PDF file gets
// rasterized page by page, anything else is treated as an images directory.
func ForInput(inputPath, manifestPath string, dpi, maxWidth, maxHeight int) Source {
	if strings.EqualFold(filepath.Ext(inputPath), ".pdf") {
		return &PDFSource{Path: inputPath, DPI: dpi, MaxWidth: maxWidth, MaxHeight: maxHeight}
	}
	return &DirSource{Dir: inputPath, Manifest: manifestPath}
}

// DirSource reads an existing directory of images, ordered by manifest or
// capture time.
type DirSource struct {
	Dir      string
	Manifest string
}

func (s *DirSource) Resolve(ctx context.Context, workDir string) ([]string, error) {
	refs, err := sequence.Resolve(s.Dir, s.Manifest)
	if err != nil {
		return nil, err
	}
	return sequence.Paths(refs), nil
}
