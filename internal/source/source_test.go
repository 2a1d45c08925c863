package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestForInputPicksPDFSource(t *testing.T) {
	if _, ok := ForInput("deck.pdf", "", 300, 0, 0).(*PDFSource); !ok {
		t.Error("*.pdf input must use the PDF source")
	}
	if _, ok := ForInput("deck.PDF", "", 300, 0, 0).(*PDFSource); !ok {
		t.Error("extension match must be case-insensitive for PDFs")
	}
	if _, ok := ForInput("photos", "order.txt", 300, 0, 0).(*DirSource); !ok {
		t.Error("directory input must use the directory source")
	}
}

func TestDirSourceResolvesImages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &DirSource{Dir: dir}
	paths, err := src.Resolve(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "a.jpg" {
		t.Errorf("got %v", paths)
	}
}

func TestQRSlide(t *testing.T) {
	workDir := t.TempDir()
	path, err := QRSlide("https://example.com/album", 256, workDir)
	if err != nil {
		t.Fatalf("QRSlide: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat generated slide: %v", err)
	}
	if info.Size() == 0 {
		t.Error("generated slide is empty")
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("slide must be a png, got %s", path)
	}
}
