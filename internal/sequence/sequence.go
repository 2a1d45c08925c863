package sequence

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoImages is returned when an input directory or manifest yields no
// usable images. Callers treat it as a reportable no-op rather than a crash.
var ErrNoImages = errors.New("no images found")

// ImageRef is one resolved slideshow input: an existing file plus the
// timestamp used for ordering. Taken is zero when a manifest dictated the
// order and no timestamp was needed.
type ImageRef struct {
	Path  string
	Taken time.Time
}

// Supported extensions, matched case-sensitively the way the original glob
// patterns did.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Resolve produces the ordered image list for imagesDir. When manifestPath
// names an existing file its line order is authoritative; otherwise the
// directory is scanned non-recursively and sorted by capture time with a
// stable sort, so ties keep directory enumeration order.
func Resolve(imagesDir, manifestPath string) ([]ImageRef, error) {
	if manifestPath != "" {
		if _, err := os.Stat(manifestPath); err == nil {
			return resolveManifest(imagesDir, manifestPath)
		}
	}
	return resolveDirectory(imagesDir)
}

// resolveManifest reads one filename per line, relative to imagesDir.
// Blank lines and entries missing on disk are dropped silently.
func resolveManifest(imagesDir, manifestPath string) ([]ImageRef, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var refs []ImageRef
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		path := filepath.Join(imagesDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		refs = append(refs, ImageRef{Path: path})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("manifest %s: %w", manifestPath, ErrNoImages)
	}
	return refs, nil
}

func resolveDirectory(imagesDir string) ([]ImageRef, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("read images directory: %w", err)
	}

	var refs []ImageRef
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		path := filepath.Join(imagesDir, entry.Name())
		refs = append(refs, ImageRef{Path: path, Taken: takenTime(path)})
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%s: %w", imagesDir, ErrNoImages)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Taken.Before(refs[j].Taken)
	})
	return refs, nil
}

// Paths flattens refs into the bare file paths, in order.
func Paths(refs []ImageRef) []string {
	paths := make([]string, len(refs))
	for i, ref := range refs {
		paths[i] = ref.Path
	}
	return paths
}
