package sequence

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// takenTime derives the ordering timestamp for an image: the EXIF capture
// time (DateTimeOriginal, then DateTime) when readable, otherwise the file
// modification time. Any EXIF failure at all falls through to mtime; it is
// a fallback, never an error.
func takenTime(path string) time.Time {
	if t, err := exifTime(path); err == nil {
		return t
	}
	if info, err := os.Stat(path); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}

func exifTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	// DateTime prefers DateTimeOriginal and falls back to DateTime,
	// parsing the EXIF "YYYY:MM:DD HH:MM:SS" layout.
	return x.DateTime()
}
