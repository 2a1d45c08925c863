package source

import (
	"fmt"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// QRSlide generates a QR code image in the workspace, to be appended as the
// final slide. size is the pixel width/height of the square code.
func QRSlide(url string, size int, workDir string) (string, error) {
	if size <= 0 {
		size = 512
	}
	path := filepath.Join(workDir, "qr_outro.png")
	if err := qrcode.WriteFile(url, qrcode.Medium, size, path); err != nil {
		return "", fmt.Errorf("generate qr slide: %w", err)
	}
	return path, nil
}
