package remaster

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeChecksum writes a sha256 sidecar next to the image, in the
// two-space format sha256sum(1) accepts for verification.
func writeChecksum(imagePath string) error {
	image, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("open image for checksum: %w", err)
	}
	defer image.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, image); err != nil {
		return fmt.Errorf("checksum %s: %w", imagePath, err)
	}

	line := fmt.Sprintf("%x  %s\n", digest.Sum(nil), filepath.Base(imagePath))
	if err := os.WriteFile(imagePath+".sha256", []byte(line), 0o644); err != nil {
		return fmt.Errorf("write checksum sidecar: %w", err)
	}
	return nil
}
