package remaster

import (
	"fmt"
	"strings"

	"github.com/diskfs/go-diskfs"
)

// ReadVolumeLabel opens the image read-only and returns its volume label
// with surrounding whitespace trimmed. The image is never modified.
func ReadVolumeLabel(path string) (string, error) {
	d, err := diskfs.Open(path, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return "", fmt.Errorf("open image %s: %w", path, err)
	}
	defer d.Close()

	fs, err := d.GetFilesystem(0)
	if err != nil {
		return "", fmt.Errorf("read filesystem of %s: %w", path, err)
	}
	return strings.TrimSpace(fs.Label()), nil
}
