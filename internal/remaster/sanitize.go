package remaster

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// staleArtifacts lists file basenames written by a previous mastering run.
// Carrying them into a rebuilt image confuses the mastering tool, so they
// are deleted from the extracted tree wherever they appear.
var staleArtifacts = map[string]struct{}{
	"TRANS.TBL":    {},
	"boot.cat":     {},
	"boot.catalog": {},
}

// sanitizeTree removes every stale mastering artifact under root. The walk
// is idempotent and tolerates artifacts that are already gone.
func sanitizeTree(root string, logger *slog.Logger) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if _, stale := staleArtifacts[entry.Name()]; !stale {
			return nil
		}

		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		logger.Debug("removed stale mastering artifact", "path", path)
		return nil
	})
}
