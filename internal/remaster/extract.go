package remaster

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// extractTree mounts the image, copies its full tree into dest, and
// unmounts. The mount is detached on every exit path; a detach failure
// after a successful copy is reported but does not fail the extraction.
func extractTree(ctx context.Context, m Mounter, image, mountpoint, dest string, logger *slog.Logger) error {
	handle, err := m.Mount(ctx, image, mountpoint)
	if err != nil {
		return err
	}

	copyErr := copyTree(handle.Mountpoint, dest)

	if err := m.Unmount(handle); err != nil {
		logger.Warn("unmount failed after extraction", "mountpoint", handle.Mountpoint, "error", err)
	}

	if copyErr != nil {
		return &CopyError{Path: image, Err: copyErr}
	}
	return nil
}

// copyTree replicates the directory tree rooted at src under dst,
// preserving relative structure, permission bits, and symbolic links.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relative, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relative)

		info, err := entry.Info()
		if err != nil {
			return err
		}

		switch {
		case entry.IsDir():
			if relative == "." {
				return nil
			}
			return os.Mkdir(target, info.Mode().Perm())
		case info.Mode()&fs.ModeSymlink != 0:
			destination, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(destination, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return err
	}
	return destination.Close()
}
