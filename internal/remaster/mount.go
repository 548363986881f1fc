package remaster

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// MountHandle identifies an active mount produced by a Mounter.
type MountHandle struct {
	Mountpoint string
}

// Mounter attaches an optical-disc image to a directory and detaches it
// again. Implementations must expose the image's files read-only.
type Mounter interface {
	Mount(ctx context.Context, image, mountpoint string) (*MountHandle, error)
	Unmount(handle *MountHandle) error
}

// loopMounter shells out to mount(8) with a read-only loop device.
type loopMounter struct{}

func (loopMounter) Mount(ctx context.Context, image, mountpoint string) (*MountHandle, error) {
	cmd := exec.CommandContext(ctx, "mount", "-o", "loop,ro", image, mountpoint)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, &MountError{
			Image: image,
			Err:   fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))),
		}
	}

	if err := verifyISO9660(mountpoint); err != nil {
		_ = exec.Command("umount", mountpoint).Run()
		return nil, &MountError{Image: image, Err: err}
	}
	return &MountHandle{Mountpoint: mountpoint}, nil
}

func (loopMounter) Unmount(handle *MountHandle) error {
	cmd := exec.Command("umount", handle.Mountpoint)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("umount %s: %w: %s",
			handle.Mountpoint, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// verifyISO9660 confirms the mount actually exposed an iso9660 filesystem
// rather than falling through to the underlying directory.
func verifyISO9660(mountpoint string) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(mountpoint, &stat); err != nil {
		return fmt.Errorf("statfs %s: %w", mountpoint, err)
	}
	if stat.Type != unix.ISOFS_SUPER_MAGIC {
		return fmt.Errorf("%s is not an iso9660 filesystem (magic 0x%x)", mountpoint, stat.Type)
	}
	return nil
}
