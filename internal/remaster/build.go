package remaster

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
)

const (
	masteringTool   = "xorrisofs"
	biosBootImage   = "isolinux/isolinux.bin"
	biosBootCatalog = "isolinux/boot.cat"
	efiBootImage    = "images/efiboot.img"
	hybridMBRPath   = "/usr/share/syslinux/isohdpfx.bin"
)

// Runner executes an external command. The default implementation shells
// out; tests substitute a recording stub.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct {
	verbose bool
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// masteringArgs assembles the argument list for the mastering tool. The
// boot entries are ordered BIOS first, then UEFI, producing a hybrid image
// that firmware of either kind will boot.
func masteringArgs(treeDir, label, output string, verbose, hybridMBR bool) []string {
	args := []string{}
	if !verbose {
		args = append(args, "-quiet")
	}
	args = append(args,
		"-o", output,
		"-b", biosBootImage,
		"-c", biosBootCatalog,
		"-no-emul-boot",
		"-boot-load-size", "4",
		"-boot-info-table",
		"-eltorito-alt-boot",
		"-e", efiBootImage,
		"-no-emul-boot",
		"-isohybrid-gpt-basedata",
	)
	if hybridMBR {
		args = append(args, "-isohybrid-mbr", hybridMBRPath)
	}
	args = append(args,
		"-R", "-J",
		"-V", label,
		treeDir,
	)
	return args
}

// buildImage masters the extracted tree into the output image. A non-zero
// exit from the tool is fatal and the output must be discarded.
func buildImage(ctx context.Context, runner Runner, treeDir, label, output string, verbose bool, logger *slog.Logger) error {
	args := masteringArgs(treeDir, label, output, verbose, hasHybridMBR())

	logger.Debug("invoking mastering tool", "tool", masteringTool, "args", args)
	if err := runner.Run(ctx, masteringTool, args...); err != nil {
		return &BuildError{Output: output, Err: err}
	}
	return nil
}

// hasHybridMBR reports whether the host syslinux package provides the MBR
// template needed to make the image bootable from a USB stick.
func hasHybridMBR() bool {
	_, err := os.Stat(hybridMBRPath)
	return err == nil
}
