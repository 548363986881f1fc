// Package remaster rebuilds a bootable installer image around an
// unattended-install answer file. A run extracts the source image's tree,
// scrubs stale mastering artifacts, renders the answer file and both
// boot-loader configurations from templates, and masters a BIOS+UEFI
// hybrid image carrying the original volume label.
package remaster

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"cochaviz/remaster/internal/logging"
)

// baseKarg is always the first kernel argument; flags append to it.
const baseKarg = "quiet"

// Options selects the inputs and output of a single run.
type Options struct {
	SourceISO  string
	OutputPath string
	Kickstart  string
	ExtraKargs []string
	Verbose    bool
}

// Pipeline executes the remastering stages in a fixed order. Zero-value
// collaborator fields select the production implementations; tests inject
// stubs.
type Pipeline struct {
	Options Options
	Logger  *slog.Logger
	Mounter Mounter
	Runner  Runner

	// ReadLabel overrides volume-label lookup when non-nil.
	ReadLabel func(path string) (string, error)
}

// Run performs one remastering pass. Any stage failure aborts the run; the
// scratch workspace is removed on every exit path.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := logging.Ensure(p.Logger)
	mounter := p.Mounter
	if mounter == nil {
		mounter = loopMounter{}
	}
	runner := p.Runner
	if runner == nil {
		runner = execRunner{verbose: p.Options.Verbose}
	}
	readLabel := p.ReadLabel
	if readLabel == nil {
		readLabel = ReadVolumeLabel
	}

	label, err := readLabel(p.Options.SourceISO)
	if err != nil {
		logger.Warn("volume label unavailable, continuing without one",
			"image", p.Options.SourceISO, "error", err)
		label = ""
	}

	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close(logger)

	logger = logger.With("run_id", ws.RunID)
	logger.Info("remastering image",
		"source", p.Options.SourceISO,
		"output", p.Options.OutputPath,
		"label", label)

	if err := extractTree(ctx, mounter, p.Options.SourceISO, ws.MountDir, ws.Extracted, logger); err != nil {
		return err
	}

	if err := sanitizeTree(ws.Extracted, logger); err != nil {
		return err
	}

	kickstartName := filepath.Base(p.Options.Kickstart)
	subs := Substitutions{
		Label:     label,
		Kickstart: kickstartName,
		Kargs:     strings.Join(append([]string{baseKarg}, p.Options.ExtraKargs...), " "),
	}

	targets := []struct{ src, dst string }{
		{p.Options.Kickstart, filepath.Join(ws.Extracted, kickstartName)},
		{filepath.Join(ws.Extracted, biosBootConfig), filepath.Join(ws.Extracted, biosBootConfig)},
		{filepath.Join(ws.Extracted, uefiBootConfig), filepath.Join(ws.Extracted, uefiBootConfig)},
	}
	for _, target := range targets {
		if err := applyTemplate(target.src, target.dst, subs); err != nil {
			return err
		}
		logger.Debug("rendered template", "source", target.src, "destination", target.dst)
	}

	if err := buildImage(ctx, runner, ws.Extracted, label, p.Options.OutputPath, p.Options.Verbose, logger); err != nil {
		return err
	}

	if err := writeChecksum(p.Options.OutputPath); err != nil {
		return err
	}

	logger.Info("image ready", "output", p.Options.OutputPath)
	return nil
}
