package remaster

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// workspace is the scratch directory tree owned by a single run. The mount
// subdirectory only ever backs the transient loop mount; extracted holds the
// working copy of the image's files and is the only tree that is mutated.
type workspace struct {
	RunID     string
	Root      string
	MountDir  string
	Extracted string
}

func newWorkspace() (*workspace, error) {
	runID := uuid.NewString()
	root := filepath.Join(os.TempDir(), "remaster-"+runID)
	if err := os.Mkdir(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace %s: %w", root, err)
	}

	ws := &workspace{
		RunID:     runID,
		Root:      root,
		MountDir:  filepath.Join(root, "mount"),
		Extracted: filepath.Join(root, "extracted"),
	}
	for _, dir := range []string{ws.MountDir, ws.Extracted} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			os.RemoveAll(root)
			return nil, fmt.Errorf("create workspace subdirectory %s: %w", dir, err)
		}
	}
	return ws, nil
}

// Close removes the workspace. It runs on every exit path; a failure here
// leaks scratch space but never changes the outcome of the run.
func (ws *workspace) Close(logger *slog.Logger) {
	if err := os.RemoveAll(ws.Root); err != nil {
		logger.Warn("workspace cleanup failed", "workspace", ws.Root, "error", err)
	}
}
