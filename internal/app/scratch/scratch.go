// Package scratch manages per-job temporary workspaces. Every job gets
// its own directory so concurrent jobs never collide on file names.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "meetscribe/internal/app/errors"
)

// Workspace is a throwaway directory for one job's intermediate files.
type Workspace struct {
	dir string
}

// NewWorkspace creates a unique directory under baseDir. An empty
// baseDir falls back to the system temp dir.
func NewWorkspace(baseDir string) (*Workspace, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir := filepath.Join(baseDir, "meetscribe-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns an absolute path for name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// NewClipPath returns a fresh unique .wav path inside the workspace.
func (w *Workspace) NewClipPath() string {
	return filepath.Join(w.dir, uuid.New().String()+".wav")
}

// Close removes the workspace and everything in it.
func (w *Workspace) Close() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return apperrors.ResourceCleanup(err, "scratch dir "+w.dir)
	}
	return nil
}
