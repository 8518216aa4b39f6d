package tools

import (
	"os"
	"os/exec"
	"path/filepath"
)

// isGitRepo walks up from dir looking for a .git entry, the same check the
// teacher's rename/move actions used before shelling out to `git mv`.
func isGitRepo(dir string) bool {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// gitMove runs `git mv` from src's own directory, falling back to a
// plain os.Rename if git isn't on PATH or the command fails. The bool return
// reports whether git actually performed the move (so callers can record
// gitHistoryPreserved in their tool payload).
func gitMove(src, dst string) (bool, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return false, os.Rename(src, dst)
	}
	dir := filepath.Dir(src)
	cmd := exec.Command("git", "mv", src, dst)
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		return false, os.Rename(src, dst)
	}
	return true, nil
}

// moveOrRename dispatches to git mv when src lives in a git repo, else a
// plain rename, per spec.md's history-preservation supplemental feature.
func moveOrRename(src, dst string) (gitHistoryPreserved bool, err error) {
	if isGitRepo(filepath.Dir(src)) {
		return gitMove(src, dst)
	}
	return false, os.Rename(src, dst)
}
