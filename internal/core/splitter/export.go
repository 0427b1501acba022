package splitter

import (
	"os"
	"path/filepath"

	perr "csvsplit/internal/platform/errors"
)

// WriteAll saves artifacts into dir (created if missing) and returns the written paths
// files are written under a temp name and renamed into place; if any write fails
// every file written by this call is removed
func WriteAll(dir string, artifacts []Artifact) (paths []string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "create output dir %s", dir)
	}
	defer func() {
		if err != nil {
			for _, p := range paths {
				_ = os.Remove(p)
			}
			paths = nil
		}
	}()

	for _, a := range artifacts {
		final := filepath.Join(dir, filepath.Base(a.Name))
		tmp := final + ".part"
		if err := writeFile(tmp, a.Data, 0o644); err != nil {
			_ = os.Remove(tmp)
			return paths, perr.Wrapf(err, perr.ErrorCodeIO, "write %s", a.Name)
		}
		if err := os.Rename(tmp, final); err != nil {
			_ = os.Remove(tmp)
			return paths, perr.Wrapf(err, perr.ErrorCodeIO, "rename %s", a.Name)
		}
		paths = append(paths, final)
	}
	return paths, nil
}
