package cli

import (
	"os"
	"path/filepath"

	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
)

type outputFile struct {
	path string
	data []byte
}

// writeOutputs writes every file atomically. All content is rendered before
// the first write, so a failed run never leaves a half-written output.
func writeOutputs(files []outputFile) error {
	for _, f := range files {
		if err := writeFileAtomic(f.path, f.data); err != nil {
			return apkerr.Wrap(apkerr.ErrCodeInternal, err, "write %s", f.path)
		}
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
