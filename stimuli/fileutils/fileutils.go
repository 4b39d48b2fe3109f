package fileutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFileIfExists copies srcPath to dstPath when srcPath exists, creating
// parent directories as needed. A missing source is not an error; the bool
// reports whether a copy happened. With overwrite false an existing
// destination is left untouched.
func CopyFileIfExists(srcPath, dstPath string, overwrite bool) (bool, error) {
	if srcPath == "" || dstPath == "" {
		return false, errors.New("CopyFileIfExists: empty path")
	}

	if _, err := os.Stat(srcPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if !overwrite {
		if _, err := os.Stat(dstPath); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
	}

	b, err := os.ReadFile(srcPath)
	if err != nil {
		return false, err
	}
	if err := WriteFileAtomicSameDir(dstPath, b, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFileAtomicSameDir writes data to path by staging a temp file in the
// destination directory and renaming it into place, so readers never observe
// a partial file and a failed write leaves any previous file intact. Parent
// directories are created as needed. Data is written verbatim; JSON callers
// pass payloads that already end in a newline.
func WriteFileAtomicSameDir(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp_stimuli_*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
