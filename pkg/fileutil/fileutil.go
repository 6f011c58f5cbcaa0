package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

// EnsureDir joins dir with the following path elements and creates the
// directory if it does not exist yet. The joined path is returned.
func EnsureDir(dir string, path ...string) (string, failure.ClassifiedError) {
	targetPath := append([]string{dir}, path...)

	joined := filepath.Join(targetPath...)
	if err := os.MkdirAll(joined, 0755); err != nil {
		return "", &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      joined,
		}
	}
	return joined, nil
}

// WriteFile writes data to a temporary sibling and renames it into place,
// so readers never observe a partially written file.
func WriteFile(path string, data []byte) failure.ClassifiedError {
	if _, err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return writeError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return writeError(path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return writeError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return writeError(path, err)
	}
	return nil
}

func writeError(path string, err error) *FileError {
	cause := ErrCauseWriteError
	if errors.Is(err, syscall.ENOSPC) {
		cause = ErrCauseDiskFull
	}
	return &FileError{Message: fmt.Sprintf("%v", err), Cause: cause, Path: path}
}
