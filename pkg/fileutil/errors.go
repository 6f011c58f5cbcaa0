package fileutil

import (
	"fmt"

	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

type FileErrorCause string

const (
	ErrCausePathError  FileErrorCause = "path error"
	ErrCauseWriteError FileErrorCause = "write error"
	ErrCauseDiskFull   FileErrorCause = "disk full"
)

type FileError struct {
	Message   string
	Retryable bool
	Cause     FileErrorCause
	Path      string
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("file error: %s", e.Cause)
	}
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Path)
}

func (e *FileError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
