package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
	"github.com/rohmanhakim/pydocs-scraper/pkg/fileutil"
	"github.com/rohmanhakim/pydocs-scraper/pkg/hashutil"
)

/*
Responsibilities
- Persist downloaded archives
- Ensure the target directory exists

Output Characteristics
- Bytes are written verbatim
- Reruns replace the previous file atomically
- Every write reports the content hash of what landed on disk
*/

type Sink interface {
	Write(
		outputDir string,
		archive Archive,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	archive Archive,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	sourceURL := archive.SourceURL()
	writeResult, storageError := write(outputDir, archive, hashAlgo)
	if storageError != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(storageError),
			storageError.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, sourceURL.String()),
				metadata.NewAttr(metadata.AttrWritePath, storageError.Path),
			},
		)
		return WriteResult{}, storageError
	}

	s.metadataSink.RecordArtifact(
		metadata.ArtifactArchive,
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, sourceURL.String()),
			metadata.NewAttr(metadata.AttrContentHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	archive Archive,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, *StorageError) {
	filename := archive.Filename()
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return WriteResult{}, &StorageError{
			Message:   "archive filename must be a single path segment",
			Retryable: false,
			Cause:     ErrCauseInvalidFilename,
			Path:      filepath.Join(outputDir, filename),
		}
	}

	contentHash, err := hashutil.HashBytes(archive.Content(), hashAlgo)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}

	if _, err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      outputDir,
		}
	}

	fullPath := filepath.Join(outputDir, filename)
	if err := fileutil.WriteFile(fullPath, archive.Content()); err != nil {
		cause := ErrCauseWriteFailure
		var fileErr *fileutil.FileError
		if errors.As(err, &fileErr) && fileErr.Cause == fileutil.ErrCauseDiskFull {
			cause = ErrCauseDiskFull
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     cause,
			Path:      fullPath,
		}
	}

	return NewWriteResult(fullPath, contentHash, len(archive.Content())), nil
}
