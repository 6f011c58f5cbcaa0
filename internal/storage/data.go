package storage

import "net/url"

// Archive is a downloaded binary about to be persisted.
type Archive struct {
	sourceURL url.URL
	filename  string
	content   []byte
}

func NewArchive(sourceURL url.URL, filename string, content []byte) Archive {
	return Archive{
		sourceURL: sourceURL,
		filename:  filename,
		content:   content,
	}
}

func (a *Archive) SourceURL() url.URL {
	return a.sourceURL
}

func (a *Archive) Filename() string {
	return a.filename
}

func (a *Archive) Content() []byte {
	return a.content
}

// Persistence
type WriteResult struct {
	path        string
	contentHash string
	sizeByte    int
}

func NewWriteResult(
	path string,
	contentHash string,
	sizeByte int,
) WriteResult {
	return WriteResult{
		path:        path,
		contentHash: contentHash,
		sizeByte:    sizeByte,
	}
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}

func (w *WriteResult) SizeByte() int {
	return w.sizeByte
}
