package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/pkg/fileutil"
)

// OutputKind selects how a result table is emitted.
type OutputKind string

const (
	OutputPlain  OutputKind = ""
	OutputPretty OutputKind = "pretty"
	OutputFile   OutputKind = "file"
)

var ErrUnknownOutputKind = errors.New("unknown output kind")

// ParseOutputKind accepts "pretty", "file", or an empty name for plain output.
func ParseOutputKind(name string) (OutputKind, error) {
	switch kind := OutputKind(name); kind {
	case OutputPlain, OutputPretty, OutputFile:
		return kind, nil
	default:
		return OutputPlain, fmt.Errorf("%w: %q", ErrUnknownOutputKind, name)
	}
}

// DateTimeFormat is the timestamp layout used in result file names.
const DateTimeFormat = "2006-01-02_15-04-05"

// Writer emits a finished result table. mode names the table's origin.
type Writer interface {
	Write(mode string, table *Table) error
}

// PlainWriter prints every row, header included, as space separated cells.
type PlainWriter struct {
	output io.Writer
}

func NewPlainWriter(output io.Writer) *PlainWriter {
	return &PlainWriter{output: output}
}

func (w *PlainWriter) Write(mode string, table *Table) error {
	for _, row := range table.Records() {
		if _, err := fmt.Fprintln(w.output, strings.Join(row, " ")); err != nil {
			return &ReportError{Message: err.Error(), Cause: ErrCauseWriteFailed}
		}
	}
	return nil
}

// PrettyWriter renders the table as an aligned markdown table.
type PrettyWriter struct {
	output io.Writer
}

func NewPrettyWriter(output io.Writer) *PrettyWriter {
	return &PrettyWriter{output: output}
}

func (w *PrettyWriter) Write(mode string, table *Table) error {
	md := markdown.NewMarkdown(w.output)
	md.Table(markdown.TableSet{
		Header: table.Header(),
		Rows:   table.Rows(),
	})
	if err := md.Build(); err != nil {
		return &ReportError{Message: err.Error(), Cause: ErrCauseRenderFailed}
	}
	return nil
}

// FileWriter saves the table as CSV under resultsDir, one file per run,
// named <mode>_<timestamp>.csv.
type FileWriter struct {
	metadataSink metadata.MetadataSink
	resultsDir   string
	now          func() time.Time
}

func NewFileWriter(metadataSink metadata.MetadataSink, resultsDir string) *FileWriter {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &FileWriter{
		metadataSink: metadataSink,
		resultsDir:   resultsDir,
		now:          time.Now,
	}
}

// SetClock replaces the time source; used by tests.
func (w *FileWriter) SetClock(now func() time.Time) {
	w.now = now
}

// Path returns the file a table of mode would be written to at t.
func (w *FileWriter) Path(mode string, t time.Time) string {
	return filepath.Join(w.resultsDir, fmt.Sprintf("%s_%s.csv", mode, t.Format(DateTimeFormat)))
}

func (w *FileWriter) Write(mode string, table *Table) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(table.Records()); err != nil {
		return w.fail(mode, &ReportError{Message: err.Error(), Cause: ErrCauseRenderFailed})
	}

	path := w.Path(mode, w.now())
	if err := fileutil.WriteFile(path, buf.Bytes()); err != nil {
		return w.fail(mode, &ReportError{Message: err.Error(), Cause: ErrCauseWriteFailed})
	}

	w.metadataSink.RecordArtifact(metadata.ArtifactResultsFile, path, []metadata.Attribute{
		metadata.NewAttr(metadata.AttrMode, mode),
	})
	return nil
}

func (w *FileWriter) fail(mode string, err *ReportError) *ReportError {
	w.metadataSink.RecordError(
		time.Now(),
		"report",
		"FileWriter.Write",
		mapReportErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrMode, mode),
			metadata.NewAttr(metadata.AttrPath, w.resultsDir),
		},
	)
	return err
}

// NewWriter picks the writer for kind. Unknown kinds fall back to plain.
func NewWriter(kind OutputKind, stdout io.Writer, metadataSink metadata.MetadataSink, resultsDir string) Writer {
	switch kind {
	case OutputPretty:
		return NewPrettyWriter(stdout)
	case OutputFile:
		return NewFileWriter(metadataSink, resultsDir)
	default:
		return NewPlainWriter(stdout)
	}
}

// Emit writes table through w unless it carries no data.
// It reports whether anything was written.
func Emit(w Writer, mode string, table *Table) (bool, error) {
	if !table.HasData() {
		return false, nil
	}
	if err := w.Write(mode, table); err != nil {
		return false, err
	}
	return true, nil
}
