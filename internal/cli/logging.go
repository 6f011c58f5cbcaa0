package cmd

import (
	"io"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/pkg/fileutil"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName       = "parser.log"
	logFileMaxSizeMB  = 1
	logFileMaxBackups = 5
)

// NewLogger writes human readable lines to console and JSON lines to a
// rotating file under logsDir. Debug events are kept only when verbose.
func NewLogger(logsDir string, verbose bool, console io.Writer) (zerolog.Logger, io.Closer, error) {
	dir, err := fileutil.EnsureDir(logsDir)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.DateTime,
		NoColor:    true,
	}
	logger := zerolog.New(zerolog.MultiLevelWriter(consoleWriter, rotating)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, rotating, nil
}
