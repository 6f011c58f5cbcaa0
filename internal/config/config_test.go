package config_test

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/rohmanhakim/pydocs-scraper/internal/build"
	"github.com/rohmanhakim/pydocs-scraper/internal/config"
)

func TestWithDefault(t *testing.T) {
	cfg := config.WithDefault()

	if cfg == nil {
		t.Fatal("WithDefault() returned nil")
	}

	builtCfg, err := cfg.Build()
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}

	mainDocURL := builtCfg.MainDocURL()
	if mainDocURL.String() != "https://docs.python.org/3/" {
		t.Errorf("expected main docs URL https://docs.python.org/3/, got %s", mainDocURL.String())
	}
	pepsURL := builtCfg.PEPsURL()
	if pepsURL.String() != "https://peps.python.org/" {
		t.Errorf("expected PEPs URL https://peps.python.org/, got %s", pepsURL.String())
	}
	if builtCfg.BaseDir() != "." {
		t.Errorf("expected BaseDir '.', got %q", builtCfg.BaseDir())
	}
	if builtCfg.DownloadsPath() != "downloads" {
		t.Errorf("expected DownloadsPath 'downloads', got %q", builtCfg.DownloadsPath())
	}
	if builtCfg.ResultsPath() != "results" {
		t.Errorf("expected ResultsPath 'results', got %q", builtCfg.ResultsPath())
	}
	if builtCfg.LogsPath() != "logs" {
		t.Errorf("expected LogsPath 'logs', got %q", builtCfg.LogsPath())
	}
	if builtCfg.CacheDir() != filepath.Join(xdg.CacheHome, "pydocs-scraper") {
		t.Errorf("unexpected CacheDir %q", builtCfg.CacheDir())
	}
	if builtCfg.Timeout() != 30*time.Second {
		t.Errorf("expected Timeout 30s, got %v", builtCfg.Timeout())
	}
	if builtCfg.Encoding() != "utf-8" {
		t.Errorf("expected Encoding utf-8, got %q", builtCfg.Encoding())
	}
	if builtCfg.UserAgent() != build.UserAgent() {
		t.Errorf("expected UserAgent %q, got %q", build.UserAgent(), builtCfg.UserAgent())
	}
	if builtCfg.BaseDelay() != 0 || builtCfg.Jitter() != 0 {
		t.Errorf("expected no politeness delay by default, got %v + %v", builtCfg.BaseDelay(), builtCfg.Jitter())
	}
	if builtCfg.Verbose() {
		t.Error("expected Verbose false by default")
	}
}

func TestBuilderSetters(t *testing.T) {
	mainDocURL := url.URL{Scheme: "http", Host: "127.0.0.1:8080", Path: "/3/"}
	pepsURL := url.URL{Scheme: "http", Host: "127.0.0.1:8081", Path: "/"}

	cfg, err := config.WithDefault().
		WithMainDocURL(mainDocURL).
		WithPEPsURL(pepsURL).
		WithBaseDir("/tmp/scraper").
		WithDownloadsDir("dl").
		WithResultsDir("out").
		WithLogsDir("log").
		WithCacheDir("/tmp/cache").
		WithUserAgent("TestBot/1.0").
		WithTimeout(5 * time.Second).
		WithEncoding("windows-1252").
		WithBaseDelay(time.Second).
		WithJitter(100 * time.Millisecond).
		WithRandomSeed(42).
		WithVerbose(true).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := cfg.MainDocURL()
	if got.String() != "http://127.0.0.1:8080/3/" {
		t.Errorf("unexpected MainDocURL %s", got.String())
	}
	if cfg.DownloadsPath() != filepath.Join("/tmp/scraper", "dl") {
		t.Errorf("unexpected DownloadsPath %q", cfg.DownloadsPath())
	}
	if cfg.ResultsPath() != filepath.Join("/tmp/scraper", "out") {
		t.Errorf("unexpected ResultsPath %q", cfg.ResultsPath())
	}
	if cfg.LogsPath() != filepath.Join("/tmp/scraper", "log") {
		t.Errorf("unexpected LogsPath %q", cfg.LogsPath())
	}
	if cfg.CacheDir() != "/tmp/cache" {
		t.Errorf("unexpected CacheDir %q", cfg.CacheDir())
	}
	if cfg.UserAgent() != "TestBot/1.0" {
		t.Errorf("unexpected UserAgent %q", cfg.UserAgent())
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("unexpected Timeout %v", cfg.Timeout())
	}
	if cfg.Encoding() != "windows-1252" {
		t.Errorf("unexpected Encoding %q", cfg.Encoding())
	}
	if cfg.BaseDelay() != time.Second || cfg.Jitter() != 100*time.Millisecond {
		t.Errorf("unexpected politeness %v + %v", cfg.BaseDelay(), cfg.Jitter())
	}
	if cfg.RandomSeed() != 42 {
		t.Errorf("unexpected RandomSeed %d", cfg.RandomSeed())
	}
	if !cfg.Verbose() {
		t.Error("expected Verbose true")
	}
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "relative main docs URL",
			cfg:  config.WithDefault().WithMainDocURL(url.URL{Path: "/3/"}),
		},
		{
			name: "non http PEPs URL",
			cfg:  config.WithDefault().WithPEPsURL(url.URL{Scheme: "ftp", Host: "peps.python.org"}),
		},
		{
			name: "empty base dir",
			cfg:  config.WithDefault().WithBaseDir(""),
		},
		{
			name: "empty downloads dir",
			cfg:  config.WithDefault().WithDownloadsDir(""),
		},
		{
			name: "empty cache dir",
			cfg:  config.WithDefault().WithCacheDir(""),
		},
		{
			name: "zero timeout",
			cfg:  config.WithDefault().WithTimeout(0),
		},
		{
			name: "negative jitter",
			cfg:  config.WithDefault().WithJitter(-time.Second),
		},
		{
			name: "unknown encoding",
			cfg:  config.WithDefault().WithEncoding("klingon-8"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Build()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestWithConfigFile_FileDoesNotExist(t *testing.T) {
	_, err := config.WithConfigFile("/nonexistent/path/config.yaml")

	if err == nil {
		t.Fatal("expected error for non-existent file, got nil")
	}
	if !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("expected ErrFileDoesNotExist, got: %v", err)
	}
}

func TestWithConfigFile_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(configPath, []byte("timeout: [unterminated"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	_, err := config.WithConfigFile(configPath)

	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
	if !errors.Is(err, config.ErrConfigParsingFail) {
		t.Errorf("expected ErrConfigParsingFail, got: %v", err)
	}
}

func TestWithConfigFile_ValidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
mainDocUrl: http://localhost:9000/3/
pepsUrl: http://localhost:9001/
baseDir: /srv/scraper
cacheDir: /srv/cache
userAgent: TestBot/1.0
timeout: 10s
encoding: windows-1252
baseDelay: 250ms
jitter: 50ms
randomSeed: 7
verbose: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.WithConfigFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error loading valid config: %v", err)
	}

	mainDocURL := cfg.MainDocURL()
	if mainDocURL.String() != "http://localhost:9000/3/" {
		t.Errorf("unexpected MainDocURL %s", mainDocURL.String())
	}
	if cfg.BaseDir() != "/srv/scraper" {
		t.Errorf("unexpected BaseDir %q", cfg.BaseDir())
	}
	if cfg.DownloadsPath() != filepath.Join("/srv/scraper", "downloads") {
		t.Errorf("unexpected DownloadsPath %q", cfg.DownloadsPath())
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("expected Timeout 10s, got %v", cfg.Timeout())
	}
	if cfg.BaseDelay() != 250*time.Millisecond {
		t.Errorf("expected BaseDelay 250ms, got %v", cfg.BaseDelay())
	}
	if cfg.Jitter() != 50*time.Millisecond {
		t.Errorf("expected Jitter 50ms, got %v", cfg.Jitter())
	}
	if cfg.RandomSeed() != 7 {
		t.Errorf("expected RandomSeed 7, got %d", cfg.RandomSeed())
	}
	if cfg.Encoding() != "windows-1252" {
		t.Errorf("unexpected Encoding %q", cfg.Encoding())
	}
	if !cfg.Verbose() {
		t.Error("expected Verbose true")
	}
}

func TestWithConfigFile_JSONIsAccepted(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	content := `{"userAgent": "JsonBot/2.0", "timeout": "45s"}`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.WithConfigFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.UserAgent() != "JsonBot/2.0" {
		t.Errorf("unexpected UserAgent %q", cfg.UserAgent())
	}
	if cfg.Timeout() != 45*time.Second {
		t.Errorf("unexpected Timeout %v", cfg.Timeout())
	}
	// untouched fields keep defaults
	if cfg.Encoding() != "utf-8" {
		t.Errorf("expected default Encoding, got %q", cfg.Encoding())
	}
}

func TestWithConfigFile_EmptyFileUsesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := config.WithConfigFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("expected default Timeout, got %v", cfg.Timeout())
	}
}

func TestWithConfigFile_InvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("encoding: klingon-8\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := config.WithConfigFile(configPath)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}
