package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rohmanhakim/pydocs-scraper/internal/build"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMainDocURL = "https://docs.python.org/3/"
	DefaultPEPsURL    = "https://peps.python.org/"
	DefaultEncoding   = "utf-8"
	appName           = "pydocs-scraper"
)

type Config struct {
	//===============
	// Targets
	//===============
	// Root of the language documentation; every docs page is resolved against it
	mainDocURL url.URL
	// Root of the proposal index site
	pepsURL url.URL

	//===============
	// Output
	//===============
	// Directory under which downloads, results and logs are created
	baseDir string
	// Name of the archive directory under baseDir
	downloadsDir string
	// Name of the CSV results directory under baseDir
	resultsDir string
	// Name of the log directory under baseDir
	logsDir string

	//===============
	// Fetch
	//===============
	// Directory holding the persistent response cache
	cacheDir string
	// User agent that will be used in the request header. In raw string
	userAgent string
	// Maximum time of a single fetch request
	timeout time.Duration
	// WHATWG label of the charset every response body is decoded with,
	// regardless of what the server declares
	encoding string

	//===============
	// Politeness
	//===============
	// Minimum, fixed waiting time between two network requests to the same host.
	baseDelay time.Duration
	// Randomized variation added on top of the base delay.
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64

	//===============
	// Logging
	//===============
	// Debug level logging with per-fetch and per-item progress events
	verbose bool
}

type configDTO struct {
	MainDocURL   string        `yaml:"mainDocUrl,omitempty"`
	PEPsURL      string        `yaml:"pepsUrl,omitempty"`
	BaseDir      string        `yaml:"baseDir,omitempty"`
	DownloadsDir string        `yaml:"downloadsDir,omitempty"`
	ResultsDir   string        `yaml:"resultsDir,omitempty"`
	LogsDir      string        `yaml:"logsDir,omitempty"`
	CacheDir     string        `yaml:"cacheDir,omitempty"`
	UserAgent    string        `yaml:"userAgent,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	Encoding     string        `yaml:"encoding,omitempty"`
	BaseDelay    time.Duration `yaml:"baseDelay,omitempty"`
	Jitter       time.Duration `yaml:"jitter,omitempty"`
	RandomSeed   int64         `yaml:"randomSeed,omitempty"`
	Verbose      bool          `yaml:"verbose,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Start with default config, override only non-zero values
	cfg := WithDefault()

	if dto.MainDocURL != "" {
		u, err := parseRootURL(dto.MainDocURL)
		if err != nil {
			return Config{}, err
		}
		cfg.WithMainDocURL(u)
	}
	if dto.PEPsURL != "" {
		u, err := parseRootURL(dto.PEPsURL)
		if err != nil {
			return Config{}, err
		}
		cfg.WithPEPsURL(u)
	}
	if dto.BaseDir != "" {
		cfg.baseDir = dto.BaseDir
	}
	if dto.DownloadsDir != "" {
		cfg.downloadsDir = dto.DownloadsDir
	}
	if dto.ResultsDir != "" {
		cfg.resultsDir = dto.ResultsDir
	}
	if dto.LogsDir != "" {
		cfg.logsDir = dto.LogsDir
	}
	if dto.CacheDir != "" {
		cfg.cacheDir = dto.CacheDir
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.Timeout != 0 {
		cfg.timeout = dto.Timeout
	}
	if dto.Encoding != "" {
		cfg.encoding = dto.Encoding
	}
	if dto.BaseDelay != 0 {
		cfg.baseDelay = dto.BaseDelay
	}
	if dto.Jitter != 0 {
		cfg.jitter = dto.Jitter
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	cfg.verbose = dto.Verbose

	return cfg.Build()
}

// WithConfigFile loads a YAML config file. JSON files are accepted too,
// JSON being a subset of YAML.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = yaml.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config pointing at the public Python
// documentation and proposal sites.
func WithDefault() *Config {
	mainDocURL, _ := url.Parse(DefaultMainDocURL)
	pepsURL, _ := url.Parse(DefaultPEPsURL)

	defaultConfig := Config{
		mainDocURL:   *mainDocURL,
		pepsURL:      *pepsURL,
		baseDir:      ".",
		downloadsDir: "downloads",
		resultsDir:   "results",
		logsDir:      "logs",
		cacheDir:     filepath.Join(xdg.CacheHome, appName),
		userAgent:    build.UserAgent(),
		timeout:      30 * time.Second,
		encoding:     DefaultEncoding,
		baseDelay:    0,
		jitter:       0,
		randomSeed:   time.Now().UnixNano(),
		verbose:      false,
	}
	return &defaultConfig
}

func (c *Config) WithMainDocURL(u url.URL) *Config {
	c.mainDocURL = u
	return c
}

func (c *Config) WithPEPsURL(u url.URL) *Config {
	c.pepsURL = u
	return c
}

func (c *Config) WithBaseDir(dir string) *Config {
	c.baseDir = dir
	return c
}

func (c *Config) WithDownloadsDir(name string) *Config {
	c.downloadsDir = name
	return c
}

func (c *Config) WithResultsDir(name string) *Config {
	c.resultsDir = name
	return c
}

func (c *Config) WithLogsDir(name string) *Config {
	c.logsDir = name
	return c
}

func (c *Config) WithCacheDir(dir string) *Config {
	c.cacheDir = dir
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithEncoding(encoding string) *Config {
	c.encoding = encoding
	return c
}

func (c *Config) WithBaseDelay(delay time.Duration) *Config {
	c.baseDelay = delay
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithVerbose(verbose bool) *Config {
	c.verbose = verbose
	return c
}

func (c *Config) Build() (Config, error) {
	if err := validateRootURL("mainDocUrl", c.mainDocURL); err != nil {
		return Config{}, err
	}
	if err := validateRootURL("pepsUrl", c.pepsURL); err != nil {
		return Config{}, err
	}
	if c.baseDir == "" {
		return Config{}, fmt.Errorf("%w: baseDir cannot be empty", ErrInvalidConfig)
	}
	for name, dir := range map[string]string{
		"downloadsDir": c.downloadsDir,
		"resultsDir":   c.resultsDir,
		"logsDir":      c.logsDir,
		"cacheDir":     c.cacheDir,
	} {
		if dir == "" {
			return Config{}, fmt.Errorf("%w: %s cannot be empty", ErrInvalidConfig, name)
		}
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.timeout)
	}
	if c.baseDelay < 0 || c.jitter < 0 {
		return Config{}, fmt.Errorf("%w: baseDelay and jitter cannot be negative", ErrInvalidConfig)
	}
	if _, err := htmlindex.Get(c.encoding); err != nil {
		return Config{}, fmt.Errorf("%w: unknown encoding %q", ErrInvalidConfig, c.encoding)
	}

	return *c, nil
}

func parseRootURL(raw string) (url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	return *u, nil
}

func validateRootURL(name string, u url.URL) error {
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL, got %q", ErrInvalidConfig, name, u.String())
	}
	return nil
}

func (c Config) MainDocURL() url.URL {
	return c.mainDocURL
}

func (c Config) PEPsURL() url.URL {
	return c.pepsURL
}

func (c Config) BaseDir() string {
	return c.baseDir
}

// DownloadsPath is the directory archives are saved to.
func (c Config) DownloadsPath() string {
	return filepath.Join(c.baseDir, c.downloadsDir)
}

// ResultsPath is the directory CSV result files are saved to.
func (c Config) ResultsPath() string {
	return filepath.Join(c.baseDir, c.resultsDir)
}

// LogsPath is the directory holding the rotating log file.
func (c Config) LogsPath() string {
	return filepath.Join(c.baseDir, c.logsDir)
}

func (c Config) CacheDir() string {
	return c.cacheDir
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) Encoding() string {
	return c.encoding
}

func (c Config) BaseDelay() time.Duration {
	return c.baseDelay
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) Verbose() bool {
	return c.verbose
}
