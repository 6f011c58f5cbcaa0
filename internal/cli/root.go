package cmd

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/internal/build"
	"github.com/rohmanhakim/pydocs-scraper/internal/config"
	"github.com/rohmanhakim/pydocs-scraper/internal/report"
	"github.com/rohmanhakim/pydocs-scraper/internal/scheduler"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfgFile    string
	clearCache bool
	output     string
	mainDocURL string
	pepsURL    string
	baseDir    string
	cacheDir   string
	userAgent  string
	encoding   string
	timeout    time.Duration
	baseDelay  time.Duration
	jitter     time.Duration
	randomSeed int64
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pydocs-scraper <mode>",
	Short: "A scraper for the Python documentation and PEP index.",
	Long: `pydocs-scraper collects structured data from the Python documentation
site and the PEP index, one mode per run:

  whats-new        title and editors of every "What's New" article
  latest-versions  documentation link, version and status from the sidebar
  download         save the A4 PDF documentation archive
  pep              count proposals by the status shown on their pages

Responses are cached on disk between runs. Use --clear-cache to start fresh.`,
	Version:      build.FullVersion(),
	ValidArgs:    scheduler.Modes(),
	Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := scheduler.ParseMode(args[0])
		if err != nil {
			return err
		}
		outputKind, err := report.ParseOutputKind(output)
		if err != nil {
			return err
		}
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return Run(ctx, cfg, mode, RunOptions{
			ClearCache: clearCache,
			Output:     outputKind,
			Stdout:     cmd.OutOrStdout(),
			Stderr:     cmd.ErrOrStderr(),
			Args:       parsedArgs(cmd, mode),
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&clearCache, "clear-cache", "c", false, "clear the response cache before running")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output mode: pretty or file (default plain print)")
	rootCmd.Flags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/pydocs-scraper.yaml)")
	rootCmd.Flags().StringVar(&mainDocURL, "main-doc-url", "", "root of the documentation site")
	rootCmd.Flags().StringVar(&pepsURL, "peps-url", "", "PEP index page")
	rootCmd.Flags().StringVar(&baseDir, "base-dir", "", "directory holding downloads, results and logs")
	rootCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory of the response cache database")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.Flags().StringVar(&encoding, "encoding", "", "text encoding used to decode every page")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.Flags().DurationVar(&baseDelay, "base-delay", 0, "base delay between HTTP requests to the same host")
	rootCmd.Flags().DurationVar(&jitter, "jitter", 0, "random jitter added to base delay")
	rootCmd.Flags().Int64Var(&randomSeed, "random-seed", 0, "seed for random number generation (0 for current time)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log fetches, progress and extraction errors")
}

// InitConfigWithError builds the run configuration from the config file
// when one is given, otherwise from defaults overridden by CLI flags.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	configBuilder := config.WithDefault()

	if mainDocURL != "" {
		u, err := parseRootURL(mainDocURL)
		if err != nil {
			return config.Config{}, err
		}
		configBuilder = configBuilder.WithMainDocURL(u)
	}

	if pepsURL != "" {
		u, err := parseRootURL(pepsURL)
		if err != nil {
			return config.Config{}, err
		}
		configBuilder = configBuilder.WithPEPsURL(u)
	}

	if baseDir != "" {
		configBuilder = configBuilder.WithBaseDir(baseDir)
	}

	if cacheDir != "" {
		configBuilder = configBuilder.WithCacheDir(cacheDir)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if encoding != "" {
		configBuilder = configBuilder.WithEncoding(encoding)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if baseDelay > 0 {
		configBuilder = configBuilder.WithBaseDelay(baseDelay)
	}

	if jitter > 0 {
		configBuilder = configBuilder.WithJitter(jitter)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	if verbose {
		configBuilder = configBuilder.WithVerbose(verbose)
	}

	return configBuilder.Build()
}

func parseRootURL(raw string) (url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: error parsing URL %s: %s", config.ErrInvalidConfig, raw, err.Error())
	}
	return *u, nil
}

// parsedArgs collects the mode and every flag set on the command line.
func parsedArgs(cmd *cobra.Command, mode scheduler.Mode) map[string]string {
	args := map[string]string{"arg_mode": string(mode)}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		args["arg_"+strings.ReplaceAll(f.Name, "-", "_")] = f.Value.String()
	})
	return args
}

func ResetFlags() {
	cfgFile = ""
	clearCache = false
	output = ""
	mainDocURL = ""
	pepsURL = ""
	baseDir = ""
	cacheDir = ""
	userAgent = ""
	encoding = ""
	timeout = 0
	baseDelay = 0
	jitter = 0
	randomSeed = 0
	verbose = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetMainDocURLForTest(raw string) {
	mainDocURL = raw
}

func SetPEPsURLForTest(raw string) {
	pepsURL = raw
}

func SetBaseDirForTest(dir string) {
	baseDir = dir
}

func SetCacheDirForTest(dir string) {
	cacheDir = dir
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetEncodingForTest(name string) {
	encoding = name
}

func SetTimeoutForTest(d time.Duration) {
	timeout = d
}

func SetBaseDelayForTest(d time.Duration) {
	baseDelay = d
}

func SetJitterForTest(d time.Duration) {
	jitter = d
}

func SetRandomSeedForTest(seed int64) {
	randomSeed = seed
}

func SetVerboseForTest(v bool) {
	verbose = v
}

// RootCommandForTest exposes the root command for argument validation tests.
func RootCommandForTest() *cobra.Command {
	return rootCmd
}
