package build

// Set at link time, e.g.
// -ldflags "-X github.com/rohmanhakim/pydocs-scraper/internal/build.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// UserAgent is the default User-Agent header value, e.g. "pydocs-scraper/1.0.0".
func UserAgent() string {
	return "pydocs-scraper/" + Version
}
