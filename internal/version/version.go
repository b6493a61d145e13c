package version

// Version contains the application version information.
// Set via build-time ldflags in production:
// go build -ldflags "-X github.com/sciforge/navbuilder/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)
