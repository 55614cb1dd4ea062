// Package version carries build metadata stamped via -ldflags.
package version

// Overridden at build time:
//
//	go build -ldflags "-X github.com/leitor-app/leitor/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)
