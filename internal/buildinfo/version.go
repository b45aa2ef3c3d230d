// Package buildinfo holds version information set at build time:
//
//	go build -ldflags "-X github.com/jadwal/schedpdf/internal/buildinfo.Version=v1.0.0 \
//	    -X github.com/jadwal/schedpdf/internal/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/jadwal/schedpdf/internal/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
