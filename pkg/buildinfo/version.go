// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/roadgraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/roadgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/roadgraph
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns version, commit and build date on separate lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies roadgraph to upstream providers. Overpass operators
// ask clients to send a descriptive one.
func UserAgent() string {
	return "roadgraph/" + Version + " (+https://github.com/matzehuels/roadgraph)"
}
