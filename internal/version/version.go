// Package version exposes build information for the /version endpoint.
package version

import "runtime"

// Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

// Info is the payload served by the /version endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
	}
}
