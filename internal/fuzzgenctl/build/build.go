// Package build holds build information for fuzzgen, populated at link time, e.g.
//
//	go build -ldflags "-X github.com/G-Research/fuzzgen/internal/fuzzgenctl/build.ReleaseVersion=v0.1.0"
package build

import "runtime"

var (
	ReleaseVersion = "UNKNOWN"
	GitCommit      = "UNKNOWN"
	GoVersion      = runtime.Version()
	BuildTime      = "UNKNOWN"
)
