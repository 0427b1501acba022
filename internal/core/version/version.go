// Package version reports what build is running
package version

import "runtime"

// stamped at link time:
//
//	go build -ldflags "-X csvsplit/internal/core/version.version=v0.3.0 -X csvsplit/internal/core/version.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the build a service or the cli reports
type BuildInfo struct {
	Service string `json:"service" example:"csvsplit-api"`
	Version string `json:"version" example:"v0.3.0"`
	Commit  string `json:"commit"  example:"3f9c2ab"`
	Date    string `json:"date"    example:"2026-01-10T08:00:00Z"`
	Go      string `json:"go"      example:"go1.25.0"`
}

func Info(service string) BuildInfo {
	return BuildInfo{Service: service, Version: version, Commit: commit, Date: date, Go: runtime.Version()}
}
