// Package version holds the build version stamped into binaries and
// reported by the health endpoint.
package version

// Version is set at build time via -ldflags.
var Version = "0.1.0"
