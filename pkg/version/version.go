// Package version holds the lcv version string, overridden at build time via
//
//	go build -ldflags "-X github.com/Geddart/linearcal/pkg/version.Version=v1.2.3"
package version

// Version is the current lcv version.
var Version = "dev"
