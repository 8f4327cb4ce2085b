// Package version exposes the build version string.
package version

// Version is the current release. Overridable at build time with
// `-ldflags "-X wikiparser/pkg/version.Version=..."`.
var Version = "0.4.0-dev"
