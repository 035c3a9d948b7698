// Package build holds build-time metadata.
package build

// Version is the application version, overridden at link time.
var Version = "dev"
