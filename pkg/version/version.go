// Package version exposes the build version of the ocrkit binary.
package version

// version is overridden at build time via:
//
//	go build -ldflags "-X github.com/StephenKaylonChan/ocrkit/pkg/version.version=v1.2.3"
var version = "dev" //nolint:gochecknoglobals // Set by the linker at build time

// GetVersion returns the version string embedded at build time,
// or "dev" for local builds.
func GetVersion() string {
	return version
}
