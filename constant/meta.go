// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Cutplay is the canonical application identifier used for filesystem paths and CLI branding.
	Cutplay = "cutplay"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// AsciiArtLogo is the banner shown on the root help screen.
const AsciiArtLogo = `
  ___ _   _| |_ _ __ | | __ _ _  _
 / __| | | | __| '_ \| |/ _' | || |
| (__| |_| | |_| |_) | | (_| | \_, |
 \___|\__,_|\__| .__/|_|\__,_| |__/
               |_|`

// Build metadata, overridden at link time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
