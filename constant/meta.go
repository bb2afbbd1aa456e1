// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Finetic is the canonical application identifier used for filesystem paths and CLI branding.
	Finetic = "finetic"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// ClientName is the client identifier reported to Jellyfin servers during authentication.
	ClientName = "Finetic CLI"

	// DeviceName is the device identifier reported to Jellyfin servers during authentication.
	DeviceName = "finetic-cli"
)

// Build-time metadata, populated via -ldflags.
var (
	Revision = "unknown"
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
)
