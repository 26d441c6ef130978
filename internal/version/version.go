// ABOUTME: Version constants for the tonefall binaries
// ABOUTME: Single source of the product name and release string
package version

const (
	// Product is the user-facing product name.
	Product = "Tonefall"

	// Version is the release string reported by the binaries.
	Version = "0.1.0"
)
