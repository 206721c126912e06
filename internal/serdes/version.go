package serdes

import "fmt"

// Version identifies a wire-format revision. Producers pick the version to
// emit via SerializeOptions; consumers read it back out of the envelope.
// Multiple versions stay decodable so producer and consumer binaries can
// be upgraded independently.
type Version int

// Supported wire-format revisions.
const (
	// Version1: device IDs, memory kind, shapes and dynamic tags as plain
	// arrays; variant branch discriminated by field presence.
	Version1 Version = 1
	// Version2: adds a device_count cross-check and packs dynamic dimension
	// tags into a bitmask.
	Version2 Version = 2
)

// CurrentVersion is the newest revision, used when a caller has no
// compatibility constraint.
const CurrentVersion = Version2

// AllSupportedVersions returns every decodable revision, oldest first.
func AllSupportedVersions() []Version {
	return []Version{Version1, Version2}
}

// IsSupported reports whether v is a known revision.
func (v Version) IsSupported() bool {
	return v >= Version1 && v <= CurrentVersion
}

// String returns the revision as "v<N>".
func (v Version) String() string {
	return fmt.Sprintf("v%d", int(v))
}
