// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package godatum

//---- ComparisonMode ----

// ComparisonMode controls how much two reference objects must have in common
// before they compare equal. Modes are ordered from strictest to loosest.
type ComparisonMode int

const (
	// Strict compares every field bit for bit, metadata included.
	Strict ComparisonMode = iota
	// ByContract compares all properties visible through the public API.
	ByContract
	// IgnoreMetadata compares only the properties relevant to coordinate
	// transformations (names, identifiers, Bursa-Wolf sets are ignored).
	IgnoreMetadata
	// Compatibility is IgnoreMetadata with numeric tolerance.
	Compatibility
)

// IsApproximate reports whether the mode allows small numeric differences.
func (m ComparisonMode) IsApproximate() bool {
	return m == Compatibility
}

// IgnoresMetadata reports whether names and identifiers are excluded.
func (m ComparisonMode) IgnoresMetadata() bool {
	return m >= IgnoreMetadata
}

func (m ComparisonMode) String() string {
	switch m {
	case Strict:
		return "STRICT"
	case ByContract:
		return "BY_CONTRACT"
	case IgnoreMetadata:
		return "IGNORE_METADATA"
	case Compatibility:
		return "COMPATIBILITY"
	default:
		return "UNKNOWN!"
	}
}
