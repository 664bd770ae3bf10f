// Package domain defines the core business entities for waymark.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Building and Floor: the ordered floor plans of a site
//   - VerticalConnector: one floor's face of an elevator, stairwell, escalator or ramp
//   - Tag: a named location on a floor (or everywhere, when unscoped)
//   - Path and PathSegment: single-floor and multi-floor navigation paths
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
