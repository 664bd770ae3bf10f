package domain

import "fmt"

// PathSegment is a run of points drawn on a single floor. Every segment
// but the last ends on the connector named by ConnectorID.
type PathSegment struct {
	ID          string  `json:"id"`
	FloorID     string  `json:"floorId"`
	Points      []Point `json:"points"`
	ConnectorID string  `json:"connectorId,omitempty"`
}

// Path is a navigation path between two locations. A single-floor path
// carries its points in Points; a multi-floor path carries Segments and
// leaves Points empty.
type Path struct {
	// ID is preserved across edits.
	ID string `json:"id"`

	// Name is derived as "<source> to <destination>".
	Name string `json:"name"`

	// Source and Destination are free-text endpoint names.
	Source      string `json:"source"`
	Destination string `json:"destination"`

	// Points holds the flat point list of a single-floor path.
	Points []Point `json:"points"`

	// IsPublished marks the path visible outside design and edit modes.
	IsPublished bool `json:"isPublished"`

	// SourceTagID and DestinationTagID reference tags resolved by name.
	SourceTagID      string `json:"sourceTagId,omitempty"`
	DestinationTagID string `json:"destinationTagId,omitempty"`

	// FloorID scopes a single-floor path. Empty means the path is global
	// (legacy single-map mode) and applies to every floor.
	FloorID string `json:"floorId,omitempty"`

	// Color is an optional display colour.
	Color string `json:"color,omitempty"`

	// IsMultiFloor marks a segmented path.
	IsMultiFloor bool `json:"isMultiFloor,omitempty"`

	// Segments holds the per-floor runs of a multi-floor path.
	Segments []PathSegment `json:"segments,omitempty"`

	// SourceFloorID and DestinationFloorID are the first and last
	// segment floors of a multi-floor path.
	SourceFloorID      string `json:"sourceFloorId,omitempty"`
	DestinationFloorID string `json:"destinationFloorId,omitempty"`
}

// PathName derives the display name of a path.
func PathName(source, destination string) string {
	return fmt.Sprintf("%s to %s", source, destination)
}

// IsGlobal reports whether a single-floor path has no floor scope.
func (p *Path) IsGlobal() bool {
	return !p.IsMultiFloor && p.FloorID == ""
}

// RelevantTo reports whether the path should be considered on floorID.
// A multi-floor path is relevant when one of its segments is on the
// floor. A single-floor path is relevant when it is on the floor, when
// it is global, or when no floor is selected.
func (p *Path) RelevantTo(floorID string) bool {
	if p.IsMultiFloor && p.Segments != nil {
		for i := range p.Segments {
			if p.Segments[i].FloorID == floorID {
				return true
			}
		}
		return false
	}
	return floorID == "" || p.FloorID == "" || p.FloorID == floorID
}

// PointCount returns the total number of points across the path.
func (p *Path) PointCount() int {
	if !p.IsMultiFloor {
		return len(p.Points)
	}
	n := 0
	for i := range p.Segments {
		n += len(p.Segments[i].Points)
	}
	return n
}

// FloorIDs returns the distinct floors the path touches, in order.
func (p *Path) FloorIDs() []string {
	if !p.IsMultiFloor {
		if p.FloorID == "" {
			return nil
		}
		return []string{p.FloorID}
	}
	var ids []string
	seen := make(map[string]bool)
	for i := range p.Segments {
		id := p.Segments[i].FloorID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Validate checks the structural invariants that must hold before a
// path is persisted.
func (p *Path) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPath)
	}
	if p.IsMultiFloor {
		if len(p.Segments) == 0 {
			return fmt.Errorf("%w: multi-floor path has no segments", ErrInvalidPath)
		}
		if len(p.Points) > 0 {
			return fmt.Errorf("%w: multi-floor path carries flat points", ErrInvalidPath)
		}
		for i := 0; i < len(p.Segments)-1; i++ {
			if p.Segments[i].ConnectorID == "" {
				return fmt.Errorf("%w: segment %d has no connector", ErrInvalidPath, i+1)
			}
		}
	}
	if p.IsPublished && p.PointCount() == 0 {
		return fmt.Errorf("%w: published path has no points", ErrInvalidPath)
	}
	return nil
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	out := p
	if p.Points != nil {
		out.Points = ClonePoints(p.Points)
	}
	if p.Segments != nil {
		out.Segments = make([]PathSegment, len(p.Segments))
		for i, seg := range p.Segments {
			seg.Points = ClonePoints(seg.Points)
			out.Segments[i] = seg
		}
	}
	return out
}

// FindPath returns the path with the given id, or nil.
func FindPath(paths []Path, id string) *Path {
	for i := range paths {
		if paths[i].ID == id {
			return &paths[i]
		}
	}
	return nil
}
