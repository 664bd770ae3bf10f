package domain

import (
	"strings"
	"time"
)

// Tag is a named location of interest, usable as a path endpoint.
type Tag struct {
	// ID is the unique identifier for the tag.
	ID string `json:"id"`

	// Name is unique per floor and matched case-insensitively.
	Name string `json:"name" validate:"required"`

	// Category groups tags, e.g. "office" or "restroom".
	Category string `json:"category"`

	// Shape is the outline of the tagged area.
	Shape Shape `json:"shape"`

	// FloorID scopes the tag to one floor. Empty means the tag applies
	// everywhere, which is how single-map mode stores its tags.
	FloorID string `json:"floorId,omitempty"`

	// Color is an optional display colour.
	Color string `json:"color,omitempty"`

	// Position is the tag centre in normalised coordinates.
	Position Point `json:"position"`

	// CreatedAt is when the tag was created.
	CreatedAt time.Time `json:"createdAt"`
}

// IsGlobal reports whether the tag is not scoped to a floor.
func (t *Tag) IsGlobal() bool {
	return t.FloorID == ""
}

// AppliesTo reports whether the tag is visible on floorID. Global tags
// apply to every floor, and every tag applies when no floor is selected.
func (t *Tag) AppliesTo(floorID string) bool {
	return floorID == "" || t.IsGlobal() || t.FloorID == floorID
}

// FindTagByName returns the first tag whose name matches case-insensitively.
func FindTagByName(tags []Tag, name string) *Tag {
	if name == "" {
		return nil
	}
	for i := range tags {
		if strings.EqualFold(tags[i].Name, name) {
			return &tags[i]
		}
	}
	return nil
}
