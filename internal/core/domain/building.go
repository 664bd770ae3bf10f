package domain

import (
	"strings"
	"time"
)

// Building owns an ordered sequence of floors. Deleting a building
// deletes its floors.
type Building struct {
	// ID is the unique identifier for the building.
	ID string `json:"id"`

	// Name is the human-readable name of the building.
	Name string `json:"name" validate:"required"`

	// Floors are kept in display order, lowest position first.
	Floors []Floor `json:"floors"`

	// CreatedAt is when the building was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the building or its floor list last changed.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Floor is a single floor plan inside a building.
type Floor struct {
	// ID is the unique identifier for the floor.
	ID string `json:"id"`

	// BuildingID links the floor to its owning building.
	BuildingID string `json:"buildingId"`

	// Label is the display label, e.g. "Ground" or "Level 2".
	Label string `json:"label" validate:"required"`

	// ImageURL references the floor-plan image.
	ImageURL string `json:"imageUrl"`

	// CreatedAt is when the floor was added.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the floor was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// FloorByID returns the floor with the given id, or nil.
func (b *Building) FloorByID(id string) *Floor {
	if b == nil {
		return nil
	}
	for i := range b.Floors {
		if b.Floors[i].ID == id {
			return &b.Floors[i]
		}
	}
	return nil
}

// FloorByLabel returns the floor whose label matches case-insensitively, or nil.
func (b *Building) FloorByLabel(label string) *Floor {
	if b == nil {
		return nil
	}
	return FindFloorByLabel(b.Floors, label)
}

// HasFloor reports whether the building owns a floor with the given id.
func (b *Building) HasFloor(id string) bool {
	return b.FloorByID(id) != nil
}

// FindFloorByLabel searches floors for a case-insensitive label match.
func FindFloorByLabel(floors []Floor, label string) *Floor {
	for i := range floors {
		if strings.EqualFold(floors[i].Label, label) {
			return &floors[i]
		}
	}
	return nil
}

// FloorLabels returns the labels of floors in order.
func FloorLabels(floors []Floor) []string {
	labels := make([]string, len(floors))
	for i := range floors {
		labels[i] = floors[i].Label
	}
	return labels
}
