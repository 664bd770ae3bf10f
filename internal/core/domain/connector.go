package domain

import (
	"fmt"
	"time"
)

// ConnectorType identifies the kind of vertical transition.
type ConnectorType string

const (
	ConnectorElevator  ConnectorType = "elevator"
	ConnectorStairs    ConnectorType = "stairs"
	ConnectorEscalator ConnectorType = "escalator"
	ConnectorRamp      ConnectorType = "ramp"
)

// ConnectorTypes lists every supported connector type.
var ConnectorTypes = []ConnectorType{
	ConnectorElevator,
	ConnectorStairs,
	ConnectorEscalator,
	ConnectorRamp,
}

// ParseConnectorType converts a string into a ConnectorType.
func ParseConnectorType(s string) (ConnectorType, error) {
	for _, t := range ConnectorTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: connector type %q", ErrInvalidInput, s)
}

// VerticalConnector is one physical access point as it appears on one
// floor. All connectors sharing a SharedID are the same physical
// elevator, stairwell, escalator or ramp; within a shared group each
// floor appears at most once.
type VerticalConnector struct {
	// ID is the unique identifier for this per-floor record.
	ID string `json:"id"`

	// Name is the display name, e.g. "Main Elevator".
	Name string `json:"name" validate:"required"`

	// Type is the kind of transition.
	Type ConnectorType `json:"type" validate:"required,oneof=elevator stairs escalator ramp"`

	// FloorID is the floor this record is drawn on.
	FloorID string `json:"floorId" validate:"required"`

	// Position is the connector centre in normalised coordinates.
	Position Point `json:"position"`

	// Shape is the outline used for hit-testing.
	Shape Shape `json:"shape"`

	// SharedID groups the per-floor records of one physical connector.
	SharedID string `json:"sharedId" validate:"required"`

	// CreatedAt is when the record was created.
	CreatedAt time.Time `json:"createdAt"`
}

// ConnectorsOnFloor returns the connectors owned by floorID, preserving order.
func ConnectorsOnFloor(connectors []VerticalConnector, floorID string) []VerticalConnector {
	var out []VerticalConnector
	for i := range connectors {
		if connectors[i].FloorID == floorID {
			out = append(out, connectors[i])
		}
	}
	return out
}

// SharedGroup returns every connector with the given shared id.
func SharedGroup(connectors []VerticalConnector, sharedID string) []VerticalConnector {
	var out []VerticalConnector
	for i := range connectors {
		if connectors[i].SharedID == sharedID {
			out = append(out, connectors[i])
		}
	}
	return out
}

// MatchingConnectors returns the members of source's shared group that
// live on a floor other than excludeFloorID.
func MatchingConnectors(connectors []VerticalConnector, source VerticalConnector, excludeFloorID string) []VerticalConnector {
	var out []VerticalConnector
	for i := range connectors {
		if connectors[i].SharedID == source.SharedID && connectors[i].FloorID != excludeFloorID {
			out = append(out, connectors[i])
		}
	}
	return out
}

// FindGroupMember returns the connector of the shared group on floorID, or nil.
func FindGroupMember(connectors []VerticalConnector, sharedID, floorID string) *VerticalConnector {
	for i := range connectors {
		if connectors[i].SharedID == sharedID && connectors[i].FloorID == floorID {
			return &connectors[i]
		}
	}
	return nil
}
