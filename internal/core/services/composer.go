package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/logger"
)

// ComposerState is a state of the multi-floor path composer.
type ComposerState int

const (
	// StateIdle means no path is being drawn.
	StateIdle ComposerState = iota

	// StateComposing means clicks add points to the current segment.
	StateComposing

	// StateAwaitingDecision means a connector was hit and the floor
	// switch question is open. Clicks are not processed.
	StateAwaitingDecision
)

// String returns the name of the state.
func (s ComposerState) String() string {
	switch s {
	case StateComposing:
		return "composing"
	case StateAwaitingDecision:
		return "awaiting-decision"
	default:
		return "idle"
	}
}

// Transition describes a completed floor switch.
type Transition struct {
	// Closed is the segment that ended on the source connector.
	Closed domain.PathSegment

	// Arrival is the matching connector on the target floor.
	Arrival domain.VerticalConnector

	// Floor is the new active floor.
	Floor domain.Floor
}

// Composer accumulates per-floor segments while a path is drawn across
// floors. It also carries the point buffer and undo stack used for
// ordinary single-floor drawing.
type Composer struct {
	state      ComposerState
	multiFloor bool
	segments   []domain.PathSegment
	floorID    string
	buffer     PointBuffer

	// lastInteraction is the connector most recently declined or arrived
	// at; it is skipped by detection.
	lastInteraction string
	pending         *domain.VerticalConnector
}

// NewComposer creates an idle composer.
func NewComposer() *Composer {
	return &Composer{}
}

// State returns the current state.
func (c *Composer) State() ComposerState {
	return c.state
}

// IsMultiFloor reports whether the path being drawn spans floors.
func (c *Composer) IsMultiFloor() bool {
	return c.multiFloor
}

// PromptActive reports whether a connector decision is open.
func (c *Composer) PromptActive() bool {
	return c.state == StateAwaitingDecision
}

// CurrentFloorID returns the floor of the segment being drawn.
func (c *Composer) CurrentFloorID() string {
	return c.floorID
}

// LastInteraction returns the id of the connector that detection skips.
func (c *Composer) LastInteraction() string {
	return c.lastInteraction
}

// Pending returns the connector awaiting a decision, or nil.
func (c *Composer) Pending() *domain.VerticalConnector {
	return c.pending
}

// Segments returns a copy of the completed segments.
func (c *Composer) Segments() []domain.PathSegment {
	out := make([]domain.PathSegment, len(c.segments))
	for i, seg := range c.segments {
		seg.Points = domain.ClonePoints(seg.Points)
		out[i] = seg
	}
	return out
}

// Points returns a copy of the in-progress buffer.
func (c *Composer) Points() []domain.Point {
	return c.buffer.Points()
}

// UndoDepth returns the number of undo snapshots available.
func (c *Composer) UndoDepth() int {
	return c.buffer.UndoDepth()
}

// HasContent reports whether there is anything to save.
func (c *Composer) HasContent() bool {
	return c.buffer.Len() > 0 || len(c.segments) > 0
}

// BeginDrawing enters ordinary drawing on floorID without discarding the buffer.
func (c *Composer) BeginDrawing(floorID string) {
	if c.state == StateIdle {
		c.floorID = floorID
	}
	c.state = StateComposing
	c.lastInteraction = ""
	c.pending = nil
}

// StartMultiFloor enters multi-floor composition on floorID, clearing
// accumulated segments and interaction memory.
func (c *Composer) StartMultiFloor(floorID string) {
	c.state = StateComposing
	c.multiFloor = true
	c.segments = nil
	c.floorID = floorID
	c.lastInteraction = ""
	c.pending = nil
}

// AddPoint appends a point to the current segment.
func (c *Composer) AddPoint(p domain.Point) error {
	switch c.state {
	case StateComposing:
		c.buffer.Append(p)
		return nil
	case StateAwaitingDecision:
		return domain.ErrPromptActive
	default:
		return domain.ErrNotDrawing
	}
}

// MovePoint moves a point of the current segment in place.
func (c *Composer) MovePoint(index int, p domain.Point) error {
	if c.state != StateComposing {
		return domain.ErrNotDrawing
	}
	if !c.buffer.Move(index, p) {
		return fmt.Errorf("%w: point index %d", domain.ErrInvalidInput, index)
	}
	return nil
}

// Undo restores the buffer to its state before the last placed point.
func (c *Composer) Undo() bool {
	if c.state == StateAwaitingDecision {
		return false
	}
	return c.buffer.Undo()
}

// BeginDecision opens a connector decision for hit.
func (c *Composer) BeginDecision(hit domain.VerticalConnector) error {
	if c.state == StateAwaitingDecision {
		return domain.ErrPromptActive
	}
	if c.state != StateComposing {
		return domain.ErrNotDrawing
	}
	c.state = StateAwaitingDecision
	c.pending = &hit
	return nil
}

// Decline closes the open decision without switching floors. When the
// connector reached other floors it is remembered so the same click
// does not prompt again.
func (c *Composer) Decline(availableFloors int) error {
	if c.state != StateAwaitingDecision {
		return domain.ErrNoDecisionPending
	}
	if availableFloors > 0 {
		c.lastInteraction = c.pending.ID
	}
	c.pending = nil
	c.state = StateComposing
	return nil
}

// Transition closes the current segment on the pending connector and
// opens a new one on target, anchored at the shared-group connector
// there.
//
// When target has no connector in the shared group the switch is
// refused with domain.ErrConnectorMismatch: the buffer keeps every
// point drawn so far, the active floor is unchanged, and the decision
// is closed.
func (c *Composer) Transition(target domain.Floor, connectors []domain.VerticalConnector) (*Transition, error) {
	if c.state != StateAwaitingDecision || c.pending == nil {
		return nil, domain.ErrNoDecisionPending
	}
	source := *c.pending

	arrival := domain.FindGroupMember(connectors, source.SharedID, target.ID)
	if arrival == nil {
		c.pending = nil
		c.state = StateComposing
		return nil, fmt.Errorf("%w: %q has no %q connector", domain.ErrConnectorMismatch, target.Label, source.SharedID)
	}

	points := c.buffer.Points()
	points = append(points, source.Position)
	closed := domain.PathSegment{
		ID:          uuid.NewString(),
		FloorID:     c.floorID,
		Points:      points,
		ConnectorID: source.ID,
	}
	c.segments = append(c.segments, closed)

	logger.Debug("closed segment on floor %s with %d points via %q", c.floorID, len(points), source.Name)

	c.multiFloor = true
	c.floorID = target.ID
	c.buffer.Replace([]domain.Point{arrival.Position})
	c.lastInteraction = arrival.ID
	c.pending = nil
	c.state = StateComposing

	return &Transition{
		Closed:  closed,
		Arrival: *arrival,
		Floor:   target,
	}, nil
}

// Complete turns the buffer into the final segment on floorID and
// returns the full ordered segment list. The composer is left unchanged.
func (c *Composer) Complete(floorID string) ([]domain.PathSegment, error) {
	if c.state == StateAwaitingDecision {
		return nil, domain.ErrPromptActive
	}
	segments := c.Segments()
	segments = append(segments, domain.PathSegment{
		ID:      uuid.NewString(),
		FloorID: floorID,
		Points:  c.buffer.Points(),
	})
	for i := 0; i < len(segments)-1; i++ {
		if segments[i].ConnectorID == "" {
			return nil, fmt.Errorf("%w: segment %d has no connector", domain.ErrInvalidPath, i+1)
		}
	}
	return segments, nil
}

// Clear discards the buffer, accumulated segments and all transition
// memory, returning to idle.
func (c *Composer) Clear() {
	c.state = StateIdle
	c.multiFloor = false
	c.segments = nil
	c.floorID = ""
	c.buffer.Reset()
	c.lastInteraction = ""
	c.pending = nil
}

// ClearPoints empties the buffer, the segments and all multi-floor
// state but keeps drawing on the current floor.
func (c *Composer) ClearPoints() {
	state := c.state
	floorID := c.floorID
	c.Clear()
	if state != StateIdle {
		c.state = StateComposing
		c.floorID = floorID
	}
}

// Resume loads an existing path for editing. A multi-floor path resumes
// on its last segment, with every earlier segment accumulated; the
// returned floor id is where drawing continues (empty for a global path).
func (c *Composer) Resume(path domain.Path) string {
	c.Clear()
	c.state = StateComposing

	if path.IsMultiFloor && len(path.Segments) > 0 {
		last := len(path.Segments) - 1
		c.multiFloor = true
		for _, seg := range path.Segments[:last] {
			seg.Points = domain.ClonePoints(seg.Points)
			c.segments = append(c.segments, seg)
		}
		c.floorID = path.Segments[last].FloorID
		c.buffer.Replace(path.Segments[last].Points)
		return c.floorID
	}

	c.floorID = path.FloorID
	c.buffer.Replace(path.Points)
	return c.floorID
}

// SetFloor records the active floor while drawing a single-floor path.
func (c *Composer) SetFloor(floorID string) {
	c.floorID = floorID
}
