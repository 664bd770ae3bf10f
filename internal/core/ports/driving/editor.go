package driving

import (
	"context"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// ClickResult reports what a canvas click did.
type ClickResult struct {
	// PointAdded is true when the click placed a point.
	PointAdded bool

	// Connector is the connector hit by the click, if any.
	Connector *domain.VerticalConnector

	// Switched is true when the path continued on another floor.
	Switched bool

	// Floor is the new active floor after a switch.
	Floor *domain.Floor

	// Closed is the segment that ended on the connector after a switch.
	Closed *domain.PathSegment

	// ArrivalAt is the first point of the new segment after a switch.
	ArrivalAt *domain.Point
}

// SessionView is a read-only snapshot of the drawing state.
type SessionView struct {
	BuildingID      string
	FloorID         string
	Mode            domain.EditorMode
	State           string
	MultiFloor      bool
	Points          []domain.Point
	Segments        []domain.PathSegment
	UndoDepth       int
	LastInteraction string
	PromptActive    bool
}

// RouteView describes the route selected for animation.
type RouteView struct {
	Path         domain.Path
	SegmentIndex int
	SegmentCount int
	FloorID      string
	Points       []domain.Point
}

// EditorService is the editing session: selection, modes, drawing,
// multi-floor composition, saving and display selection.
type EditorService interface {
	// Load reads the stored collections and selection. Collections that
	// fail to load start empty.
	Load(ctx context.Context)

	// Buildings returns the loaded buildings.
	Buildings() []domain.Building

	// Tags returns the loaded tags.
	Tags() []domain.Tag

	// Paths returns the loaded paths.
	Paths() []domain.Path

	// Connectors returns the loaded connectors.
	Connectors() []domain.VerticalConnector

	// Mode returns the active editor mode.
	Mode() domain.EditorMode

	// SelectedBuilding returns the selected building, or nil.
	SelectedBuilding() *domain.Building

	// SelectedFloor returns the selected floor, or nil.
	SelectedFloor() *domain.Floor

	// SelectedPath returns the path being edited, or nil.
	SelectedPath() *domain.Path

	// Session returns a snapshot of the drawing state.
	Session() SessionView

	// SelectBuilding selects a building and its first floor.
	SelectBuilding(ctx context.Context, id string) error

	// SelectFloor switches the active floor, discarding unsaved drawing.
	SelectFloor(ctx context.Context, id string) error

	// EnterDesignMode starts drawing a new path.
	EnterDesignMode(ctx context.Context) error

	// ToggleDesignMode enters design mode, or leaves it for the default mode.
	ToggleDesignMode(ctx context.Context) error

	// StartMultiFloorPath starts drawing a path that may cross floors.
	StartMultiFloorPath(ctx context.Context) error

	// TogglePreviewMode enters or leaves preview.
	TogglePreviewMode(ctx context.Context)

	// ResetModes returns to the default mode.
	ResetModes(ctx context.Context)

	// Click handles a canvas click at a normalised point.
	Click(ctx context.Context, p domain.Point) (ClickResult, error)

	// Undo removes the last placed point.
	Undo() bool

	// DragPoint moves a point while editing.
	DragPoint(index int, p domain.Point) error

	// ClearPath discards the unsaved path.
	ClearPath()

	// SavePath saves the drawn path, inserting or updating.
	SavePath(ctx context.Context, source, destination string) (*domain.Path, error)

	// EditPath loads a saved path for editing.
	EditPath(ctx context.Context, id string) error

	// DeletePath removes a path.
	DeletePath(ctx context.Context, id string) error

	// SetPathColor changes a path colour.
	SetPathColor(ctx context.Context, id, color string) error

	// SetPublished publishes or unpublishes a path.
	SetPublished(ctx context.Context, id string, published bool) error

	// PublishAll publishes every non-empty path.
	PublishAll(ctx context.Context) (int, error)

	// SelectRoute picks a path, and optionally a segment, for animation.
	SelectRoute(ctx context.Context, id string, segment int) (*RouteView, error)

	// VisiblePaths returns the paths to render.
	VisiblePaths() []domain.Path

	// AvailableLocations lists the names usable as path endpoints.
	AvailableLocations(floorOnly bool) []string
}
