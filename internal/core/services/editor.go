package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
	"github.com/custodia-labs/waymark/internal/logger"
)

// Ensure Editor implements the interface.
var _ driving.EditorService = (*Editor)(nil)

// EditorStores groups the stores an editing session reads and writes.
type EditorStores struct {
	Buildings  driven.BuildingStore
	Tags       driven.TagStore
	Connectors driven.ConnectorStore
	Paths      driven.PathStore
	State      driven.EditorStateStore
}

// Editor is the editing session. It owns the loaded collections, the
// selection, the mode and the path composer, and is the only writer of
// all of them. Every mutation is persisted best-effort: store failures
// are logged and never undo the in-memory change.
type Editor struct {
	stores      EditorStores
	prompter    driven.Prompter
	detector    *ConnectorDetector
	interaction *ConnectorInteraction
	composer    *Composer

	buildings  []domain.Building
	tags       []domain.Tag
	connectors []domain.VerticalConnector
	paths      []domain.Path

	buildingID string
	floorID    string
	mode       domain.EditorMode

	selectedPath  *domain.Path
	animationPath *domain.Path
	animated      []domain.Point
}

// NewEditor creates an editing session. Call Load before use.
func NewEditor(stores EditorStores, prompter driven.Prompter, canvas domain.CanvasSize) *Editor {
	return &Editor{
		stores:      stores,
		prompter:    prompter,
		detector:    NewConnectorDetector(canvas),
		interaction: NewConnectorInteraction(prompter),
		composer:    NewComposer(),
		mode:        domain.ModeDefault,
	}
}

// Load reads every collection and the saved selection. A collection
// that fails to load is replaced by an empty one.
func (e *Editor) Load(ctx context.Context) {
	e.buildings = loadOrEmpty(ctx, "buildings", e.stores.Buildings, driven.BuildingStore.List)
	e.tags = loadOrEmpty(ctx, "tags", e.stores.Tags, driven.TagStore.List)
	e.connectors = loadOrEmpty(ctx, "connectors", e.stores.Connectors, driven.ConnectorStore.List)
	e.paths = loadOrEmpty(ctx, "paths", e.stores.Paths, driven.PathStore.List)

	e.buildingID, e.floorID, e.mode = "", "", domain.ModeDefault
	if e.stores.State == nil {
		return
	}
	state, err := e.stores.State.Load(ctx)
	if err != nil {
		logger.Warn("loading editor state: %v", err)
		return
	}
	if b := e.findBuilding(state.BuildingID); b != nil {
		e.buildingID = b.ID
		if b.HasFloor(state.FloorID) {
			e.floorID = state.FloorID
		}
	}
	// Drawing state does not survive a restart, so neither do the drawing modes.
	if state.Mode == domain.ModePreview {
		e.mode = state.Mode
	}
}

func loadOrEmpty[S any, T any](ctx context.Context, name string, store S, list func(S, context.Context) ([]T, error)) []T {
	if any(store) == nil {
		return []T{}
	}
	items, err := list(store, ctx)
	if err != nil {
		logger.Warn("loading %s: %v", name, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// ==================== Accessors ====================

// Buildings returns the loaded buildings.
func (e *Editor) Buildings() []domain.Building {
	return append([]domain.Building(nil), e.buildings...)
}

// Tags returns the loaded tags.
func (e *Editor) Tags() []domain.Tag {
	return append([]domain.Tag(nil), e.tags...)
}

// Connectors returns the loaded connectors.
func (e *Editor) Connectors() []domain.VerticalConnector {
	return append([]domain.VerticalConnector(nil), e.connectors...)
}

// Paths returns the loaded paths.
func (e *Editor) Paths() []domain.Path {
	return append([]domain.Path(nil), e.paths...)
}

// Mode returns the active editor mode.
func (e *Editor) Mode() domain.EditorMode {
	return e.mode
}

// SelectedBuilding returns the selected building, or nil.
func (e *Editor) SelectedBuilding() *domain.Building {
	return e.findBuilding(e.buildingID)
}

// SelectedFloor returns the selected floor, or nil.
func (e *Editor) SelectedFloor() *domain.Floor {
	return e.SelectedBuilding().FloorByID(e.floorID)
}

// SelectedPath returns the path being edited, or nil.
func (e *Editor) SelectedPath() *domain.Path {
	return e.selectedPath
}

// Session returns a snapshot of the drawing state.
func (e *Editor) Session() driving.SessionView {
	return driving.SessionView{
		BuildingID:      e.buildingID,
		FloorID:         e.floorID,
		Mode:            e.mode,
		State:           e.composer.State().String(),
		MultiFloor:      e.composer.IsMultiFloor(),
		Points:          e.composer.Points(),
		Segments:        e.composer.Segments(),
		UndoDepth:       e.composer.UndoDepth(),
		LastInteraction: e.composer.LastInteraction(),
		PromptActive:    e.composer.PromptActive(),
	}
}

func (e *Editor) findBuilding(id string) *domain.Building {
	if id == "" {
		return nil
	}
	for i := range e.buildings {
		if e.buildings[i].ID == id {
			return &e.buildings[i]
		}
	}
	return nil
}

// ==================== Selection and modes ====================

// SelectBuilding selects a building and its first floor.
func (e *Editor) SelectBuilding(ctx context.Context, id string) error {
	b := e.findBuilding(id)
	if b == nil {
		return fmt.Errorf("building %s: %w", id, domain.ErrNotFound)
	}
	e.buildingID = b.ID
	e.floorID = ""
	if len(b.Floors) > 0 {
		e.floorID = b.Floors[0].ID
	}
	e.persistState(ctx)
	return nil
}

// SelectFloor switches the active floor of the selected building and
// resets the modes, discarding any unsaved drawing.
func (e *Editor) SelectFloor(ctx context.Context, id string) error {
	b := e.SelectedBuilding()
	if b == nil {
		return domain.ErrNoBuildingSelected
	}
	if !b.HasFloor(id) {
		return fmt.Errorf("floor %s: %w", id, domain.ErrNotFound)
	}
	e.floorID = id
	e.resetModes()
	e.persistState(ctx)
	return nil
}

// EnterDesignMode starts drawing a new path on the active floor.
func (e *Editor) EnterDesignMode(ctx context.Context) error {
	if e.mode == domain.ModePreview {
		return fmt.Errorf("%w: leave preview before designing", domain.ErrInvalidInput)
	}
	e.mode = domain.ModeDesign
	e.composer.BeginDrawing(e.floorID)
	e.persistState(ctx)
	return nil
}

// ToggleDesignMode enters design mode, or leaves design and edit mode
// discarding the unsaved path.
func (e *Editor) ToggleDesignMode(ctx context.Context) error {
	if e.mode.AllowsDrawing() {
		e.mode = domain.ModeDefault
		e.selectedPath = nil
		e.composer.Clear()
		e.persistState(ctx)
		return nil
	}
	return e.EnterDesignMode(ctx)
}

// TogglePreviewMode enters or leaves preview, discarding any drawing.
func (e *Editor) TogglePreviewMode(ctx context.Context) {
	entering := e.mode != domain.ModePreview
	e.resetModes()
	if entering {
		e.mode = domain.ModePreview
	}
	e.persistState(ctx)
}

// ResetModes returns to the default mode, discarding any drawing and
// route selection.
func (e *Editor) ResetModes(ctx context.Context) {
	e.resetModes()
	e.persistState(ctx)
}

func (e *Editor) resetModes() {
	e.mode = domain.ModeDefault
	e.selectedPath = nil
	e.animationPath = nil
	e.animated = nil
	e.composer.Clear()
}

// StartMultiFloorPath enters design mode composing a path that may
// cross floors through vertical connectors.
func (e *Editor) StartMultiFloorPath(ctx context.Context) error {
	if e.SelectedFloor() == nil {
		return domain.ErrNoFloorSelected
	}
	if e.mode == domain.ModePreview {
		return fmt.Errorf("%w: leave preview before designing", domain.ErrInvalidInput)
	}
	e.mode = domain.ModeDesign
	e.composer.StartMultiFloor(e.floorID)
	e.persistState(ctx)
	e.notify(ctx, driven.NoticeInfo,
		"Multi-floor path mode activated. Place points on the current floor and click a vertical "+
			"connector to switch floors.")
	return nil
}

// ==================== Drawing ====================

// Click handles a click on the canvas at a normalised point. In design
// and edit mode it either places a point or, when the click hits a
// vertical connector on the active floor, runs the floor-switch
// decision.
func (e *Editor) Click(ctx context.Context, p domain.Point) (driving.ClickResult, error) {
	if !e.mode.AllowsDrawing() {
		return driving.ClickResult{}, domain.ErrNotDrawing
	}
	if e.composer.PromptActive() {
		return driving.ClickResult{}, domain.ErrPromptActive
	}

	building := e.SelectedBuilding()
	floor := e.SelectedFloor()

	var hit *domain.VerticalConnector
	if building != nil {
		hit = e.detector.Detect(p, floor, e.connectors, e.composer.LastInteraction(), e.composer.PromptActive())
	}
	if hit == nil {
		if err := e.composer.AddPoint(p); err != nil {
			return driving.ClickResult{}, err
		}
		return driving.ClickResult{PointAdded: true}, nil
	}

	logger.Debug("click %s hit connector %q", p, hit.Name)
	if err := e.composer.BeginDecision(*hit); err != nil {
		return driving.ClickResult{}, err
	}

	result := e.interaction.Resolve(ctx, *hit, building, floor, e.connectors)
	target := result.TargetFloor()
	if target == nil {
		if err := e.composer.Decline(len(result.AvailableFloors)); err != nil {
			return driving.ClickResult{}, err
		}
		if err := e.composer.AddPoint(p); err != nil {
			return driving.ClickResult{}, err
		}
		return driving.ClickResult{PointAdded: true, Connector: hit}, nil
	}

	logger.Section("Floor Switch")
	transition, err := e.composer.Transition(*target, e.connectors)
	if err != nil {
		e.notify(ctx, driven.NoticeError, fmt.Sprintf("Could not find matching connector on %s.", target.Label))
		return driving.ClickResult{Connector: hit}, err
	}

	e.floorID = target.ID
	e.persistState(ctx)
	e.notify(ctx, driven.NoticeInfo, fmt.Sprintf(
		"Switched to %s. Continue your path from %q.", target.Label, transition.Arrival.Name))

	return driving.ClickResult{
		Connector: hit,
		Switched:  true,
		Floor:     target,
		Closed:    &transition.Closed,
		ArrivalAt: &transition.Arrival.Position,
	}, nil
}

// Undo removes the last placed point.
func (e *Editor) Undo() bool {
	return e.composer.Undo()
}

// DragPoint moves a point of the path being edited.
func (e *Editor) DragPoint(index int, p domain.Point) error {
	if e.mode != domain.ModeEdit {
		return domain.ErrNotDrawing
	}
	return e.composer.MovePoint(index, p)
}

// ClearPath discards the unsaved path and all transition memory while
// staying in the current mode.
func (e *Editor) ClearPath() {
	e.composer.ClearPoints()
}

// ==================== Saving and editing ====================

// SavePath assembles the drawn points into a path. With a path selected
// for editing the record is replaced in place; otherwise a new path is
// inserted.
func (e *Editor) SavePath(ctx context.Context, source, destination string) (*domain.Path, error) {
	if !e.composer.HasContent() {
		return nil, domain.ErrEmptyPath
	}

	previous := e.selectedPath
	id := uuid.NewString()
	if previous != nil {
		id = previous.ID
	}
	floor := e.SelectedFloor()

	var built domain.Path
	if e.composer.IsMultiFloor() && len(e.composer.Segments()) > 0 {
		segments, err := e.composer.Complete(e.floorID)
		if err != nil {
			return nil, err
		}
		built = assembleSegments(id, source, destination, segments, e.tags, floor, previous)
		logger.Info("saving multi-floor path with %d segments", len(segments))
	} else {
		built = AssembleSingleFloor(id, source, destination, e.composer.Points(), e.tags, floor, previous)
		logger.Info("saving single-floor path with %d points", len(built.Points))
	}

	paths, saved := ApplySave(e.paths, built, previous, source, destination)
	if err := saved.Validate(); err != nil {
		return nil, err
	}
	e.paths = paths

	if e.stores.Paths != nil {
		if err := e.stores.Paths.Save(ctx, saved); err != nil {
			logger.Error("persisting path %s: %v", saved.ID, err)
		}
	}

	e.composer.Clear()
	e.mode = domain.ModeDefault
	e.selectedPath = nil
	e.persistState(ctx)

	out := saved.Clone()
	return &out, nil
}

// EditPath loads an existing path into the composer. A multi-floor path
// resumes on its last segment's floor with the earlier segments kept.
func (e *Editor) EditPath(ctx context.Context, id string) error {
	path := domain.FindPath(e.paths, id)
	if path == nil {
		return fmt.Errorf("path %s: %w", id, domain.ErrNotFound)
	}
	selected := path.Clone()
	e.selectedPath = &selected

	floorID := e.composer.Resume(selected)
	if floorID != "" {
		if b := e.SelectedBuilding(); b != nil && b.HasFloor(floorID) {
			e.floorID = floorID
		} else if b := e.buildingOwning(floorID); b != nil {
			e.buildingID = b.ID
			e.floorID = floorID
		}
	}
	e.composer.SetFloor(e.floorID)

	e.mode = domain.ModeEdit
	e.persistState(ctx)
	return nil
}

func (e *Editor) buildingOwning(floorID string) *domain.Building {
	for i := range e.buildings {
		if e.buildings[i].HasFloor(floorID) {
			return &e.buildings[i]
		}
	}
	return nil
}

// DeletePath removes a path and forgets any selection pointing at it.
func (e *Editor) DeletePath(ctx context.Context, id string) error {
	idx := -1
	for i := range e.paths {
		if e.paths[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("path %s: %w", id, domain.ErrNotFound)
	}
	e.paths = append(e.paths[:idx:idx], e.paths[idx+1:]...)

	if e.selectedPath != nil && e.selectedPath.ID == id {
		e.selectedPath = nil
		e.composer.Clear()
		if e.mode == domain.ModeEdit {
			e.mode = domain.ModeDefault
		}
	}
	if e.animationPath != nil && e.animationPath.ID == id {
		e.animationPath = nil
		e.animated = nil
	}

	if e.stores.Paths != nil {
		if err := e.stores.Paths.Delete(ctx, id); err != nil {
			logger.Warn("deleting path %s: %v", id, err)
		}
	}
	return nil
}

// SetPathColor changes the display colour of a path.
func (e *Editor) SetPathColor(ctx context.Context, id, color string) error {
	return e.updatePath(ctx, id, func(p *domain.Path) error {
		p.Color = color
		return nil
	})
}

// SetPublished publishes or unpublishes a single path.
func (e *Editor) SetPublished(ctx context.Context, id string, published bool) error {
	return e.updatePath(ctx, id, func(p *domain.Path) error {
		p.IsPublished = published
		return p.Validate()
	})
}

func (e *Editor) updatePath(ctx context.Context, id string, mutate func(*domain.Path) error) error {
	path := domain.FindPath(e.paths, id)
	if path == nil {
		return fmt.Errorf("path %s: %w", id, domain.ErrNotFound)
	}
	updated := path.Clone()
	if err := mutate(&updated); err != nil {
		return err
	}
	*path = updated
	if e.stores.Paths != nil {
		if err := e.stores.Paths.Save(ctx, updated); err != nil {
			logger.Warn("persisting path %s: %v", id, err)
		}
	}
	return nil
}

// PublishAll publishes every path of the map. Paths with no points are
// skipped. It returns the number of paths published.
func (e *Editor) PublishAll(ctx context.Context) (int, error) {
	if b := e.SelectedBuilding(); b != nil && len(b.Floors) == 0 {
		return 0, fmt.Errorf("%w: add at least one floor to %q before publishing", domain.ErrInvalidInput, b.Name)
	}
	if len(e.paths) == 0 {
		return 0, fmt.Errorf("%w: create at least one path before publishing", domain.ErrInvalidInput)
	}

	published := 0
	for i := range e.paths {
		if e.paths[i].PointCount() == 0 {
			logger.Warn("skipping empty path %s", e.paths[i].ID)
			continue
		}
		e.paths[i].IsPublished = true
		published++
		if e.stores.Paths != nil {
			if err := e.stores.Paths.Save(ctx, e.paths[i]); err != nil {
				logger.Warn("persisting path %s: %v", e.paths[i].ID, err)
			}
		}
	}
	return published, nil
}

// ==================== Routes and display ====================

// SelectRoute picks a path for animation. For a multi-floor path a
// segment index selects which segment is animated (negative means the
// first); the active floor follows the animated run. An empty id clears
// the selection.
func (e *Editor) SelectRoute(ctx context.Context, id string, segment int) (*driving.RouteView, error) {
	if id == "" {
		e.animationPath = nil
		e.animated = nil
		return nil, nil
	}
	path := domain.FindPath(e.paths, id)
	if path == nil {
		return nil, fmt.Errorf("path %s: %w", id, domain.ErrNotFound)
	}
	selected := path.Clone()

	view := &driving.RouteView{Path: selected}
	floorID := selected.FloorID
	points := selected.Points

	if selected.IsMultiFloor {
		if len(selected.Segments) == 0 {
			e.animationPath = &selected
			e.animated = nil
			return view, nil
		}
		idx := segment
		if idx < 0 {
			idx = 0
		}
		if idx >= len(selected.Segments) {
			return nil, fmt.Errorf("%w: segment %d of %d", domain.ErrInvalidInput, segment+1, len(selected.Segments))
		}
		view.SegmentIndex = idx
		view.SegmentCount = len(selected.Segments)
		floorID = selected.Segments[idx].FloorID
		points = selected.Segments[idx].Points
		switch {
		case idx == 0:
			logger.Debug("showing first segment: %s to vertical connector", selected.Source)
		case idx == len(selected.Segments)-1:
			logger.Debug("showing final segment: vertical connector to %s", selected.Destination)
		default:
			logger.Debug("showing intermediate segment %d", idx+1)
		}
	}

	e.animationPath = &selected
	e.animated = domain.ClonePoints(points)
	view.Points = domain.ClonePoints(points)

	if floorID != "" && floorID != e.floorID {
		if b := e.SelectedBuilding(); b != nil && b.HasFloor(floorID) {
			e.floorID = floorID
			e.persistState(ctx)
		}
	}
	view.FloorID = e.floorID
	return view, nil
}

// VisiblePaths returns the paths to render on the active floor in the
// active mode.
func (e *Editor) VisiblePaths() []domain.Path {
	return SelectForDisplay(e.paths, DisplayQuery{
		Floor:                e.SelectedFloor(),
		Mode:                 e.mode,
		SelectedForAnimation: e.animationPath,
		AnimatedPath:         e.animated,
	})
}

// AvailableLocations lists the names usable as path endpoints: tag
// names plus the endpoints of existing paths. With floorOnly set, only
// tags visible on the active floor contribute.
func (e *Editor) AvailableLocations(floorOnly bool) []string {
	floorID := ""
	if floorOnly {
		floorID = e.floorID
	}
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for i := range e.tags {
		if e.tags[i].AppliesTo(floorID) {
			add(e.tags[i].Name)
		}
	}
	for i := range e.paths {
		add(e.paths[i].Source)
		add(e.paths[i].Destination)
	}
	sort.Strings(names)
	return names
}

// ==================== Helpers ====================

func (e *Editor) persistState(ctx context.Context) {
	if e.stores.State == nil {
		return
	}
	state := domain.EditorState{BuildingID: e.buildingID, FloorID: e.floorID, Mode: e.mode}
	if err := e.stores.State.Save(ctx, state); err != nil {
		logger.Warn("persisting editor state: %v", err)
	}
}

func (e *Editor) notify(ctx context.Context, level driven.NoticeLevel, message string) {
	if e.prompter != nil {
		e.prompter.Notify(ctx, level, message)
	}
}
