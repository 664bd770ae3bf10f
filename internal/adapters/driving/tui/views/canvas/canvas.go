// Package canvas provides the map view where paths are drawn.
package canvas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

const (
	minCols = 20
	minRows = 8

	// header, status bar and the frame border
	chromeRows = 5
)

// snapshot is the editor state rendered by View. It is only refreshed
// while no click is in flight because the editor is not safe for
// concurrent use.
type snapshot struct {
	building   *domain.Building
	floor      *domain.Floor
	session    driving.SessionView
	paths      []domain.Path
	connectors []domain.VerticalConnector
	tags       []domain.Tag
}

// View is the map canvas.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	editor driving.EditorService
	ctx    context.Context

	bar  *status.Bar
	snap snapshot

	// Cursor position in grid cells.
	col int
	row int

	// loaded is set once the editor has read its stores.
	loaded bool

	// busy is set while a click runs; the editor may be waiting on a dialog.
	busy bool

	// Save form state.
	saving      bool
	source      *input.LocationInput
	destination *input.LocationInput

	err error

	width  int
	height int
	ready  bool
}

// NewView creates a new canvas view.
func NewView(s *styles.Styles, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:      s,
		keymap:      km,
		editor:      editor,
		ctx:         context.Background(),
		bar:         status.NewBar(s, km),
		source:      input.NewLocationInput(s, "Source"),
		destination: input.NewLocationInput(s, "Destination"),
		width:       80,
		height:      24,
	}
}

// SetContext sets the context passed to editor operations.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	if v.loaded {
		v.refresh()
	}
	return nil
}

// Update handles messages for the canvas view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.EditorLoaded:
		v.loaded = true
		v.selectFirstBuilding()
		v.refresh()
		return v, nil

	case messages.EditorChanged:
		if msg.Err != nil {
			v.showError(msg.Err)
		}
		v.refresh()
		return v, nil

	case messages.ClickCompleted:
		v.busy = false
		v.refresh()
		v.handleClick(msg)
		return v, nil

	case messages.RouteSelected:
		v.refresh()
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		if r := msg.Route; r != nil {
			text := fmt.Sprintf("Route %q", r.Path.Name)
			if r.SegmentCount > 1 {
				text += fmt.Sprintf(", segment %d of %d", r.SegmentIndex+1, r.SegmentCount)
			}
			v.bar.SetState(status.StateNotice)
			v.bar.SetMessage(text)
		}
		return v, nil

	case messages.NoticePosted:
		v.showNotice(msg.Level, msg.Message)
		return v, nil

	case messages.PathSaved:
		v.busy = false
		v.refresh()
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		v.closeForm()
		v.bar.SetState(status.StateNotice)
		v.bar.SetMessage(fmt.Sprintf("Saved %q", msg.Path.Name))
		return v, nil

	case tea.KeyMsg:
		if !v.loaded || v.busy {
			return v, nil
		}
		if v.saving {
			return v.handleFormKeys(msg)
		}
		return v.handleKeys(msg)
	}

	return v, nil
}

func (v *View) handleKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	km := v.keymap
	grid := v.grid()

	switch {
	case keymap.Matches(key, km.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, km.Up):
		v.row = clamp(v.row-1, 0, grid.Rows-1)
	case keymap.Matches(key, km.Down):
		v.row = clamp(v.row+1, 0, grid.Rows-1)
	case keymap.Matches(key, km.Left):
		v.col = clamp(v.col-1, 0, grid.Cols-1)
	case keymap.Matches(key, km.Right):
		v.col = clamp(v.col+1, 0, grid.Cols-1)
	case keymap.Matches(key, km.Place):
		return v, v.click(v.cursorPoint(grid))
	case keymap.Matches(key, km.Undo):
		if !v.editor.Undo() {
			v.bar.SetState(status.StateWarning)
			v.bar.SetMessage("Nothing to undo")
			return v, nil
		}
		v.refresh()
	case keymap.Matches(key, km.Design):
		v.apply(v.editor.ToggleDesignMode(v.ctx))
	case keymap.Matches(key, km.MultiFloor):
		v.apply(v.editor.StartMultiFloorPath(v.ctx))
	case keymap.Matches(key, km.Preview):
		v.editor.TogglePreviewMode(v.ctx)
		v.apply(nil)
	case keymap.Matches(key, km.Clear):
		v.editor.ClearPath()
		v.apply(nil)
	case keymap.Matches(key, km.NextFloor):
		v.apply(v.cycleFloor(1))
	case keymap.Matches(key, km.PrevFloor):
		v.apply(v.cycleFloor(-1))
	case keymap.Matches(key, km.Save):
		return v, v.openForm()
	}
	return v, nil
}

func (v *View) handleFormKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc":
		v.closeForm()
		return v, nil
	case "enter":
		if v.source.Focused() {
			v.source.Blur()
			return v, v.destination.Focus()
		}
		v.busy = true
		return v, v.save(v.source.Value(), v.destination.Value())
	}

	if v.source.Focused() {
		v.source, cmd = v.source.Update(msg)
	} else {
		v.destination, cmd = v.destination.Update(msg)
	}
	return v, cmd
}

// cursorPoint returns the map point under the cursor. A connector drawn
// in the cursor cell wins over the cell centre so it can be hit.
func (v *View) cursorPoint(grid Grid) domain.Point {
	for i := range v.snap.connectors {
		col, row := grid.Cell(v.snap.connectors[i].Position)
		if col == v.col && row == v.row {
			return v.snap.connectors[i].Position
		}
	}
	return grid.Point(v.col, v.row)
}

// click runs the editor click off the UI goroutine; it may block on a
// connector dialog answered through the app.
func (v *View) click(p domain.Point) tea.Cmd {
	if !v.snap.session.Mode.AllowsDrawing() {
		v.bar.SetState(status.StateWarning)
		v.bar.SetMessage("Press d to start drawing")
		return nil
	}
	v.busy = true
	v.bar.SetState(status.StateBusy)
	editor, ctx := v.editor, v.ctx
	return func() tea.Msg {
		result, err := editor.Click(ctx, p)
		return messages.ClickCompleted{Result: result, Err: err}
	}
}

func (v *View) save(source, destination string) tea.Cmd {
	editor, ctx := v.editor, v.ctx
	return func() tea.Msg {
		path, err := editor.SavePath(ctx, source, destination)
		return messages.PathSaved{Path: path, Err: err}
	}
}

func (v *View) handleClick(msg messages.ClickCompleted) {
	switch {
	case msg.Err != nil:
		// the notice posted by the editor is more specific
		if !errors.Is(msg.Err, domain.ErrConnectorMismatch) {
			v.showError(msg.Err)
		}
	case msg.Result.Switched:
		if msg.Result.ArrivalAt != nil {
			v.col, v.row = v.grid().Cell(*msg.Result.ArrivalAt)
		}
	case msg.Result.PointAdded && msg.Result.Connector == nil:
		v.bar.SetState(status.StateDrawing)
		v.bar.SetMessage("")
	}
}

func (v *View) openForm() tea.Cmd {
	s := v.snap.session
	if len(s.Points) == 0 && len(s.Segments) == 0 {
		v.bar.SetState(status.StateWarning)
		v.bar.SetMessage("Nothing to save")
		return nil
	}
	locations := v.editor.AvailableLocations(false)
	v.source.SetLocations(locations)
	v.destination.SetLocations(locations)

	if sel := v.editor.SelectedPath(); sel != nil {
		v.source.SetValue(sel.Source)
		v.destination.SetValue(sel.Destination)
	}
	v.saving = true
	v.destination.Blur()
	return v.source.Focus()
}

func (v *View) closeForm() {
	v.saving = false
	v.source.Blur()
	v.destination.Blur()
	v.source.Reset()
	v.destination.Reset()
}

func (v *View) cycleFloor(step int) error {
	b := v.snap.building
	if b == nil || len(b.Floors) == 0 {
		return domain.ErrNoFloorSelected
	}
	idx := 0
	if v.snap.floor != nil {
		for i := range b.Floors {
			if b.Floors[i].ID == v.snap.floor.ID {
				idx = i
				break
			}
		}
	}
	n := len(b.Floors)
	next := b.Floors[((idx+step)%n+n)%n]
	return v.editor.SelectFloor(v.ctx, next.ID)
}

func (v *View) selectFirstBuilding() {
	if v.editor.SelectedBuilding() != nil {
		return
	}
	if buildings := v.editor.Buildings(); len(buildings) > 0 {
		if err := v.editor.SelectBuilding(v.ctx, buildings[0].ID); err != nil {
			v.showError(err)
		}
	}
}

// apply refreshes after a synchronous editor call and reports its error.
func (v *View) apply(err error) {
	v.refresh()
	if err != nil {
		v.showError(err)
		return
	}
	v.bar.Clear()
	if len(v.snap.session.Points) > 0 {
		v.bar.SetState(status.StateDrawing)
	}
}

func (v *View) refresh() {
	e := v.editor
	snap := snapshot{
		session: e.Session(),
		paths:   e.VisiblePaths(),
	}
	if b := e.SelectedBuilding(); b != nil {
		building := *b
		snap.building = &building
	}
	if f := e.SelectedFloor(); f != nil {
		floor := *f
		snap.floor = &floor
		snap.connectors = domain.ConnectorsOnFloor(e.Connectors(), floor.ID)
		for _, t := range e.Tags() {
			if t.AppliesTo(floor.ID) {
				snap.tags = append(snap.tags, t)
			}
		}
	} else {
		snap.tags = e.Tags()
	}
	v.snap = snap

	loc := status.Location{Mode: string(snap.session.Mode), Points: len(snap.session.Points)}
	if snap.building != nil {
		loc.Building = snap.building.Name
	}
	if snap.floor != nil {
		loc.Floor = snap.floor.Label
	}
	if snap.session.MultiFloor {
		loc.Mode += ", multi-floor"
	}
	v.bar.SetLocation(loc)
}

func (v *View) showError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

func (v *View) showNotice(level driven.NoticeLevel, message string) {
	switch level {
	case driven.NoticeError:
		v.bar.SetState(status.StateError)
	case driven.NoticeWarning:
		v.bar.SetState(status.StateWarning)
	default:
		v.bar.SetState(status.StateNotice)
	}
	v.bar.SetMessage(message)
}

// grid returns the raster size for the current dimensions.
func (v *View) grid() Grid {
	cols := v.width - 2
	rows := v.height - chromeRows
	if v.saving {
		rows -= 6
	}
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	return Grid{Cols: cols, Rows: rows}
}

// View renders the canvas view.
func (v *View) View() string {
	if !v.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.styles.Canvas.Render(v.renderFrame().Render()))
	b.WriteString("\n")
	if v.saving {
		b.WriteString(v.source.View())
		b.WriteString("\n")
		b.WriteString(v.destination.View())
		b.WriteString("\n")
	}
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) renderHeader() string {
	if v.snap.building == nil {
		return v.styles.Title.Render("No building selected") +
			v.styles.Muted.Render("  create one with: waymark building create <name>")
	}
	title := v.styles.Title.Render(v.snap.building.Name)
	floors := make([]string, 0, len(v.snap.building.Floors))
	for i := range v.snap.building.Floors {
		f := &v.snap.building.Floors[i]
		if v.snap.floor != nil && f.ID == v.snap.floor.ID {
			floors = append(floors, v.styles.Selected.Render(" "+f.Label+" "))
		} else {
			floors = append(floors, v.styles.Muted.Render(" "+f.Label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(floors, ""))
}

// renderFrame rasterises tags, connectors, visible paths, the drawing
// buffer and the cursor, in that order.
func (v *View) renderFrame() *Frame {
	grid := v.grid()
	frame := NewFrame(grid)

	for i := range v.snap.tags {
		t := &v.snap.tags[i]
		frame.Plot(t.Position, '+', v.styles.Tag)
		frame.Label(t.Position, t.Name, v.styles.Tag)
	}

	floorID := ""
	if v.snap.floor != nil {
		floorID = v.snap.floor.ID
	}
	for i := range v.snap.paths {
		p := &v.snap.paths[i]
		style := v.styles.PathStyle(p.Color, p.IsPublished)
		if !p.IsMultiFloor {
			frame.Polyline(p.Points, '.', 'o', style)
			continue
		}
		for _, seg := range p.Segments {
			if seg.FloorID == floorID {
				frame.Polyline(seg.Points, '.', 'o', style)
			}
		}
	}

	s := v.snap.session
	for _, seg := range s.Segments {
		if seg.FloorID == floorID {
			frame.Polyline(seg.Points, ':', 'x', v.styles.Draft)
		}
	}
	frame.Polyline(s.Points, ':', 'x', v.styles.Buffer)

	for i := range v.snap.connectors {
		c := &v.snap.connectors[i]
		frame.Plot(c.Position, connectorGlyph(c.Type), v.styles.Connector)
	}

	v.col = clamp(v.col, 0, grid.Cols-1)
	v.row = clamp(v.row, 0, grid.Rows-1)
	frame.Highlight(v.col, v.row, '+', v.styles.Cursor)
	return frame
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.bar.SetWidth(width)
	v.source.SetWidth(width)
	v.destination.SetWidth(width)
}

// Cursor returns the cursor cell.
func (v *View) Cursor() (col, row int) {
	return v.col, v.row
}

// SetCursor moves the cursor to the cell containing p.
func (v *View) SetCursor(p domain.Point) {
	v.col, v.row = v.grid().Cell(p)
}

// Busy reports whether a click is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Saving reports whether the save form is open.
func (v *View) Saving() bool {
	return v.saving
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.bar
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
