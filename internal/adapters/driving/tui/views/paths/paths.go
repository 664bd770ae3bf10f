// Package paths provides the saved path list view for the TUI.
package paths

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

// View lists the paths relevant to the selected floor.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	editor driving.EditorService
	ctx    context.Context

	list *list.PathList

	// routeID and segment track the route shown in preview so that
	// selecting it again steps through its segments.
	routeID string
	segment int

	message string
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new path list view.
func NewView(s *styles.Styles, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		editor: editor,
		ctx:    context.Background(),
		list:   list.NewPathList(s),
	}
}

// SetContext sets the context passed to editor operations.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init reloads the list from the editor.
func (v *View) Init() tea.Cmd {
	v.message = ""
	v.err = nil
	v.reload()
	return nil
}

func (v *View) reload() {
	floorID := ""
	if f := v.editor.SelectedFloor(); f != nil {
		floorID = f.ID
	}
	var floors []domain.Floor
	if b := v.editor.SelectedBuilding(); b != nil {
		floors = b.Floors
	}

	var relevant []domain.Path
	for _, p := range v.editor.Paths() {
		if p.RelevantTo(floorID) {
			relevant = append(relevant, p)
		}
	}
	v.list.SetPaths(relevant, floors)
}

// Update handles messages for the path list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PathsChanged:
		v.message = msg.Message
		v.err = msg.Err
		v.reload()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	km := v.keymap

	switch {
	case keymap.Matches(key, km.Back):
		return v, changeView(messages.ViewMenu)
	case keymap.Matches(key, km.Up), keymap.Matches(key, km.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil
	case keymap.Matches(key, km.PublishAll):
		n, err := v.editor.PublishAll(v.ctx)
		return v, changed(fmt.Sprintf("Published %d paths", n), err)
	}

	selected := v.list.SelectedPath()
	if selected == nil {
		return v, nil
	}
	id := selected.ID

	switch {
	case keymap.Matches(key, km.Select):
		return v, v.showRoute(selected)
	case keymap.Matches(key, km.Edit):
		if err := v.editor.EditPath(v.ctx, id); err != nil {
			return v, changed("", err)
		}
		return v, changeView(messages.ViewCanvas)
	case keymap.Matches(key, km.Publish):
		publish := !selected.IsPublished
		err := v.editor.SetPublished(v.ctx, id, publish)
		verb := "Unpublished"
		if publish {
			verb = "Published"
		}
		return v, changed(fmt.Sprintf("%s %q", verb, selected.Name), err)
	case keymap.Matches(key, km.Delete):
		name := selected.Name
		err := v.editor.DeletePath(v.ctx, id)
		return v, changed(fmt.Sprintf("Deleted %q", name), err)
	}
	return v, nil
}

// showRoute previews the path. Selecting the same multi-floor path
// again advances to its next segment.
func (v *View) showRoute(p *domain.Path) tea.Cmd {
	segment := 0
	if p.ID == v.routeID && p.IsMultiFloor && len(p.Segments) > 0 {
		segment = (v.segment + 1) % len(p.Segments)
	}
	if v.editor.Mode() != domain.ModePreview {
		v.editor.TogglePreviewMode(v.ctx)
	}
	route, err := v.editor.SelectRoute(v.ctx, p.ID, segment)
	if err != nil {
		return changed("", err)
	}
	v.routeID = p.ID
	v.segment = segment
	return tea.Batch(
		func() tea.Msg { return messages.RouteSelected{Route: route} },
		changeView(messages.ViewCanvas),
	)
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

func changed(message string, err error) tea.Cmd {
	return func() tea.Msg {
		if err != nil {
			return messages.PathsChanged{Err: err}
		}
		return messages.PathsChanged{Message: message}
	}
}

// View renders the path list.
func (v *View) View() string {
	if !v.ready {
		return "Loading..."
	}

	var b strings.Builder
	title := "Paths"
	if f := v.editor.SelectedFloor(); f != nil {
		title = fmt.Sprintf("Paths on %s", f.Label)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.message != "":
		b.WriteString(v.styles.Success.Render(v.message))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render(helpLine(v.keymap.PathsHelp())))
	return b.String()
}

func helpLine(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(hints, "  ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-6)
}

// List returns the path list component.
func (v *View) List() *list.PathList {
	return v.list
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Message returns the last status message.
func (v *View) Message() string {
	return v.message
}
