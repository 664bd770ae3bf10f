package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/views/canvas"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/views/dialog"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/views/paths"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	keymap *keymap.KeyMap

	// menuView is the main navigation menu.
	menuView *menu.View

	// canvasView draws the selected floor and takes clicks.
	canvasView *canvas.View

	// pathsView lists saved paths.
	pathsView *paths.View

	// settingsView is the settings configuration view component.
	settingsView *settings.View

	// dialogView shows connector prompts on top of the active view.
	dialogView *dialog.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       keymap.DefaultKeyMap(),
		menuView:     menu.NewView(s),
		canvasView:   canvas.NewView(s, ports.Editor),
		pathsView:    paths.NewView(s, ports.Editor),
		settingsView: settings.NewView(s, ports.Settings),
		dialogView:   dialog.NewView(s),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its editor views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.canvasView.SetContext(ctx)
	a.pathsView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads stored data into the editor when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("waymark - Wayfinding Map Editor"),
		a.loadEditor(),
	)
}

func (a *App) loadEditor() tea.Cmd {
	editor := a.ports.Editor
	ctx := a.ctx
	return func() tea.Msg {
		editor.Load(ctx)
		return messages.EditorLoaded{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.ConfirmRequested, messages.ChoiceRequested:
		a.dialogView.Open(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.dialogView.Cancel()
			return a, tea.Quit
		}

		// An open dialog takes every key until answered.
		if a.dialogView.Active() {
			a.dialogView, cmd = a.dialogView.Update(msg)
			return a, cmd
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewCanvas:
			a.canvasView, cmd = a.canvasView.Update(msg)
		case messages.ViewPaths:
			a.pathsView, cmd = a.pathsView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if keymap.Matches(msg.String(), a.keymap.Back) {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCanvas:
			return a, a.canvasView.Init()
		case messages.ViewPaths:
			return a, a.pathsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.EditorLoaded, messages.EditorChanged, messages.ClickCompleted,
		messages.PathSaved, messages.RouteSelected, messages.NoticePosted:
		a.refreshMenu()
		a.canvasView, cmd = a.canvasView.Update(msg)
		return a, cmd

	case messages.PathsChanged:
		a.pathsView, cmd = a.pathsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		a.dialogView.Cancel()
		return a, tea.Quit
	}

	return a, nil
}

// refreshMenu copies the editor selection into the menu header.
func (a *App) refreshMenu() {
	editor := a.ports.Editor
	sel := menu.Selection{Mode: editor.Mode(), Paths: len(editor.Paths())}
	if b := editor.SelectedBuilding(); b != nil {
		sel.Building = b.Name
	}
	if f := editor.SelectedFloor(); f != nil {
		sel.Floor = f.Label
	}
	a.menuView.SetSelection(sel)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.dialogView.Active() {
		return a.dialogView.View()
	}

	var content string
	switch a.currentView {
	case messages.ViewCanvas:
		content = a.canvasView.View()
	case messages.ViewPaths:
		content = a.pathsView.View()
	case messages.ViewSettings:
		content = a.settingsView.View()
	case messages.ViewHelp:
		content = a.viewHelp()
	default:
		content = a.menuView.View()
	}

	if a.err != nil {
		content = a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)) + "\n" + content
	}

	return content
}

// viewHelp renders the key bindings grouped by area.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	titles := []string{"Navigation", "Drawing", "Modes", "Paths", "General"}
	for i, group := range a.keymap.FullHelp() {
		if i < len(titles) {
			b.WriteString(a.styles.Subtitle.Render(titles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Run starts the TUI application. Connector prompts raised by the editor
// are routed to the dialog view while the program runs.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	a.ports.Prompter.Attach(p.Send)
	defer a.ports.Prompter.Attach(nil)

	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// DialogActive reports whether a connector prompt is open.
func (a *App) DialogActive() bool {
	return a.dialogView.Active()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.canvasView.SetDimensions(width, height)
	a.pathsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.dialogView.SetDimensions(width, height)
}
