// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionCanvas
	SectionStorage
	SectionPrompt
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// ErrServiceUnavailable is reported when the view has no settings service.
var ErrServiceUnavailable = errors.New("settings service not available")

var (
	storageOptions = []domain.StorageBackend{domain.StorageSQLite, domain.StorageMemory}
	promptOptions  = []domain.PromptStyle{domain.PromptAuto, domain.PromptDialog, domain.PromptLine}
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.Settings
	err      error

	section      Section
	selected     int
	focusedField int // 0 width, 1 height

	widthInput  textinput.Model
	heightInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		widthInput:      newDimensionInput("width"),
		heightInput:     newDimensionInput("height"),
	}
}

func newDimensionInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 6
	ti.Width = 10
	return ti
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrServiceUnavailable}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.backToOverview()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionCanvas:
		return v.handleCanvasKeys(msg)
	case SectionStorage:
		return v.handleOptionKeys(msg, len(storageOptions), func(i int) tea.Cmd {
			return v.save(func(svc driving.SettingsService) error {
				return svc.SetStorage(storageOptions[i])
			})
		})
	case SectionPrompt:
		return v.handleOptionKeys(msg, len(promptOptions), func(i int) tea.Cmd {
			return v.save(func(svc driving.SettingsService) error {
				return svc.SetPrompt(promptOptions[i])
			})
		})
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	const maxItems = 3

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < maxItems-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		switch v.selected {
		case 0:
			v.section = SectionCanvas
			return v, v.startCanvasEdit()
		case 1:
			v.section = SectionStorage
			v.selected = v.storageIndex()
		case 2:
			v.section = SectionPrompt
			v.selected = v.promptIndex()
		}
	}
	return v, nil
}

func (v *View) startCanvasEdit() tea.Cmd {
	v.widthInput.SetValue(formatDimension(v.settings.Canvas.Width))
	v.heightInput.SetValue(formatDimension(v.settings.Canvas.Height))
	v.focusedField = 0
	v.heightInput.Blur()
	return v.widthInput.Focus()
}

func (v *View) handleCanvasKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyTab, "shift+tab", "up", keyDown:
		if v.focusedField == 0 {
			v.focusedField = 1
			v.widthInput.Blur()
			return v, v.heightInput.Focus()
		}
		v.focusedField = 0
		v.heightInput.Blur()
		return v, v.widthInput.Focus()
	case keyEnter:
		width, height, err := v.parseCanvas()
		if err != nil {
			v.err = err
			return v, nil
		}
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetCanvas(width, height)
		})
	}

	var cmd tea.Cmd
	if v.focusedField == 0 {
		v.widthInput, cmd = v.widthInput.Update(msg)
	} else {
		v.heightInput, cmd = v.heightInput.Update(msg)
	}
	return v, cmd
}

func (v *View) parseCanvas() (width, height float64, err error) {
	width, err = strconv.ParseFloat(strings.TrimSpace(v.widthInput.Value()), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: canvas width %q", domain.ErrInvalidInput, v.widthInput.Value())
	}
	height, err = strconv.ParseFloat(strings.TrimSpace(v.heightInput.Value()), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: canvas height %q", domain.ErrInvalidInput, v.heightInput.Value())
	}
	return width, height, nil
}

func (v *View) handleOptionKeys(msg tea.KeyMsg, count int, pick func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < count-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < count {
			return v, pick(v.selected)
		}
	}
	return v, nil
}

// save runs a settings update and returns to the overview on success.
func (v *View) save(update func(driving.SettingsService) error) tea.Cmd {
	if v.settingsService == nil {
		return func() tea.Msg {
			return messages.SettingsSaved{Err: ErrServiceUnavailable}
		}
	}
	svc := v.settingsService
	v.backToOverview()
	return func() tea.Msg {
		return messages.SettingsSaved{Err: update(svc)}
	}
}

func (v *View) backToOverview() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.widthInput.Blur()
	v.heightInput.Blur()
}

func (v *View) storageIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, opt := range storageOptions {
		if opt == v.settings.Storage {
			return i
		}
	}
	return 0
}

func (v *View) promptIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, opt := range promptOptions {
		if opt == v.settings.Prompt {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return ""
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionCanvas:
		b.WriteString(v.renderCanvas())
	case SectionStorage:
		b.WriteString(v.renderOptions("Select Storage Backend", storageLabels(), v.storageIndex()))
	case SectionPrompt:
		b.WriteString(v.renderOptions("Select Prompt Style", promptLabels(), v.promptIndex()))
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	items := []struct {
		label string
		value string
	}{
		{"Canvas", fmt.Sprintf("%s x %s", formatDimension(v.settings.Canvas.Width), formatDimension(v.settings.Canvas.Height))},
		{"Storage", string(v.settings.Storage)},
		{"Prompt", string(v.settings.Prompt)},
	}

	for i, item := range items {
		b.WriteString(v.renderLine(fmt.Sprintf("%s: %s", item.label, item.value), i == v.selected))
	}

	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}
	if v.settings.Storage == domain.StorageMemory {
		b.WriteString(v.styles.Muted.Render("Memory storage keeps paths until the program exits."))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderCanvas() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Logical Canvas Size"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Width:"))
	b.WriteString("\n")
	b.WriteString(v.widthInput.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Height:"))
	b.WriteString("\n")
	b.WriteString(v.heightInput.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Connector detection and point dragging measure distances in these units."))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderOptions(title string, labels []string, current int) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	for i, label := range labels {
		if i == current {
			label += v.styles.Success.Render(" (current)")
		}
		b.WriteString(v.renderLine(label, i == v.selected))
	}

	return b.String()
}

func (v *View) renderLine(text string, selected bool) string {
	if selected {
		return v.styles.Selected.Render("> "+text) + "\n"
	}
	return v.styles.Normal.Render("  "+text) + "\n"
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionCanvas:
		return v.styles.Help.Render("[tab] switch field  [enter] save  [esc] back")
	case SectionStorage, SectionPrompt:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	default:
		return ""
	}
}

func storageLabels() []string {
	labels := make([]string, len(storageOptions))
	for i, opt := range storageOptions {
		labels[i] = string(opt)
	}
	return labels
}

func promptLabels() []string {
	labels := make([]string, len(promptOptions))
	for i, opt := range promptOptions {
		labels[i] = string(opt)
	}
	return labels
}

func formatDimension(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.backToOverview()
	v.err = nil
	v.widthInput.SetValue("")
	v.heightInput.SetValue("")
}
