package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/services"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.Settings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsService) SetCanvas(width, height float64) error {
	return m.Called(width, height).Error(0)
}

func (m *MockSettingsService) SetStorage(backend domain.StorageBackend) error {
	return m.Called(backend).Error(0)
}

func (m *MockSettingsService) SetPrompt(style domain.PromptStyle) error {
	return m.Called(style).Error(0)
}

func (m *MockSettingsService) Validate() error {
	return m.Called().Error(0)
}

func testSettings() *domain.Settings {
	s := domain.DefaultSettings()
	return &s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// loadedView returns a view backed by a real settings service with settings loaded.
func loadedView(t *testing.T) (*View, *services.SettingsService) {
	t.Helper()
	svc := services.NewSettingsService(memory.NewConfigStore())
	view := NewView(nil, svc)
	view.SetDimensions(80, 24)

	msg := view.Init()()
	view, _ = view.Update(msg)
	require.NotNil(t, view.settings)
	return view, svc
}

// run executes a command and feeds its message back into the view.
func run(t *testing.T, view *View, cmd tea.Cmd) *View {
	t.Helper()
	require.NotNil(t, cmd)
	view, next := view.Update(cmd())
	if next != nil {
		if msg, ok := next().(messages.SettingsLoaded); ok {
			view, _ = view.Update(msg)
		}
	}
	return view
}

func TestNewView(t *testing.T) {
	mockService := new(MockSettingsService)

	view := NewView(styles.DefaultStyles(), mockService)

	require.NotNil(t, view)
	assert.Equal(t, mockService, view.settingsService)
	assert.Equal(t, SectionOverview, view.section)
	assert.Equal(t, 0, view.selected)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, new(MockSettingsService))

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestInit_NilService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.Init()()

	loaded, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrServiceUnavailable)
}

func TestUpdate_SettingsLoadedError(t *testing.T) {
	view := NewView(nil, new(MockSettingsService))

	view, _ = view.Update(messages.SettingsLoaded{Err: errors.New("boom")})

	assert.Nil(t, view.settings)
	assert.EqualError(t, view.err, "boom")
}

func TestOverview_Navigation(t *testing.T) {
	view, _ := loadedView(t)

	view, _ = view.Update(key("j"))
	view, _ = view.Update(key("j"))
	view, _ = view.Update(key("j"))
	assert.Equal(t, 2, view.selected)

	view, _ = view.Update(key("k"))
	assert.Equal(t, 1, view.selected)
}

func TestOverview_EscReturnsToMenu(t *testing.T) {
	view, _ := loadedView(t)

	_, cmd := view.Update(key("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestStorage_SelectMemory(t *testing.T) {
	view, svc := loadedView(t)

	view, _ = view.Update(key("j"))
	view, _ = view.Update(key("enter"))
	require.Equal(t, SectionStorage, view.section)
	assert.Equal(t, 0, view.selected)

	view, _ = view.Update(key("j"))
	view, cmd := view.Update(key("enter"))
	view = run(t, view, cmd)

	assert.Equal(t, SectionOverview, view.section)
	assert.NoError(t, view.err)
	assert.Equal(t, domain.StorageMemory, view.settings.Storage)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageMemory, got.Storage)
}

func TestPrompt_SelectLine(t *testing.T) {
	view, svc := loadedView(t)

	view, _ = view.Update(key("j"))
	view, _ = view.Update(key("j"))
	view, _ = view.Update(key("enter"))
	require.Equal(t, SectionPrompt, view.section)

	view, _ = view.Update(key("j"))
	view, _ = view.Update(key("j"))
	view, cmd := view.Update(key("enter"))
	view = run(t, view, cmd)

	assert.Equal(t, domain.PromptLine, view.settings.Prompt)
	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.PromptLine, got.Prompt)
}

func TestCanvas_EditAndSave(t *testing.T) {
	view, svc := loadedView(t)

	view, _ = view.Update(key("enter"))
	require.Equal(t, SectionCanvas, view.section)
	assert.Equal(t, "1200", view.widthInput.Value())
	assert.Equal(t, "800", view.heightInput.Value())

	view, _ = view.Update(key("tab"))
	assert.Equal(t, 1, view.focusedField)
	for range 3 {
		view, _ = view.Update(key("backspace"))
	}
	view, _ = view.Update(key("600"))
	assert.Equal(t, "600", view.heightInput.Value())

	view, cmd := view.Update(key("enter"))
	view = run(t, view, cmd)

	assert.NoError(t, view.err)
	assert.Equal(t, domain.CanvasSize{Width: 1200, Height: 600}, view.settings.Canvas)
	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 600.0, got.Canvas.Height)
}

func TestCanvas_InvalidNumber(t *testing.T) {
	view, _ := loadedView(t)

	view, _ = view.Update(key("enter"))
	view.widthInput.SetValue("wide")

	view, cmd := view.Update(key("enter"))

	assert.Nil(t, cmd)
	assert.ErrorIs(t, view.err, domain.ErrInvalidInput)
	assert.Equal(t, SectionCanvas, view.section)
}

func TestCanvas_RejectedByService(t *testing.T) {
	mockService := new(MockSettingsService)
	mockService.On("Get").Return(testSettings(), nil)
	mockService.On("SetCanvas", 0.0, 800.0).Return(domain.ErrInvalidInput)

	view := NewView(nil, mockService)
	view.SetDimensions(80, 24)
	view, _ = view.Update(view.Init()())

	view, _ = view.Update(key("enter"))
	view.widthInput.SetValue("0")
	view, cmd := view.Update(key("enter"))
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())

	assert.ErrorIs(t, view.err, domain.ErrInvalidInput)
	mockService.AssertExpectations(t)
}

func TestSection_EscReturnsToOverview(t *testing.T) {
	view, _ := loadedView(t)

	view, _ = view.Update(key("enter"))
	require.Equal(t, SectionCanvas, view.section)

	view, cmd := view.Update(key("esc"))

	assert.Nil(t, cmd)
	assert.Equal(t, SectionOverview, view.section)
	assert.False(t, view.widthInput.Focused())
}

func TestView_Render(t *testing.T) {
	view, _ := loadedView(t)

	out := view.View()

	assert.Contains(t, out, "Settings")
	assert.Contains(t, out, "Canvas: 1200 x 800")
	assert.Contains(t, out, "Storage: sqlite")
	assert.Contains(t, out, "Prompt: auto")
	assert.Contains(t, out, "Configuration is valid")
}

func TestView_NotReady(t *testing.T) {
	view := NewView(nil, nil)

	assert.Empty(t, view.View())
}

func TestView_Loading(t *testing.T) {
	view := NewView(nil, new(MockSettingsService))
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "Loading settings...")
}

func TestReset(t *testing.T) {
	view, _ := loadedView(t)
	view, _ = view.Update(key("enter"))
	view.err = errors.New("stale")

	view.Reset()

	assert.Equal(t, SectionOverview, view.section)
	assert.NoError(t, view.err)
	assert.Empty(t, view.widthInput.Value())
}
