// Package dialog provides the modal confirm and floor-picker dialogs
// used at connector floor-switch decisions.
package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/styles"
)

// Kind identifies the open dialog.
type Kind int

const (
	KindNone Kind = iota
	KindConfirm
	KindChoice
)

// View is a modal dialog. While open it consumes every key.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	kind     Kind
	message  string
	options  []string
	selected int
	reply    chan<- messages.Answer

	width  int
	height int
}

// NewView creates a closed dialog.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// Open shows the dialog for a request message. It returns false for
// messages that are not dialog requests. A request arriving while a
// dialog is open cancels the older one.
func (v *View) Open(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case messages.ConfirmRequested:
		v.cancel()
		v.kind = KindConfirm
		v.message = msg.Message
		v.options = nil
		v.reply = msg.Reply
	case messages.ChoiceRequested:
		v.cancel()
		v.kind = KindChoice
		v.message = msg.Message
		v.options = msg.Options
		v.reply = msg.Reply
	default:
		return false
	}
	v.selected = 0
	return true
}

// Active reports whether a dialog is open.
func (v *View) Active() bool {
	return v.kind != KindNone
}

// Kind returns the open dialog kind.
func (v *View) Kind() Kind {
	return v.kind
}

// Selected returns the highlighted option of a choice dialog.
func (v *View) Selected() int {
	return v.selected
}

// Init initialises the dialog.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles keys for the open dialog.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !v.Active() {
		return v, nil
	}
	key := keyMsg.String()
	km := v.keymap

	switch v.kind {
	case KindConfirm:
		switch {
		case keymap.Matches(key, km.Yes), keymap.Matches(key, km.Select):
			v.answer(messages.Answer{Confirmed: true})
		case keymap.Matches(key, km.No), keymap.Matches(key, km.Cancel):
			v.answer(messages.Answer{})
		}
	case KindChoice:
		switch {
		case keymap.Matches(key, km.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(key, km.Down):
			if v.selected < len(v.options)-1 {
				v.selected++
			}
		case keymap.Matches(key, km.Select):
			if len(v.options) == 0 {
				v.answer(messages.Answer{})
			} else {
				v.answer(messages.Answer{Choice: v.options[v.selected]})
			}
		case keymap.Matches(key, km.Cancel):
			v.answer(messages.Answer{})
		default:
			// digits pick an option directly
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				if i := int(key[0] - '1'); i < len(v.options) {
					v.answer(messages.Answer{Choice: v.options[i]})
				}
			}
		}
	case KindNone:
	}
	return v, nil
}

// answer replies once and closes the dialog. The reply channel is
// buffered by the sender, so this never blocks.
func (v *View) answer(a messages.Answer) {
	if v.reply != nil {
		v.reply <- a
	}
	v.close()
}

// cancel answers an open dialog with a decline.
func (v *View) cancel() {
	if v.Active() {
		v.answer(messages.Answer{})
	}
}

// Cancel declines and closes any open dialog.
func (v *View) Cancel() {
	v.cancel()
}

func (v *View) close() {
	v.kind = KindNone
	v.message = ""
	v.options = nil
	v.reply = nil
	v.selected = 0
}

// View renders the dialog, or an empty string when closed.
func (v *View) View() string {
	if !v.Active() {
		return ""
	}

	lines := []string{v.styles.Title.Render("Vertical connector"), "", v.styles.Normal.Render(v.message), ""}

	switch v.kind {
	case KindConfirm:
		lines = append(lines, v.styles.Help.Render("[y] yes  [n] no"))
	case KindChoice:
		for i, opt := range v.options {
			line := fmt.Sprintf("%d. %s", i+1, opt)
			if i == v.selected {
				lines = append(lines, v.styles.Selected.Render("> "+line))
			} else {
				lines = append(lines, v.styles.Normal.Render("  "+line))
			}
		}
		lines = append(lines, "", v.styles.Help.Render("[enter] choose  [esc] cancel"))
	case KindNone:
	}

	box := v.styles.Dialog.Render(strings.Join(lines, "\n"))
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}

// SetDimensions sets the area the dialog is centred in.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
