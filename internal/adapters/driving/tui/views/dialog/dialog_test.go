package dialog

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/adapters/driving/tui/messages"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func openConfirm(v *View) chan messages.Answer {
	reply := make(chan messages.Answer, 1)
	v.Open(messages.ConfirmRequested{Message: "Switch floors?", Reply: reply})
	return reply
}

func openChoice(v *View) chan messages.Answer {
	reply := make(chan messages.Answer, 1)
	v.Open(messages.ChoiceRequested{
		Message: "Which floor?",
		Options: []string{"Ground", "Level 2", "Level 3"},
		Reply:   reply,
	})
	return reply
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.False(t, v.Active())
	assert.Equal(t, "", v.View())
	assert.Nil(t, v.Init())
}

func TestView_OpenIgnoresOtherMessages(t *testing.T) {
	v := NewView(nil)

	assert.False(t, v.Open(messages.Quit{}))
	assert.False(t, v.Active())
}

func TestView_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		key      tea.KeyMsg
		expected bool
	}{
		{"y confirms", runeKey('y'), true},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"n declines", runeKey('n'), false},
		{"esc declines", tea.KeyMsg{Type: tea.KeyEsc}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(nil)
			reply := openConfirm(v)
			require.Equal(t, KindConfirm, v.Kind())
			assert.Contains(t, v.View(), "Switch floors?")

			v.Update(tt.key)

			assert.Equal(t, tt.expected, (<-reply).Confirmed)
			assert.False(t, v.Active())
		})
	}
}

func TestView_ConfirmIgnoresOtherKeys(t *testing.T) {
	v := NewView(nil)
	reply := openConfirm(v)

	v.Update(runeKey('x'))

	assert.True(t, v.Active())
	assert.Empty(t, reply)
}

func TestView_ChoiceNavigate(t *testing.T) {
	v := NewView(nil)
	reply := openChoice(v)
	assert.Contains(t, v.View(), "2. Level 2")

	v.Update(runeKey('k'))
	assert.Equal(t, 0, v.Selected())
	v.Update(runeKey('j'))
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.Selected())
	v.Update(tea.KeyMsg{Type: tea.KeyUp})

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Level 2", (<-reply).Choice)
	assert.False(t, v.Active())
}

func TestView_ChoiceDigit(t *testing.T) {
	v := NewView(nil)
	reply := openChoice(v)

	v.Update(runeKey('9'))
	assert.True(t, v.Active())

	v.Update(runeKey('3'))

	assert.Equal(t, "Level 3", (<-reply).Choice)
}

func TestView_ChoiceCancel(t *testing.T) {
	v := NewView(nil)
	reply := openChoice(v)

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "", (<-reply).Choice)
	assert.False(t, v.Active())
}

func TestView_NewRequestCancelsOpenDialog(t *testing.T) {
	v := NewView(nil)
	first := openConfirm(v)

	second := openChoice(v)

	assert.False(t, (<-first).Confirmed)
	assert.Equal(t, KindChoice, v.Kind())
	assert.Empty(t, second)
}

func TestView_Cancel(t *testing.T) {
	v := NewView(nil)
	reply := openConfirm(v)

	v.Cancel()

	assert.False(t, (<-reply).Confirmed)
	assert.False(t, v.Active())

	// no-op when closed
	v.Cancel()
}

func TestView_UpdateWhenClosed(t *testing.T) {
	v := NewView(nil)

	updated, cmd := v.Update(runeKey('y'))

	assert.Equal(t, v, updated)
	assert.Nil(t, cmd)
}
