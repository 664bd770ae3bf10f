package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_CursorBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Up.Keys(), "k")
	assert.Contains(t, km.Down.Keys(), "j")
	assert.Contains(t, km.Left.Keys(), "h")
	assert.Contains(t, km.Right.Keys(), "l")
}

func TestDefaultKeyMap_PlaceBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Place.Keys()
	assert.Contains(t, keys, " ")
	assert.Contains(t, keys, "enter")
}

func TestDefaultKeyMap_FloorBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.NextFloor.Keys(), "tab")
	assert.Contains(t, km.PrevFloor.Keys(), "shift+tab")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestCanvasHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.CanvasHelp()

	require.NotEmpty(t, bindings)
	assert.Equal(t, km.Place, bindings[0])
	assert.Equal(t, km.Back, bindings[len(bindings)-1])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 5)
	assert.Len(t, bindings[0], 5) // cursor + select
	assert.Len(t, bindings[4], 3) // back, help, quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("u", km.Undo))
	assert.True(t, Matches("m", km.MultiFloor))
	assert.True(t, Matches("y", km.Yes))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("down", km.Up))
	assert.False(t, Matches("d", km.Delete))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Place", km.Place},
		{"Undo", km.Undo},
		{"Design", km.Design},
		{"MultiFloor", km.MultiFloor},
		{"Preview", km.Preview},
		{"Save", km.Save},
		{"Clear", km.Clear},
		{"NextFloor", km.NextFloor},
		{"Edit", km.Edit},
		{"Delete", km.Delete},
		{"Publish", km.Publish},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
