package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[canvas]
width = 1600
height = 900.5

[storage]
backend = "memory"

[log]
verbose = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 1600.0, store.GetFloat("canvas.width"))
	assert.Equal(t, 1600, store.GetInt("canvas.width"))
	assert.Equal(t, 900.5, store.GetFloat("canvas.height"))
	assert.Equal(t, "memory", store.GetString("storage.backend"))
	assert.True(t, store.GetBool("log.verbose"))
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("editor.prompt", "line"))

	assert.Zero(t, store.GetInt("editor.prompt"))
	assert.Zero(t, store.GetFloat("editor.prompt"))
	assert.False(t, store.GetBool("editor.prompt"))
	assert.Empty(t, store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("canvas.width", 1600.0))
	require.NoError(t, store.Set("canvas.height", 900.0))
	require.NoError(t, store.Set("editor.prompt", "dialog"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[canvas]")
	assert.NotContains(t, string(raw), `"canvas.width"`)

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, reopened.GetFloat("canvas.width"))
	assert.Equal(t, 900.0, reopened.GetFloat("canvas.height"))
	assert.Equal(t, "dialog", reopened.GetString("editor.prompt"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("log.verbose", true))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetRollsBackOnMarshalError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.backend", "sqlite"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("canvas.width", float64(1000+n))
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetFloat("canvas.width")
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, store.GetFloat("canvas.width"), 1000.0)
}

func TestConfigStore_Watch_ReloadsOnExternalWrite(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("editor.prompt", "line"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	require.NoError(t, store.Watch(ctx, func() { changed <- struct{}{} }))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[editor]\nprompt = \"dialog\"\n"), 0600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watch callback not called")
	}
	assert.Eventually(t, func() bool {
		return store.GetString("editor.prompt") == "dialog"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestConfigStore_Watch_MissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(filepath.Join(tmpDir, "gone"))
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Join(tmpDir, "gone")))

	err = store.Watch(context.Background(), func() {})
	assert.Error(t, err)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"canvas.width":  1200.0,
		"canvas.height": 800.0,
		"verbose":       true,
	})

	canvas, ok := nested["canvas"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1200.0, canvas["width"])
	assert.Equal(t, 800.0, canvas["height"])
	assert.Equal(t, true, nested["verbose"])

	assert.Equal(t, map[string]any{"canvas.width": 1200.0, "canvas.height": 800.0, "verbose": true}, flattenMap(nested, ""))
}
