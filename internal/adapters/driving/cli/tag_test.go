package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

func TestTagListCmd_Executes(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "tag", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Tags:")
	assert.Contains(t, out, "Lobby on Ground")
}

func TestTagAddCmd_GlobalTag(t *testing.T) {
	stores := setupTestServices(t)

	out, err := execute(t, "tag", "add", "Toilets", "--at", "0.4,0.6", "--category", "facility")

	require.NoError(t, err)
	assert.Contains(t, out, `Added tag "Toilets"`)

	tags, err := stores.Tags.List(context.Background())
	require.NoError(t, err)
	toilets := domain.FindTagByName(tags, "Toilets")
	require.NotNil(t, toilets)
	assert.True(t, toilets.IsGlobal())
	assert.Equal(t, "facility", toilets.Category)
}

func TestTagAddCmd_FloorTag(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "tag", "add", "Office 201", "--building", "HQ", "--floor", "Level 2", "--at", "0.7,0.3", "--rect", "0.1,0.1")
	require.NoError(t, err)

	out, err := execute(t, "tag", "list", "--floor", "f2")
	require.NoError(t, err)
	assert.Contains(t, out, "Office 201 on Level 2")
	assert.NotContains(t, out, "Lobby")
}

func TestTagAddCmd_FloorNeedsBuilding(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "tag", "add", "Office", "--floor", "Level 2", "--at", "0.7,0.3")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTagAddCmd_RequiresPosition(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "tag", "add", "Office")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "at" not set`)
}

func TestTagColorCmd_Executes(t *testing.T) {
	stores := setupTestServices(t)

	out, err := execute(t, "tag", "color", "t-lobby", "#ff0000")

	require.NoError(t, err)
	assert.Contains(t, out, "Tag t-lobby colour set to #ff0000")
	tag, err := stores.Tags.Get(context.Background(), "t-lobby")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", tag.Color)
}

func TestTagDeleteCmd_ClearsPathReferences(t *testing.T) {
	stores := setupTestServices(t)
	ctx := context.Background()
	require.NoError(t, stores.Paths.Save(ctx, domain.Path{
		ID: "p1", Name: "Lobby to Desk", Source: "Lobby", Destination: "Desk",
		SourceTagID: "t-lobby", FloorID: "f1", Points: []domain.Point{{X: 0.1, Y: 0.1}},
	}))

	out, err := execute(t, "tag", "delete", "t-lobby")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted tag t-lobby")
	path, err := stores.Paths.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, path.SourceTagID)
}

func TestTagDeleteCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "tag", "delete", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
