package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// editorStateStore implements driven.EditorStateStore as a single row.
type editorStateStore struct {
	store *Store
}

var _ driven.EditorStateStore = (*editorStateStore)(nil)

// Load returns the saved state, or the zero state when none exists.
func (s *editorStateStore) Load(ctx context.Context) (domain.EditorState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT building_id, floor_id, mode FROM editor_state WHERE id = 1
	`)

	var buildingID, floorID, mode sql.NullString
	if err := row.Scan(&buildingID, &floorID, &mode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EditorState{}, nil
		}
		return domain.EditorState{}, fmt.Errorf("scanning editor state: %w", err)
	}

	return domain.EditorState{
		BuildingID: buildingID.String,
		FloorID:    floorID.String,
		Mode:       domain.EditorMode(mode.String),
	}, nil
}

// Save replaces the saved state.
func (s *editorStateStore) Save(ctx context.Context, state domain.EditorState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO editor_state (id, building_id, floor_id, mode)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			building_id = excluded.building_id,
			floor_id = excluded.floor_id,
			mode = excluded.mode
	`, nullString(state.BuildingID), nullString(state.FloorID), nullString(string(state.Mode)))
	if err != nil {
		return fmt.Errorf("saving editor state: %w", err)
	}
	return nil
}
