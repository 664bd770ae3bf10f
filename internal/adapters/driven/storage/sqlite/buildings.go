package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// buildingStore implements driven.BuildingStore.
type buildingStore struct {
	store *Store
}

var _ driven.BuildingStore = (*buildingStore)(nil)

// Save stores or updates a building and replaces its floor list.
func (s *buildingStore) Save(ctx context.Context, building domain.Building) error {
	now := time.Now().UTC()
	if building.CreatedAt.IsZero() {
		building.CreatedAt = now
	}
	if building.UpdatedAt.IsZero() {
		building.UpdatedAt = now
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO buildings (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at
	`, building.ID, building.Name, building.CreatedAt, building.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving building: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM floors WHERE building_id = ?", building.ID); err != nil {
		return fmt.Errorf("clearing floors: %w", err)
	}

	for i, floor := range building.Floors {
		if floor.CreatedAt.IsZero() {
			floor.CreatedAt = now
		}
		if floor.UpdatedAt.IsZero() {
			floor.UpdatedAt = floor.CreatedAt
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO floors (id, building_id, label, image_url, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, floor.ID, building.ID, floor.Label, nullString(floor.ImageURL), i,
			floor.CreatedAt, floor.UpdatedAt)
		if err != nil {
			return fmt.Errorf("saving floor %s: %w", floor.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing building: %w", err)
	}
	return nil
}

// Get retrieves a building by ID.
func (s *buildingStore) Get(ctx context.Context, id string) (*domain.Building, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM buildings WHERE id = ?
	`, id)

	building, err := scanBuilding(row)
	if err != nil {
		return nil, err
	}

	floors, err := s.floors(ctx, building.ID)
	if err != nil {
		return nil, err
	}
	building.Floors = floors
	return building, nil
}

// Delete removes a building; its floors cascade.
func (s *buildingStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM buildings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting building: %w", err)
	}
	return nil
}

// List returns all buildings in creation order.
func (s *buildingStore) List(ctx context.Context) ([]domain.Building, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM buildings ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying buildings: %w", err)
	}

	var buildings []domain.Building //nolint:prealloc // size unknown from query
	for rows.Next() {
		building, err := scanBuilding(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		buildings = append(buildings, *building)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating buildings: %w", err)
	}
	rows.Close()

	for i := range buildings {
		floors, err := s.floors(ctx, buildings[i].ID)
		if err != nil {
			return nil, err
		}
		buildings[i].Floors = floors
	}
	return buildings, nil
}

func (s *buildingStore) floors(ctx context.Context, buildingID string) ([]domain.Floor, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, building_id, label, image_url, created_at, updated_at
		FROM floors WHERE building_id = ? ORDER BY position
	`, buildingID)
	if err != nil {
		return nil, fmt.Errorf("querying floors: %w", err)
	}
	defer rows.Close()

	floors := []domain.Floor{}
	for rows.Next() {
		var floor domain.Floor
		var imageURL sql.NullString
		if err := rows.Scan(&floor.ID, &floor.BuildingID, &floor.Label, &imageURL,
			&floor.CreatedAt, &floor.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning floor: %w", err)
		}
		floor.ImageURL = imageURL.String
		floors = append(floors, floor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating floors: %w", err)
	}
	return floors, nil
}

func scanBuilding(row scanner) (*domain.Building, error) {
	var building domain.Building
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&building.ID, &building.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning building: %w", err)
	}
	if createdAt.Valid {
		building.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		building.UpdatedAt = updatedAt.Time
	}
	return &building, nil
}
