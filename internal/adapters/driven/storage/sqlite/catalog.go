package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
)

// ==================== Connector Store ====================

// connectorStore implements driven.ConnectorStore.
type connectorStore struct {
	store *Store
}

var _ driven.ConnectorStore = (*connectorStore)(nil)

const connectorColumns = "id, name, type, floor_id, x, y, shape, shared_id, created_at"

// Save stores or updates a connector.
func (s *connectorStore) Save(ctx context.Context, connector domain.VerticalConnector) error {
	shapeJSON, err := json.Marshal(connector.Shape)
	if err != nil {
		return fmt.Errorf("marshalling shape: %w", err)
	}
	if connector.CreatedAt.IsZero() {
		connector.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO connectors (`+connectorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			floor_id = excluded.floor_id,
			x = excluded.x,
			y = excluded.y,
			shape = excluded.shape,
			shared_id = excluded.shared_id
	`, connector.ID, connector.Name, string(connector.Type), connector.FloorID,
		connector.Position.X, connector.Position.Y, string(shapeJSON),
		connector.SharedID, connector.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving connector: %w", err)
	}
	return nil
}

// Get retrieves a connector by ID.
func (s *connectorStore) Get(ctx context.Context, id string) (*domain.VerticalConnector, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+connectorColumns+" FROM connectors WHERE id = ?", id)
	return scanConnector(row)
}

// Delete removes a connector.
func (s *connectorStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM connectors WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting connector: %w", err)
	}
	return nil
}

// DeleteByFloor removes every connector on a floor.
func (s *connectorStore) DeleteByFloor(ctx context.Context, floorID string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM connectors WHERE floor_id = ?", floorID); err != nil {
		return fmt.Errorf("deleting floor connectors: %w", err)
	}
	return nil
}

// List returns all connectors in creation order.
func (s *connectorStore) List(ctx context.Context) ([]domain.VerticalConnector, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+connectorColumns+" FROM connectors ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying connectors: %w", err)
	}
	defer rows.Close()

	var connectors []domain.VerticalConnector //nolint:prealloc // size unknown from query
	for rows.Next() {
		connector, err := scanConnector(rows)
		if err != nil {
			return nil, err
		}
		connectors = append(connectors, *connector)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating connectors: %w", err)
	}
	return connectors, nil
}

func scanConnector(row scanner) (*domain.VerticalConnector, error) {
	var connector domain.VerticalConnector
	var connectorType, shapeJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&connector.ID, &connector.Name, &connectorType, &connector.FloorID,
		&connector.Position.X, &connector.Position.Y, &shapeJSON,
		&connector.SharedID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning connector: %w", err)
	}
	if err := json.Unmarshal([]byte(shapeJSON), &connector.Shape); err != nil {
		return nil, fmt.Errorf("unmarshaling shape: %w", err)
	}
	connector.Type = domain.ConnectorType(connectorType)
	if createdAt.Valid {
		connector.CreatedAt = createdAt.Time
	}
	return &connector, nil
}

// ==================== Tag Store ====================

// tagStore implements driven.TagStore.
type tagStore struct {
	store *Store
}

var _ driven.TagStore = (*tagStore)(nil)

const tagColumns = "id, name, category, shape, floor_id, color, x, y, created_at"

// Save stores or updates a tag.
func (s *tagStore) Save(ctx context.Context, tag domain.Tag) error {
	shapeJSON, err := json.Marshal(tag.Shape)
	if err != nil {
		return fmt.Errorf("marshalling shape: %w", err)
	}
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO tags (`+tagColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			shape = excluded.shape,
			floor_id = excluded.floor_id,
			color = excluded.color,
			x = excluded.x,
			y = excluded.y
	`, tag.ID, tag.Name, nullString(tag.Category), string(shapeJSON),
		nullString(tag.FloorID), nullString(tag.Color),
		tag.Position.X, tag.Position.Y, tag.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving tag: %w", err)
	}
	return nil
}

// Get retrieves a tag by ID.
func (s *tagStore) Get(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = ?", id)
	return scanTag(row)
}

// Delete removes a tag.
func (s *tagStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}

// List returns all tags in creation order.
func (s *tagStore) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+tagColumns+" FROM tags ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag //nolint:prealloc // size unknown from query
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func scanTag(row scanner) (*domain.Tag, error) {
	var tag domain.Tag
	var shapeJSON string
	var category, floorID, color sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&tag.ID, &tag.Name, &category, &shapeJSON, &floorID, &color,
		&tag.Position.X, &tag.Position.Y, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	if err := json.Unmarshal([]byte(shapeJSON), &tag.Shape); err != nil {
		return nil, fmt.Errorf("unmarshaling shape: %w", err)
	}
	tag.Category = category.String
	tag.FloorID = floorID.String
	tag.Color = color.String
	if createdAt.Valid {
		tag.CreatedAt = createdAt.Time
	}
	return &tag, nil
}
