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

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// pathStore implements driven.PathStore.
type pathStore struct {
	store *Store
}

var _ driven.PathStore = (*pathStore)(nil)

const pathColumns = `id, name, source, destination, source_tag_id, destination_tag_id,
	floor_id, color, is_published, is_multi_floor, source_floor_id, destination_floor_id,
	points, segments`

// Save stores or updates a path.
func (s *pathStore) Save(ctx context.Context, path domain.Path) error {
	points := path.Points
	if points == nil {
		points = []domain.Point{}
	}
	pointsJSON, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshalling points: %w", err)
	}

	var segments any
	if path.Segments != nil {
		segmentsJSON, err := json.Marshal(path.Segments)
		if err != nil {
			return fmt.Errorf("marshalling segments: %w", err)
		}
		segments = string(segmentsJSON)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO paths (`+pathColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source = excluded.source,
			destination = excluded.destination,
			source_tag_id = excluded.source_tag_id,
			destination_tag_id = excluded.destination_tag_id,
			floor_id = excluded.floor_id,
			color = excluded.color,
			is_published = excluded.is_published,
			is_multi_floor = excluded.is_multi_floor,
			source_floor_id = excluded.source_floor_id,
			destination_floor_id = excluded.destination_floor_id,
			points = excluded.points,
			segments = excluded.segments,
			updated_at = excluded.updated_at
	`, path.ID, path.Name, path.Source, path.Destination,
		nullString(path.SourceTagID), nullString(path.DestinationTagID),
		nullString(path.FloorID), nullString(path.Color),
		boolToInt(path.IsPublished), boolToInt(path.IsMultiFloor),
		nullString(path.SourceFloorID), nullString(path.DestinationFloorID),
		string(pointsJSON), segments, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving path: %w", err)
	}
	return nil
}

// Get retrieves a path by ID.
func (s *pathStore) Get(ctx context.Context, id string) (*domain.Path, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+pathColumns+" FROM paths WHERE id = ?", id)
	return scanPath(row)
}

// Delete removes a path.
func (s *pathStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM paths WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting path: %w", err)
	}
	return nil
}

// List returns all paths in creation order.
func (s *pathStore) List(ctx context.Context) ([]domain.Path, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+pathColumns+" FROM paths ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying paths: %w", err)
	}
	defer rows.Close()

	var paths []domain.Path //nolint:prealloc // size unknown from query
	for rows.Next() {
		path, err := scanPath(rows)
		if err != nil {
			return nil, err
		}
		paths = append(paths, *path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating paths: %w", err)
	}
	return paths, nil
}

func scanPath(row scanner) (*domain.Path, error) {
	var path domain.Path
	var sourceTagID, destinationTagID, floorID, color sql.NullString
	var sourceFloorID, destinationFloorID, segmentsJSON sql.NullString
	var isPublished, isMultiFloor int
	var pointsJSON string
	if err := row.Scan(&path.ID, &path.Name, &path.Source, &path.Destination,
		&sourceTagID, &destinationTagID, &floorID, &color,
		&isPublished, &isMultiFloor, &sourceFloorID, &destinationFloorID,
		&pointsJSON, &segmentsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning path: %w", err)
	}

	if err := json.Unmarshal([]byte(pointsJSON), &path.Points); err != nil {
		return nil, fmt.Errorf("unmarshaling points: %w", err)
	}
	if path.Points == nil {
		path.Points = []domain.Point{}
	}
	if segmentsJSON.Valid && segmentsJSON.String != jsonNull {
		if err := json.Unmarshal([]byte(segmentsJSON.String), &path.Segments); err != nil {
			return nil, fmt.Errorf("unmarshaling segments: %w", err)
		}
	}

	path.SourceTagID = sourceTagID.String
	path.DestinationTagID = destinationTagID.String
	path.FloorID = floorID.String
	path.Color = color.String
	path.IsPublished = isPublished == 1
	path.IsMultiFloor = isMultiFloor == 1
	path.SourceFloorID = sourceFloorID.String
	path.DestinationFloorID = destinationFloorID.String
	return &path, nil
}
