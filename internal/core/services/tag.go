package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
	"github.com/custodia-labs/waymark/internal/logger"
)

// Ensure TagService implements the interface.
var _ driving.TagService = (*TagService)(nil)

// TagService manages tagged locations.
type TagService struct {
	tagStore  driven.TagStore
	pathStore driven.PathStore
}

// NewTagService creates a new tag service. The path store is used to
// clear references when a tag is deleted and may be nil.
func NewTagService(tagStore driven.TagStore, pathStore driven.PathStore) *TagService {
	return &TagService{
		tagStore:  tagStore,
		pathStore: pathStore,
	}
}

// Create adds a tag. Names are unique per floor, compared case-insensitively.
func (s *TagService) Create(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	if s.tagStore == nil {
		return nil, domain.ErrNotImplemented
	}
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}
	if err := s.check(ctx, tag); err != nil {
		return nil, err
	}
	if err := s.tagStore.Save(ctx, tag); err != nil {
		return nil, fmt.Errorf("saving tag: %w", err)
	}
	return &tag, nil
}

// Update replaces an existing tag.
func (s *TagService) Update(ctx context.Context, tag domain.Tag) error {
	if s.tagStore == nil {
		return domain.ErrNotImplemented
	}
	if tag.ID == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.tagStore.Get(ctx, tag.ID); err != nil {
		return err
	}
	if err := s.check(ctx, tag); err != nil {
		return err
	}
	return s.tagStore.Save(ctx, tag)
}

func (s *TagService) check(ctx context.Context, tag domain.Tag) error {
	if err := validateInput(tag); err != nil {
		return err
	}
	if err := validateShape(tag.Shape); err != nil {
		return err
	}
	existing, err := s.tagStore.List(ctx)
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}
	for i := range existing {
		if existing[i].ID != tag.ID && existing[i].FloorID == tag.FloorID &&
			strings.EqualFold(existing[i].Name, tag.Name) {
			return fmt.Errorf("tag %q: %w", tag.Name, domain.ErrAlreadyExists)
		}
	}
	return nil
}

// List returns the tags visible on floorID. Global tags are visible on
// every floor; an empty floorID returns all tags.
func (s *TagService) List(ctx context.Context, floorID string) ([]domain.Tag, error) {
	if s.tagStore == nil {
		return nil, domain.ErrNotImplemented
	}
	tags, err := s.tagStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Tag, 0, len(tags))
	for i := range tags {
		if tags[i].AppliesTo(floorID) {
			out = append(out, tags[i])
		}
	}
	return out, nil
}

// Delete removes a tag and clears every path reference to it.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if s.tagStore == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.tagStore.Get(ctx, id); err != nil {
		return err
	}
	if err := s.tagStore.Delete(ctx, id); err != nil {
		return err
	}
	if s.pathStore == nil {
		return nil
	}

	paths, err := s.pathStore.List(ctx)
	if err != nil {
		logger.Warn("listing paths to clear tag %s: %v", id, err)
		return nil
	}
	for i := range paths {
		changed := false
		if paths[i].SourceTagID == id {
			paths[i].SourceTagID = ""
			changed = true
		}
		if paths[i].DestinationTagID == id {
			paths[i].DestinationTagID = ""
			changed = true
		}
		if !changed {
			continue
		}
		//nolint:errcheck // a stale reference resolves to no tag, so keep going
		_ = s.pathStore.Save(ctx, paths[i])
	}
	return nil
}

// SetColor changes a tag colour.
func (s *TagService) SetColor(ctx context.Context, id, color string) error {
	if s.tagStore == nil {
		return domain.ErrNotImplemented
	}
	tag, err := s.tagStore.Get(ctx, id)
	if err != nil {
		return err
	}
	tag.Color = color
	return s.tagStore.Save(ctx, *tag)
}
