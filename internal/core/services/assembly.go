package services

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// resolveTagID returns the id of the tag named name, matched
// case-insensitively, or "" for a free-text endpoint.
func resolveTagID(tags []domain.Tag, name string) string {
	if tag := domain.FindTagByName(tags, name); tag != nil {
		return tag.ID
	}
	return ""
}

// basePath fills the fields shared by single-floor and multi-floor paths.
// Publication state and colour carry over from previous when editing.
func basePath(id, source, destination string, tags []domain.Tag, floor *domain.Floor, previous *domain.Path) domain.Path {
	path := domain.Path{
		ID:               id,
		Name:             domain.PathName(source, destination),
		Source:           source,
		Destination:      destination,
		SourceTagID:      resolveTagID(tags, source),
		DestinationTagID: resolveTagID(tags, destination),
	}
	if floor != nil {
		path.FloorID = floor.ID
	}
	if previous != nil {
		path.IsPublished = previous.IsPublished
		path.Color = previous.Color
	}
	return path
}

// AssembleSingleFloor builds a single-floor path from a point buffer.
// The path is stamped with the selected floor, if any.
func AssembleSingleFloor(
	id, source, destination string,
	points []domain.Point,
	tags []domain.Tag,
	floor *domain.Floor,
	previous *domain.Path,
) domain.Path {
	path := basePath(id, source, destination, tags, floor, previous)
	path.Points = domain.ClonePoints(points)
	return path
}

// AssembleMultiFloor builds a multi-floor path from the accumulated
// segments plus a final segment made of the live buffer on the active
// floor. The flat point list is cleared and the source and destination
// floors are taken from the first and last segments.
func AssembleMultiFloor(
	id, source, destination string,
	finalBuffer []domain.Point,
	priorSegments []domain.PathSegment,
	tags []domain.Tag,
	floor *domain.Floor,
	previous *domain.Path,
) domain.Path {
	final := domain.PathSegment{
		ID:     uuid.NewString(),
		Points: domain.ClonePoints(finalBuffer),
	}
	if floor != nil {
		final.FloorID = floor.ID
	}
	return assembleSegments(id, source, destination, append(cloneSegments(priorSegments), final), tags, floor, previous)
}

// assembleSegments builds a multi-floor path from a complete segment list.
func assembleSegments(
	id, source, destination string,
	segments []domain.PathSegment,
	tags []domain.Tag,
	floor *domain.Floor,
	previous *domain.Path,
) domain.Path {
	path := basePath(id, source, destination, tags, floor, previous)
	path.Points = []domain.Point{}
	path.IsMultiFloor = true
	path.Segments = segments
	if len(segments) > 0 {
		path.SourceFloorID = segments[0].FloorID
		path.DestinationFloorID = segments[len(segments)-1].FloorID
	}
	return path
}

// ApplySave inserts built into paths, or, when previous is set, replaces
// the record with previous's id. On update a blank source or destination
// keeps the previous value and tag reference, and the name is only
// re-derived when both were supplied.
func ApplySave(paths []domain.Path, built domain.Path, previous *domain.Path, source, destination string) ([]domain.Path, domain.Path) {
	if previous == nil {
		out := make([]domain.Path, 0, len(paths)+1)
		out = append(out, paths...)
		return append(out, built), built
	}

	if source == "" {
		built.Source = previous.Source
		built.SourceTagID = previous.SourceTagID
	}
	if destination == "" {
		built.Destination = previous.Destination
		built.DestinationTagID = previous.DestinationTagID
	}
	if source == "" || destination == "" {
		built.Name = previous.Name
	}

	out := make([]domain.Path, len(paths))
	for i := range paths {
		if paths[i].ID == built.ID {
			out[i] = built
		} else {
			out[i] = paths[i]
		}
	}
	return out, built
}

func cloneSegments(segments []domain.PathSegment) []domain.PathSegment {
	out := make([]domain.PathSegment, len(segments))
	for i, seg := range segments {
		seg.Points = domain.ClonePoints(seg.Points)
		out[i] = seg
	}
	return out
}
