package services

import "github.com/custodia-labs/waymark/internal/core/domain"

// DisplayQuery is the editor context that decides which paths are drawn.
type DisplayQuery struct {
	// Floor is the selected floor; nil in single-map mode.
	Floor *domain.Floor

	// Mode is the active editor mode.
	Mode domain.EditorMode

	// SelectedForAnimation is the route picked in preview.
	SelectedForAnimation *domain.Path

	// AnimatedPath is the point run currently animated.
	AnimatedPath []domain.Point
}

func (q DisplayQuery) floorID() string {
	if q.Floor == nil {
		return ""
	}
	return q.Floor.ID
}

// FilterPathsByFloor keeps the paths relevant to floorID. An empty
// floorID keeps every single-floor path and no multi-floor path.
func FilterPathsByFloor(paths []domain.Path, floorID string) []domain.Path {
	out := make([]domain.Path, 0, len(paths))
	for i := range paths {
		if paths[i].RelevantTo(floorID) {
			out = append(out, paths[i])
		}
	}
	return out
}

// SelectForDisplay computes the paths to render.
//
// Design and edit modes show every floor-relevant path, drafts
// included. Preview shows only the route selected for animation, and
// only once it is published and has an animated point run. Every other
// mode shows the published floor-relevant paths.
func SelectForDisplay(paths []domain.Path, q DisplayQuery) []domain.Path {
	relevant := FilterPathsByFloor(paths, q.floorID())

	switch q.Mode {
	case domain.ModeDesign, domain.ModeEdit:
		return relevant

	case domain.ModePreview:
		out := []domain.Path{}
		if q.SelectedForAnimation == nil || len(q.AnimatedPath) == 0 {
			return out
		}
		for i := range relevant {
			if relevant[i].ID == q.SelectedForAnimation.ID && relevant[i].IsPublished {
				out = append(out, relevant[i])
			}
		}
		return out

	default:
		out := make([]domain.Path, 0, len(relevant))
		for i := range relevant {
			if relevant[i].IsPublished {
				out = append(out, relevant[i])
			}
		}
		return out
	}
}

// SegmentsOnFloor returns the segments of a multi-floor path drawn on
// floorID. A single-floor path relevant to the floor yields one
// synthetic segment holding its points.
func SegmentsOnFloor(path domain.Path, floorID string) []domain.PathSegment {
	if !path.IsMultiFloor {
		if !path.RelevantTo(floorID) {
			return nil
		}
		return []domain.PathSegment{{
			ID:      path.ID,
			FloorID: path.FloorID,
			Points:  domain.ClonePoints(path.Points),
		}}
	}
	var out []domain.PathSegment
	for _, seg := range path.Segments {
		if seg.FloorID == floorID {
			seg.Points = domain.ClonePoints(seg.Points)
			out = append(out, seg)
		}
	}
	return out
}
