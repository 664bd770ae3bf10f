package services

import "github.com/custodia-labs/waymark/internal/core/domain"

// PointBuffer is the in-progress point list of the path being drawn,
// with a stack of snapshots for undo.
type PointBuffer struct {
	points []domain.Point
	undo   [][]domain.Point
}

// Points returns a copy of the current points.
func (b *PointBuffer) Points() []domain.Point {
	return domain.ClonePoints(b.points)
}

// Len returns the number of points in the buffer.
func (b *PointBuffer) Len() int {
	return len(b.points)
}

// Append pushes the current points onto the undo stack and appends p.
func (b *PointBuffer) Append(p domain.Point) {
	b.undo = append(b.undo, domain.ClonePoints(b.points))
	b.points = append(b.points, p)
}

// Move replaces the point at index. It does not record an undo snapshot.
func (b *PointBuffer) Move(index int, p domain.Point) bool {
	if index < 0 || index >= len(b.points) {
		return false
	}
	b.points[index] = p
	return true
}

// Undo restores the most recent snapshot.
func (b *PointBuffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	last := len(b.undo) - 1
	b.points = b.undo[last]
	b.undo = b.undo[:last]
	return true
}

// UndoDepth returns the number of snapshots on the undo stack.
func (b *PointBuffer) UndoDepth() int {
	return len(b.undo)
}

// Replace sets the points and clears the undo stack.
func (b *PointBuffer) Replace(points []domain.Point) {
	b.points = domain.ClonePoints(points)
	b.undo = nil
}

// Reset empties the buffer and the undo stack.
func (b *PointBuffer) Reset() {
	b.points = nil
	b.undo = nil
}
