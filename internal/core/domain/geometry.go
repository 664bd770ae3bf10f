package domain

import "fmt"

// Point is a position on a floor image in normalised coordinates,
// where (0,0) is the top-left corner and (1,1) the bottom-right.
type Point struct {
	X float64 `json:"x" validate:"gte=0,lte=1"`
	Y float64 `json:"y" validate:"gte=0,lte=1"`
}

// String formats the point with four decimals.
func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// ClonePoints returns a copy of points that never aliases the input.
// A nil input yields an empty, non-nil slice.
func ClonePoints(points []Point) []Point {
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

// ShapeKind identifies the variant held by a Shape.
type ShapeKind string

const (
	// ShapeCircle is a circle centred on the owner's position.
	ShapeCircle ShapeKind = "circle"

	// ShapeRectangle is an axis-aligned rectangle centred on the owner's position.
	ShapeRectangle ShapeKind = "rectangle"
)

// Circle is the payload of a circle shape. Radius is normalised
// against the canvas width.
type Circle struct {
	Radius float64 `json:"radius" validate:"gt=0,lte=1"`
}

// Rect is the payload of a rectangle shape. Width and height are
// normalised against the canvas width and height respectively.
type Rect struct {
	Width  float64 `json:"width" validate:"gt=0,lte=1"`
	Height float64 `json:"height" validate:"gt=0,lte=1"`
}

// Shape is a tagged union over the supported outlines of tags and
// connectors. Exactly one payload matches Kind; a Shape whose payload
// is missing is treated as having no size.
type Shape struct {
	Kind   ShapeKind `json:"kind" validate:"required,oneof=circle rectangle"`
	Circle *Circle   `json:"circle,omitempty"`
	Rect   *Rect     `json:"rectangle,omitempty"`
}

// CircleShape builds a circle shape.
func CircleShape(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Circle: &Circle{Radius: radius}}
}

// RectShape builds a rectangle shape.
func RectShape(width, height float64) Shape {
	return Shape{Kind: ShapeRectangle, Rect: &Rect{Width: width, Height: height}}
}

// CanvasSize is the logical canvas that normalised coordinates are
// scaled into for distance calculations.
type CanvasSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultCanvasSize is the logical canvas used when none is configured.
var DefaultCanvasSize = CanvasSize{Width: 1200, Height: 800}

// Scale maps a normalised point into canvas units.
func (c CanvasSize) Scale(p Point) (x, y float64) {
	return p.X * c.Width, p.Y * c.Height
}

// IsValid reports whether both dimensions are positive.
func (c CanvasSize) IsValid() bool {
	return c.Width > 0 && c.Height > 0
}
