package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_String(t *testing.T) {
	assert.Equal(t, "(0.5000, 0.2500)", Point{X: 0.5, Y: 0.25}.String())
}

func TestClonePoints(t *testing.T) {
	in := []Point{{X: 0.1, Y: 0.2}}
	out := ClonePoints(in)
	out[0].X = 0.9

	assert.Equal(t, 0.1, in[0].X)
	assert.NotNil(t, ClonePoints(nil))
	assert.Empty(t, ClonePoints(nil))
}

func TestShapeConstructors(t *testing.T) {
	c := CircleShape(0.02)
	assert.Equal(t, ShapeCircle, c.Kind)
	assert.Equal(t, 0.02, c.Circle.Radius)
	assert.Nil(t, c.Rect)

	r := RectShape(0.1, 0.2)
	assert.Equal(t, ShapeRectangle, r.Kind)
	assert.Equal(t, 0.1, r.Rect.Width)
	assert.Equal(t, 0.2, r.Rect.Height)
	assert.Nil(t, r.Circle)
}

func TestCanvasSize(t *testing.T) {
	x, y := DefaultCanvasSize.Scale(Point{X: 0.5, Y: 0.5})
	assert.Equal(t, 600.0, x)
	assert.Equal(t, 400.0, y)

	assert.True(t, DefaultCanvasSize.IsValid())
	assert.False(t, CanvasSize{Width: 100}.IsValid())
}
