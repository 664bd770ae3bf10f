package services

import (
	"math"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

const (
	// BaseHitThreshold is the minimum hit radius in canvas units.
	BaseHitThreshold = 15.0

	// circleHitFactor scales a circle's radius into its hit radius.
	circleHitFactor = 0.8

	// rectHitFactor scales a rectangle's mean side into its hit radius.
	rectHitFactor = 0.4
)

// ConnectorDetector decides which vertical connector, if any, a click
// on the active floor landed on.
//
// Distances are measured in a fixed logical canvas rather than the
// rendered image, so thresholds stretch unevenly when the floor image
// has a different aspect ratio than the canvas.
type ConnectorDetector struct {
	canvas domain.CanvasSize
}

// NewConnectorDetector creates a detector for the given logical canvas.
// An invalid canvas falls back to domain.DefaultCanvasSize.
func NewConnectorDetector(canvas domain.CanvasSize) *ConnectorDetector {
	if !canvas.IsValid() {
		canvas = domain.DefaultCanvasSize
	}
	return &ConnectorDetector{canvas: canvas}
}

// Canvas returns the logical canvas used for scaling.
func (d *ConnectorDetector) Canvas() domain.CanvasSize {
	return d.canvas
}

// Distance returns the canvas-space distance between a click and a connector.
func (d *ConnectorDetector) Distance(click domain.Point, connector *domain.VerticalConnector) float64 {
	cx, cy := d.canvas.Scale(connector.Position)
	px, py := d.canvas.Scale(click)
	return math.Hypot(cx-px, cy-py)
}

// Threshold returns the hit radius of a connector in canvas units.
func (d *ConnectorDetector) Threshold(connector *domain.VerticalConnector) float64 {
	shape := connector.Shape
	switch shape.Kind {
	case domain.ShapeCircle:
		if shape.Circle != nil && shape.Circle.Radius > 0 {
			return math.Max(BaseHitThreshold, shape.Circle.Radius*d.canvas.Width*circleHitFactor)
		}
	case domain.ShapeRectangle:
		if shape.Rect != nil && shape.Rect.Width > 0 && shape.Rect.Height > 0 {
			avg := (shape.Rect.Width*d.canvas.Width + shape.Rect.Height*d.canvas.Height) / 2
			return math.Max(BaseHitThreshold, avg*rectHitFactor)
		}
	}
	return BaseHitThreshold
}

// Hits reports whether click falls within the connector's threshold.
func (d *ConnectorDetector) Hits(click domain.Point, connector *domain.VerticalConnector) bool {
	return d.Distance(click, connector) <= d.Threshold(connector)
}

// Detect returns the connector on floor hit by click, or nil.
//
// Nothing is detected while a connector decision is pending or when no
// floor is selected. The connector named by lastInteractedID is skipped
// so that the click which was just declined does not prompt again. When
// several connectors qualify the first in iteration order wins.
func (d *ConnectorDetector) Detect(
	click domain.Point,
	floor *domain.Floor,
	connectors []domain.VerticalConnector,
	lastInteractedID string,
	promptActive bool,
) *domain.VerticalConnector {
	if promptActive || floor == nil {
		return nil
	}

	for i := range connectors {
		c := &connectors[i]
		if c.FloorID != floor.ID {
			continue
		}
		if !d.Hits(click, c) {
			continue
		}
		if c.ID == lastInteractedID {
			continue
		}
		hit := *c
		return &hit
	}
	return nil
}
