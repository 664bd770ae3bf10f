package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

var (
	errBuildingServiceNotConfigured  = errors.New("building service not configured")
	errTagServiceNotConfigured       = errors.New("tag service not configured")
	errConnectorServiceNotConfigured = errors.New("connector service not configured")
	errSettingsServiceNotConfigured  = errors.New("settings service not configured")
)

// resolveBuilding finds a building by id or name.
func resolveBuilding(ctx context.Context, ref string) (*domain.Building, error) {
	if buildingService == nil {
		return nil, errBuildingServiceNotConfigured
	}
	b, err := buildingService.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("building %q: %w", ref, err)
	}
	return b, nil
}

// resolveFloor finds a floor of b by id or label.
func resolveFloor(b *domain.Building, ref string) (*domain.Floor, error) {
	if f := b.FloorByID(ref); f != nil {
		return f, nil
	}
	if f := b.FloorByLabel(ref); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("floor %q in %q: %w", ref, b.Name, domain.ErrNotFound)
}

// parsePoint reads "x,y" in normalised coordinates.
func parsePoint(s string) (domain.Point, error) {
	x, y, err := parsePair(s)
	if err != nil {
		return domain.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return domain.Point{}, fmt.Errorf("%w: point %q must lie within 0..1", domain.ErrInvalidInput, s)
	}
	return domain.Point{X: x, Y: y}, nil
}

func parsePair(s string) (a, b float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected two comma-separated numbers", domain.ErrInvalidInput)
	}
	a, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	b, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return a, b, nil
}

// parseShape builds a circle from radius or a rectangle from "w,h".
func parseShape(radius float64, rect string) (domain.Shape, error) {
	if rect != "" {
		w, h, err := parsePair(rect)
		if err != nil {
			return domain.Shape{}, fmt.Errorf("rectangle %q: %w", rect, err)
		}
		return domain.RectShape(w, h), nil
	}
	return domain.CircleShape(radius), nil
}

// floorLabel returns the label of floorID among the loaded buildings.
func floorLabel(buildings []domain.Building, floorID string) string {
	for i := range buildings {
		if f := buildings[i].FloorByID(floorID); f != nil {
			return f.Label
		}
	}
	return floorID
}

func formatPoints(points []domain.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
