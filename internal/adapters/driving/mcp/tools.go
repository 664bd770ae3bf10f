package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

// VisiblePathsInput is the input schema for the visible_paths tool.
type VisiblePathsInput struct {
	Building string `json:"building,omitempty" jsonschema:"building id or name; defaults to the current selection"`
	Floor    string `json:"floor,omitempty" jsonschema:"floor id or label within the building"`
}

// VisiblePathsOutput is the output schema for the visible_paths tool.
type VisiblePathsOutput struct {
	BuildingID string       `json:"building_id,omitempty"`
	FloorID    string       `json:"floor_id,omitempty"`
	Mode       string       `json:"mode"`
	Paths      []PathOutput `json:"paths"`
	Count      int          `json:"count"`
}

// PathOutput summarises a path.
type PathOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Published   bool     `json:"published"`
	MultiFloor  bool     `json:"multi_floor"`
	Floors      []string `json:"floors,omitempty"`
	Points      int      `json:"points"`
	Color       string   `json:"color,omitempty"`
}

// DetectConnectorInput is the input schema for the detect_connector tool.
type DetectConnectorInput struct {
	FloorID string  `json:"floor_id" jsonschema:"floor to hit-test"`
	X       float64 `json:"x" jsonschema:"normalised x position in 0..1"`
	Y       float64 `json:"y" jsonschema:"normalised y position in 0..1"`
}

// DetectConnectorOutput is the output schema for the detect_connector tool.
type DetectConnectorOutput struct {
	Hit       bool             `json:"hit"`
	Connector *ConnectorOutput `json:"connector,omitempty"`
}

// ConnectorOutput describes a vertical connector record.
type ConnectorOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	FloorID  string  `json:"floor_id"`
	SharedID string  `json:"shared_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// RouteInput is the input schema for the route tool.
type RouteInput struct {
	PathID  string `json:"path_id" jsonschema:"path to animate"`
	Segment int    `json:"segment,omitempty" jsonschema:"segment of a multi-floor path, 1-based (default 1)"`
}

// RouteOutput is the output schema for the route tool.
type RouteOutput struct {
	Path         PathOutput     `json:"path"`
	FloorID      string         `json:"floor_id,omitempty"`
	Segment      int            `json:"segment,omitempty"`
	SegmentCount int            `json:"segment_count,omitempty"`
	Points       []domain.Point `json:"points"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "visible_paths",
		Description: "List the paths displayed on a floor in the current editor mode",
	}, s.handleVisiblePaths)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_connector",
		Description: "Find the vertical connector hit by a click on a floor",
	}, s.handleDetectConnector)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "route",
		Description: "Select a path, or one segment of a multi-floor path, for animation",
	}, s.handleRoute)
}

// handleVisiblePaths handles the visible_paths tool invocation.
func (s *Server) handleVisiblePaths(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VisiblePathsInput,
) (*mcp.CallToolResult, VisiblePathsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	editor := s.ports.Editor
	s.reload(ctx)

	if input.Building != "" {
		b := findBuilding(editor.Buildings(), input.Building)
		if b == nil {
			return nil, VisiblePathsOutput{}, fmt.Errorf("building %q: %w", input.Building, domain.ErrNotFound)
		}
		if err := editor.SelectBuilding(ctx, b.ID); err != nil {
			return nil, VisiblePathsOutput{}, err
		}
		if input.Floor != "" {
			f := b.FloorByID(input.Floor)
			if f == nil {
				f = b.FloorByLabel(input.Floor)
			}
			if f == nil {
				return nil, VisiblePathsOutput{}, fmt.Errorf("floor %q: %w", input.Floor, domain.ErrNotFound)
			}
			if err := editor.SelectFloor(ctx, f.ID); err != nil {
				return nil, VisiblePathsOutput{}, err
			}
		}
	} else if input.Floor != "" {
		return nil, VisiblePathsOutput{}, fmt.Errorf("%w: floor needs a building", domain.ErrInvalidInput)
	}

	paths := editor.VisiblePaths()
	output := VisiblePathsOutput{
		Mode:  string(editor.Mode()),
		Paths: make([]PathOutput, len(paths)),
		Count: len(paths),
	}
	if b := editor.SelectedBuilding(); b != nil {
		output.BuildingID = b.ID
	}
	if f := editor.SelectedFloor(); f != nil {
		output.FloorID = f.ID
	}
	for i := range paths {
		output.Paths[i] = toPathOutput(&paths[i])
	}

	return nil, output, nil
}

// handleDetectConnector handles the detect_connector tool invocation.
func (s *Server) handleDetectConnector(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DetectConnectorInput,
) (*mcp.CallToolResult, DetectConnectorOutput, error) {
	if s.ports.Connectors == nil {
		return nil, DetectConnectorOutput{}, ErrConnectorsUnavailable
	}

	click := domain.Point{X: input.X, Y: input.Y}
	if click.X < 0 || click.X > 1 || click.Y < 0 || click.Y > 1 {
		return nil, DetectConnectorOutput{}, fmt.Errorf("%w: position %s outside 0..1", domain.ErrInvalidInput, click)
	}

	hit, err := s.ports.Connectors.Detect(ctx, input.FloorID, click, s.canvas())
	if err != nil {
		return nil, DetectConnectorOutput{}, err
	}
	if hit == nil {
		return nil, DetectConnectorOutput{}, nil
	}

	return nil, DetectConnectorOutput{
		Hit: true,
		Connector: &ConnectorOutput{
			ID:       hit.ID,
			Name:     hit.Name,
			Type:     string(hit.Type),
			FloorID:  hit.FloorID,
			SharedID: hit.SharedID,
			X:        hit.Position.X,
			Y:        hit.Position.Y,
		},
	}, nil
}

// handleRoute handles the route tool invocation.
func (s *Server) handleRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RouteInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	if input.PathID == "" {
		return nil, RouteOutput{}, fmt.Errorf("%w: path_id is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload(ctx)

	route, err := s.ports.Editor.SelectRoute(ctx, input.PathID, input.Segment-1)
	if err != nil {
		return nil, RouteOutput{}, err
	}

	output := RouteOutput{
		Path:    toPathOutput(&route.Path),
		FloorID: route.FloorID,
		Points:  route.Points,
	}
	if output.Points == nil {
		output.Points = []domain.Point{}
	}
	if route.SegmentCount > 0 {
		output.Segment = route.SegmentIndex + 1
		output.SegmentCount = route.SegmentCount
	}

	return nil, output, nil
}

func (s *Server) canvas() domain.CanvasSize {
	if s.ports.Settings == nil {
		return domain.DefaultCanvasSize
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return domain.DefaultCanvasSize
	}
	return settings.Canvas
}

func findBuilding(buildings []domain.Building, ref string) *domain.Building {
	for i := range buildings {
		if buildings[i].ID == ref {
			return &buildings[i]
		}
	}
	for i := range buildings {
		if strings.EqualFold(buildings[i].Name, ref) {
			return &buildings[i]
		}
	}
	return nil
}

func toPathOutput(p *domain.Path) PathOutput {
	return PathOutput{
		ID:          p.ID,
		Name:        p.Name,
		Source:      p.Source,
		Destination: p.Destination,
		Published:   p.IsPublished,
		MultiFloor:  p.IsMultiFloor,
		Floors:      p.FloorIDs(),
		Points:      p.PointCount(),
		Color:       p.Color,
	}
}
