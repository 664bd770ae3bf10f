package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Waymark resources.
	uriScheme = "waymark://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing buildings.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "buildings",
		Name:        "buildings",
		Description: "Buildings with their floors, lowest first",
		MIMEType:    "application/json",
	}, s.handleBuildingsResource)

	// Template for the paths of one building.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "buildings/{buildingId}/paths",
		Name:        "building-paths",
		Description: "Paths touching any floor of a building",
		MIMEType:    "application/json",
	}, s.handleBuildingPathsResource)

	// Template for a single path with its points.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "paths/{pathId}",
		Name:        "path",
		Description: "A path with its points or per-floor segments",
		MIMEType:    "application/json",
	}, s.handlePathResource)
}

// handleBuildingsResource returns every building with its floors.
func (s *Server) handleBuildingsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	s.reload(ctx)
	buildings := s.ports.Editor.Buildings()
	s.mu.Unlock()

	type floorInfo struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	type buildingInfo struct {
		ID     string      `json:"id"`
		Name   string      `json:"name"`
		Floors []floorInfo `json:"floors"`
	}

	infos := make([]buildingInfo, len(buildings))
	for i := range buildings {
		b := buildings[i]
		floors := make([]floorInfo, len(b.Floors))
		for j, f := range b.Floors {
			floors[j] = floorInfo{ID: f.ID, Label: f.Label}
		}
		infos[i] = buildingInfo{ID: b.ID, Name: b.Name, Floors: floors}
	}

	return jsonResult(req.Params.URI, infos, "buildings")
}

// handleBuildingPathsResource returns the paths on a building's floors.
// Global single-floor paths are included since they apply to every floor.
func (s *Server) handleBuildingPathsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract buildingId from URI: waymark://buildings/{buildingId}/paths
	buildingID := extractBuildingID(req.Params.URI)
	if buildingID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	s.mu.Lock()
	s.reload(ctx)
	building := findBuilding(s.ports.Editor.Buildings(), buildingID)
	paths := s.ports.Editor.Paths()
	s.mu.Unlock()

	if building == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	infos := []PathOutput{}
	for i := range paths {
		if pathInBuilding(&paths[i], building) {
			infos = append(infos, toPathOutput(&paths[i]))
		}
	}

	return jsonResult(req.Params.URI, infos, "paths")
}

// handlePathResource returns a full path.
func (s *Server) handlePathResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract pathId from URI: waymark://paths/{pathId}
	pathID := extractPathID(req.Params.URI)
	if pathID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	s.mu.Lock()
	s.reload(ctx)
	path := domain.FindPath(s.ports.Editor.Paths(), pathID)
	s.mu.Unlock()

	if path == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResult(req.Params.URI, path, "path")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func pathInBuilding(p *domain.Path, b *domain.Building) bool {
	if p.IsGlobal() {
		return true
	}
	for _, id := range p.FloorIDs() {
		if b.HasFloor(id) {
			return true
		}
	}
	return false
}

// extractBuildingID extracts the building ID from a URI like waymark://buildings/{buildingId}/paths.
func extractBuildingID(uri string) string {
	const prefix = uriScheme + "buildings/"
	const suffix = "/paths"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractPathID extracts the path ID from a URI like waymark://paths/{pathId}.
func extractPathID(uri string) string {
	const prefix = uriScheme + "paths/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
