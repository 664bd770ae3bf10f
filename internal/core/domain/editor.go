package domain

import "fmt"

// EditorMode controls which paths are visible and whether points may be placed.
type EditorMode string

const (
	// ModeDefault shows published paths only.
	ModeDefault EditorMode = "default"

	// ModeDesign draws new paths and shows drafts.
	ModeDesign EditorMode = "design"

	// ModeEdit modifies an existing path and shows drafts.
	ModeEdit EditorMode = "edit"

	// ModePreview shows only the route chosen for animation.
	ModePreview EditorMode = "preview"
)

// ParseEditorMode converts a string into an EditorMode. The empty
// string maps to ModeDefault.
func ParseEditorMode(s string) (EditorMode, error) {
	switch EditorMode(s) {
	case "", ModeDefault:
		return ModeDefault, nil
	case ModeDesign, ModeEdit, ModePreview:
		return EditorMode(s), nil
	default:
		return "", fmt.Errorf("%w: editor mode %q", ErrInvalidInput, s)
	}
}

// AllowsDrawing reports whether clicks place points in this mode.
func (m EditorMode) AllowsDrawing() bool {
	return m == ModeDesign || m == ModeEdit
}

// EditorState is the slice of the editing session that survives
// between invocations.
type EditorState struct {
	BuildingID string     `json:"buildingId,omitempty"`
	FloorID    string     `json:"floorId,omitempty"`
	Mode       EditorMode `json:"mode"`
}
