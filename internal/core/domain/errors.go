package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// Editor Errors.

	// ErrNoBuildingSelected indicates an operation needs a selected building.
	ErrNoBuildingSelected = errors.New("no building selected")

	// ErrNoFloorSelected indicates an operation needs a selected floor.
	ErrNoFloorSelected = errors.New("no floor selected")

	// ErrNotDrawing indicates a point was placed outside design or edit mode.
	ErrNotDrawing = errors.New("not in design or edit mode")

	// ErrPromptActive indicates a connector decision is still pending.
	ErrPromptActive = errors.New("connector decision pending")

	// ErrNoDecisionPending indicates a decision was resolved without one being open.
	ErrNoDecisionPending = errors.New("no connector decision pending")

	// ErrEmptyPath indicates there are no points to save.
	ErrEmptyPath = errors.New("path has no points")

	// Path Errors.

	// ErrInvalidPath indicates a path violates its structural invariants
	// and must not be persisted.
	ErrInvalidPath = errors.New("invalid path")

	// ErrConnectorMismatch indicates the target floor has no connector in
	// the source connector's shared group.
	ErrConnectorMismatch = errors.New("no matching connector on target floor")

	// Connector Errors.

	// ErrDuplicateConnectorFloor indicates a shared group already has a
	// connector on the given floor.
	ErrDuplicateConnectorFloor = errors.New("shared group already has a connector on this floor")
)
