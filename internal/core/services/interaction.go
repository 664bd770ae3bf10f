package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/logger"
)

// InteractionResult is the outcome of a connector decision.
type InteractionResult struct {
	// ShouldProceed is true when the path continues on another floor.
	ShouldProceed bool

	// AvailableFloors are the building floors holding a connector of the
	// same shared group. Populated on decline so the caller can suppress
	// re-prompting for the same connector.
	AvailableFloors []domain.Floor

	// ChosenFloorLabel is the label of the target floor when ShouldProceed.
	ChosenFloorLabel string
}

// TargetFloor returns the available floor matching ChosenFloorLabel, or nil.
func (r InteractionResult) TargetFloor() *domain.Floor {
	if !r.ShouldProceed {
		return nil
	}
	return domain.FindFloorByLabel(r.AvailableFloors, r.ChosenFloorLabel)
}

// ConnectorInteraction asks the user whether a path that reached a
// connector should continue on another floor, and on which one.
type ConnectorInteraction struct {
	prompter driven.Prompter
}

// NewConnectorInteraction creates an interaction resolver. A nil
// prompter declines every decision.
func NewConnectorInteraction(prompter driven.Prompter) *ConnectorInteraction {
	return &ConnectorInteraction{prompter: prompter}
}

// Resolve runs the floor-switch dialogue for a hit connector.
func (r *ConnectorInteraction) Resolve(
	ctx context.Context,
	hit domain.VerticalConnector,
	building *domain.Building,
	floor *domain.Floor,
	connectors []domain.VerticalConnector,
) InteractionResult {
	if building == nil || floor == nil {
		return InteractionResult{}
	}

	logger.Debug("resolving connector %q (%s) on floor %q", hit.Name, hit.SharedID, floor.Label)

	matching := domain.MatchingConnectors(connectors, hit, floor.ID)
	if len(matching) == 0 {
		r.notify(ctx, driven.NoticeWarning, fmt.Sprintf(
			"No matching connector %q found on other floors. Make sure the connector exists on "+
				"multiple floors with the same shared ID.", hit.Name))
		return InteractionResult{}
	}

	available := floorsWithConnectors(building.Floors, matching)
	if len(available) == 0 {
		r.notify(ctx, driven.NoticeWarning, "No other floors available for this connector.")
		return InteractionResult{}
	}

	logger.Debug("connector %q reaches floors %v", hit.Name, domain.FloorLabels(available))

	if r.prompter == nil {
		return InteractionResult{AvailableFloors: available}
	}

	confirmed, err := r.prompter.Confirm(ctx, fmt.Sprintf(
		"You've reached %q. Do you want to continue this path on another floor?", hit.Name))
	if err != nil {
		logger.Warn("connector confirmation failed: %v", err)
		return InteractionResult{AvailableFloors: available}
	}
	if !confirmed {
		logger.Debug("user chose to stay on floor %q", floor.Label)
		return InteractionResult{AvailableFloors: available}
	}

	label := available[0].Label
	if len(available) > 1 {
		label, err = r.prompter.Choose(ctx, fmt.Sprintf(
			"Connect to which floor via %q?", hit.Name), domain.FloorLabels(available))
		if err != nil {
			logger.Warn("floor selection failed: %v", err)
			return InteractionResult{AvailableFloors: available}
		}
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return InteractionResult{AvailableFloors: available}
	}

	target := domain.FindFloorByLabel(available, label)
	if target == nil {
		r.notify(ctx, driven.NoticeWarning, fmt.Sprintf("Floor %q not found. Please try again.", label))
		return InteractionResult{AvailableFloors: available}
	}

	return InteractionResult{
		ShouldProceed:    true,
		AvailableFloors:  available,
		ChosenFloorLabel: target.Label,
	}
}

func (r *ConnectorInteraction) notify(ctx context.Context, level driven.NoticeLevel, message string) {
	logger.Info("%s: %s", level, message)
	if r.prompter != nil {
		r.prompter.Notify(ctx, level, message)
	}
}

// floorsWithConnectors keeps the building floors, in building order,
// that own at least one of connectors.
func floorsWithConnectors(floors []domain.Floor, connectors []domain.VerticalConnector) []domain.Floor {
	owners := make(map[string]bool, len(connectors))
	for i := range connectors {
		owners[connectors[i].FloorID] = true
	}
	var out []domain.Floor
	for i := range floors {
		if owners[floors[i].ID] {
			out = append(out, floors[i])
		}
	}
	return out
}
