package fulfillment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/taglinkbr/taglink-backend/pkg/config"
	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
)

// ActionKind names the next step a consuming surface should expose.
type ActionKind string

const (
	ActionPayNow        ActionKind = "pay_now"
	ActionCustomizeArt  ActionKind = "customize_art"
	ActionTrackShipment ActionKind = "track_shipment"
)

// Action is the contextual affordance derived from the order's current state.
type Action struct {
	Kind         ActionKind `json:"kind"`
	URL          string     `json:"url,omitempty"`
	DisplayArtID *uuid.UUID `json:"display_art_id,omitempty"`
}

// StepState classifies a flow step relative to the current one.
type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepUpcoming  StepState = "upcoming"
)

// TimelineStep pairs a flow status with its presentation state.
type TimelineStep struct {
	Status enums.OrderStatus `json:"status"`
	State  StepState         `json:"state"`
}

// Timeline derives completed/current/upcoming markers for every step of the
// flow. It is a pure function of the order's current status and is recomputed
// on every read.
func Timeline(flow []enums.OrderStatus, status enums.OrderStatus) []TimelineStep {
	current := enums.StepIndex(flow, status)
	steps := make([]TimelineStep, len(flow))
	for i, s := range flow {
		state := StepUpcoming
		switch {
		case i < current:
			state = StepCompleted
		case i == current:
			state = StepCurrent
		}
		steps[i] = TimelineStep{Status: s, State: state}
	}
	return steps
}

// NextAction returns the actionable affordance for the order's current state,
// or nil when the state carries none.
func NextAction(cfg config.FulfillmentConfig, order *models.Order) *Action {
	switch order.Status {
	case enums.OrderStatusPending:
		if order.PaymentURL != nil && *order.PaymentURL != "" {
			return &Action{Kind: ActionPayNow, URL: *order.PaymentURL}
		}
	case enums.OrderStatusAwaitingCustomization:
		for i := range order.DisplayArts {
			art := order.DisplayArts[i]
			if art.Status == enums.ArtStatusApproved {
				continue
			}
			return &Action{
				Kind:         ActionCustomizeArt,
				URL:          fmt.Sprintf("%s/%s", cfg.ArtEditorPathPrefix, art.ID),
				DisplayArtID: &art.ID,
			}
		}
	case enums.OrderStatusShipped:
		if order.TrackingCode != nil && *order.TrackingCode != "" {
			return &Action{Kind: ActionTrackShipment, URL: fmt.Sprintf(cfg.TrackingURLTemplate, *order.TrackingCode)}
		}
	}
	return nil
}
