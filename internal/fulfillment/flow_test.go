package fulfillment

import (
	"testing"

	"github.com/google/uuid"

	"github.com/taglinkbr/taglink-backend/pkg/config"
	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
)

func testFulfillmentConfig() config.FulfillmentConfig {
	return config.FulfillmentConfig{
		TrackingURLTemplate: "https://rastreamento.correios.com.br/app/index.php?objeto=%s",
		ArtEditorPathPrefix: "/art-editor",
	}
}

func strPtr(v string) *string { return &v }

func TestTimelineMarksStates(t *testing.T) {
	t.Parallel()

	steps := Timeline(enums.SimpleFlow, enums.OrderStatusProcessing)
	if len(steps) != len(enums.SimpleFlow) {
		t.Fatalf("expected %d steps, got %d", len(enums.SimpleFlow), len(steps))
	}

	for _, step := range steps {
		var want StepState
		switch step.Status {
		case enums.OrderStatusPending, enums.OrderStatusPaid:
			want = StepCompleted
		case enums.OrderStatusProcessing:
			want = StepCurrent
		default:
			want = StepUpcoming
		}
		if step.State != want {
			t.Fatalf("status %s: expected %s, got %s", step.Status, want, step.State)
		}
	}
}

func TestTimelineUnknownStatusFallsBackToStart(t *testing.T) {
	t.Parallel()

	// A cancelled order is not part of either flow; the timeline resets to
	// the first step rather than panicking.
	steps := Timeline(enums.SimpleFlow, enums.OrderStatusCancelled)
	if steps[0].State != StepCurrent {
		t.Fatalf("expected first step current, got %s", steps[0].State)
	}
	for _, step := range steps[1:] {
		if step.State != StepUpcoming {
			t.Fatalf("expected %s upcoming, got %s", step.Status, step.State)
		}
	}
}

func TestNextActionPayNow(t *testing.T) {
	t.Parallel()

	order := &models.Order{
		ID:         uuid.New(),
		Status:     enums.OrderStatusPending,
		PaymentURL: strPtr("https://pay.example/abc"),
	}

	action := NextAction(testFulfillmentConfig(), order)
	if action == nil || action.Kind != ActionPayNow {
		t.Fatalf("expected pay_now, got %+v", action)
	}
	if action.URL != "https://pay.example/abc" {
		t.Fatalf("unexpected url: %s", action.URL)
	}
}

func TestNextActionPendingWithoutPaymentURL(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusPending}
	if action := NextAction(testFulfillmentConfig(), order); action != nil {
		t.Fatalf("expected no action, got %+v", action)
	}
}

func TestNextActionCustomizeArtSkipsApproved(t *testing.T) {
	t.Parallel()

	approved := models.DisplayArt{ID: uuid.New(), Status: enums.ArtStatusApproved}
	draft := models.DisplayArt{ID: uuid.New(), Status: enums.ArtStatusDraft}
	order := &models.Order{
		ID:          uuid.New(),
		Status:      enums.OrderStatusAwaitingCustomization,
		DisplayArts: []models.DisplayArt{approved, draft},
	}

	action := NextAction(testFulfillmentConfig(), order)
	if action == nil || action.Kind != ActionCustomizeArt {
		t.Fatalf("expected customize_art, got %+v", action)
	}
	if action.DisplayArtID == nil || *action.DisplayArtID != draft.ID {
		t.Fatalf("expected draft art id, got %+v", action.DisplayArtID)
	}
	if action.URL != "/art-editor/"+draft.ID.String() {
		t.Fatalf("unexpected url: %s", action.URL)
	}
}

func TestNextActionTrackShipment(t *testing.T) {
	t.Parallel()

	order := &models.Order{
		ID:           uuid.New(),
		Status:       enums.OrderStatusShipped,
		TrackingCode: strPtr("BR123456789"),
	}

	action := NextAction(testFulfillmentConfig(), order)
	if action == nil || action.Kind != ActionTrackShipment {
		t.Fatalf("expected track_shipment, got %+v", action)
	}
	want := "https://rastreamento.correios.com.br/app/index.php?objeto=BR123456789"
	if action.URL != want {
		t.Fatalf("expected %s, got %s", want, action.URL)
	}
}

func TestNextActionTerminalStates(t *testing.T) {
	t.Parallel()

	for _, status := range []enums.OrderStatus{enums.OrderStatusDelivered, enums.OrderStatusCancelled} {
		order := &models.Order{ID: uuid.New(), Status: status}
		if action := NextAction(testFulfillmentConfig(), order); action != nil {
			t.Fatalf("status %s: expected no action, got %+v", status, action)
		}
	}
}
