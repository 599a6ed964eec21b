package fulfillment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
)

type stubOrderRepo struct {
	order      *models.Order
	findErr    error
	moved      bool
	updateErr  error
	updateFrom enums.OrderStatus
	updateTo   enums.OrderStatus
	tracking   string
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.order == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if s.order == nil {
		return nil, nil
	}
	return []models.Order{*s.order}, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	if s.updateErr != nil {
		return false, s.updateErr
	}
	s.updateFrom = from
	s.updateTo = to
	return s.moved, nil
}

func (s *stubOrderRepo) SetTrackingCode(ctx context.Context, id uuid.UUID, trackingCode string) error {
	s.tracking = trackingCode
	return nil
}

func newTestFulfillmentService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, testFulfillmentConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func customArtOrder(status enums.OrderStatus) *models.Order {
	userID := uuid.New()
	return &models.Order{
		ID:     uuid.New(),
		UserID: &userID,
		Status: status,
		Items: []models.OrderItem{
			{ID: uuid.New(), RequiresCustomArt: true, Quantity: 1},
		},
	}
}

func TestGetTrackingOwnerOnly(t *testing.T) {
	t.Parallel()

	order := customArtOrder(enums.OrderStatusPaid)
	repo := &stubOrderRepo{order: order}
	svc := newTestFulfillmentService(t, repo)

	_, err := svc.GetTracking(context.Background(), order.ID, uuid.New(), false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	got, err := svc.GetTracking(context.Background(), order.ID, *order.UserID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.HasCustomArt {
		t.Fatal("expected custom art flag")
	}
	if len(got.Timeline) != len(enums.CustomizationFlow) {
		t.Fatalf("expected customization flow, got %d steps", len(got.Timeline))
	}
}

func TestGetTrackingStaffBypassesOwnership(t *testing.T) {
	t.Parallel()

	order := customArtOrder(enums.OrderStatusPaid)
	svc := newTestFulfillmentService(t, &stubOrderRepo{order: order})

	if _, err := svc.GetTracking(context.Background(), order.ID, uuid.New(), true); err != nil {
		t.Fatalf("unexpected error for staff read: %v", err)
	}
}

func TestAdvanceStatusHappyPath(t *testing.T) {
	t.Parallel()

	order := customArtOrder(enums.OrderStatusPaid)
	repo := &stubOrderRepo{order: order, moved: true}
	svc := newTestFulfillmentService(t, repo)

	got, err := svc.AdvanceStatus(context.Background(), AdvanceStatusInput{
		OrderID: order.ID,
		To:      enums.OrderStatusAwaitingCustomization,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != enums.OrderStatusAwaitingCustomization {
		t.Fatalf("expected awaiting_customization, got %s", got.Status)
	}
	if repo.updateFrom != enums.OrderStatusPaid {
		t.Fatalf("conditional write must use the observed status, got %s", repo.updateFrom)
	}
}

func TestAdvanceStatusRejectsBackward(t *testing.T) {
	t.Parallel()

	order := customArtOrder(enums.OrderStatusProcessing)
	svc := newTestFulfillmentService(t, &stubOrderRepo{order: order, moved: true})

	_, err := svc.AdvanceStatus(context.Background(), AdvanceStatusInput{
		OrderID: order.ID,
		To:      enums.OrderStatusPaid,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAdvanceStatusRejectsArtStateForSimpleOrder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	order := &models.Order{
		ID:     uuid.New(),
		UserID: &userID,
		Status: enums.OrderStatusPaid,
		Items:  []models.OrderItem{{ID: uuid.New(), Quantity: 1}},
	}
	svc := newTestFulfillmentService(t, &stubOrderRepo{order: order, moved: true})

	_, err := svc.AdvanceStatus(context.Background(), AdvanceStatusInput{
		OrderID: order.ID,
		To:      enums.OrderStatusAwaitingCustomization,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAdvanceStatusCancelFromAnyNonTerminal(t *testing.T) {
	t.Parallel()

	order := customArtOrder(enums.OrderStatusReadyToShip)
	svc := newTestFulfillmentService(t, &stubOrderRepo{order: order, moved: true})

	got, err := svc.AdvanceStatus(context.Background(), AdvanceStatusInput{
		OrderID: order.ID,
		To:      enums.OrderStatusCancelled,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != enums.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
}

func TestAdvanceStatusConcurrentChange(t *testing.T) {
	t.Parallel()

	order := customArtOrder(enums.OrderStatusPaid)
	svc := newTestFulfillmentService(t, &stubOrderRepo{order: order, moved: false})

	_, err := svc.AdvanceStatus(context.Background(), AdvanceStatusInput{
		OrderID: order.ID,
		To:      enums.OrderStatusAwaitingCustomization,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if typed.Message() != "order status changed concurrently" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestAdvanceStatusStoresTrackingCode(t *testing.T) {
	t.Parallel()

	order := customArtOrder(enums.OrderStatusReadyToShip)
	repo := &stubOrderRepo{order: order, moved: true}
	svc := newTestFulfillmentService(t, repo)

	code := "BR987654321"
	got, err := svc.AdvanceStatus(context.Background(), AdvanceStatusInput{
		OrderID:      order.ID,
		To:           enums.OrderStatusShipped,
		TrackingCode: &code,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.tracking != code {
		t.Fatalf("expected tracking code persisted, got %q", repo.tracking)
	}
	if got.NextAction == nil || got.NextAction.Kind != ActionTrackShipment {
		t.Fatalf("expected track_shipment affordance, got %+v", got.NextAction)
	}
}
