package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taglinkbr/taglink-backend/pkg/config"
	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"gorm.io/gorm"
)

// Tracking is the full fulfillment view for one order.
type Tracking struct {
	OrderID      uuid.UUID          `json:"order_id"`
	Status       enums.OrderStatus  `json:"status"`
	HasCustomArt bool               `json:"has_custom_art"`
	StepIndex    int                `json:"step_index"`
	Timeline     []TimelineStep     `json:"timeline"`
	NextAction   *Action            `json:"next_action,omitempty"`
	TrackingCode *string            `json:"tracking_code,omitempty"`
	TotalAmount  float64            `json:"total_amount"`
	Items        []models.OrderItem `json:"items"`
}

// AdvanceStatusInput carries a staff status move.
type AdvanceStatusInput struct {
	OrderID      uuid.UUID
	To           enums.OrderStatus
	TrackingCode *string
}

// Service exposes the fulfillment read surface and the staff transition.
type Service interface {
	GetTracking(ctx context.Context, orderID, userID uuid.UUID, isStaff bool) (*Tracking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Tracking, error)
	AdvanceStatus(ctx context.Context, input AdvanceStatusInput) (*Tracking, error)
}

type service struct {
	repo Repository
	cfg  config.FulfillmentConfig
}

// NewService builds a fulfillment service backed by the provided repository.
func NewService(repo Repository, cfg config.FulfillmentConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fulfillment repository required")
	}
	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) buildTracking(order *models.Order) Tracking {
	hasArt := order.HasCustomArt()
	flow := enums.FlowFor(hasArt)
	return Tracking{
		OrderID:      order.ID,
		Status:       order.Status,
		HasCustomArt: hasArt,
		StepIndex:    enums.StepIndex(flow, order.Status),
		Timeline:     Timeline(flow, order.Status),
		NextAction:   NextAction(s.cfg, order),
		TrackingCode: order.TrackingCode,
		TotalAmount:  order.TotalAmount,
		Items:        order.Items,
	}
}

func (s *service) GetTracking(ctx context.Context, orderID, userID uuid.UUID, isStaff bool) (*Tracking, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isStaff {
		if order.UserID == nil || *order.UserID != userID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another account")
		}
	}

	tracking := s.buildTracking(order)
	return &tracking, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]Tracking, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]Tracking, 0, len(orders))
	for i := range orders {
		out = append(out, s.buildTracking(&orders[i]))
	}
	return out, nil
}

// AdvanceStatus applies a staff transition, enforcing the forward-only
// transition map and the order's flow variant. The write is conditional on
// the status observed at read time, so concurrent staff updates cannot
// interleave silently.
func (s *service) AdvanceStatus(ctx context.Context, input AdvanceStatusInput) (*Tracking, error) {
	if !input.To.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.loadOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if !enums.CanTransition(order.Status, input.To) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, input.To))
	}

	flow := enums.FlowFor(order.HasCustomArt())
	if input.To != enums.OrderStatusCancelled && !statusInFlow(flow, input.To) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("status %s is not part of this order's flow", input.To))
	}

	if input.TrackingCode != nil && *input.TrackingCode != "" {
		if err := s.repo.SetTrackingCode(ctx, order.ID, *input.TrackingCode); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set tracking code")
		}
		order.TrackingCode = input.TrackingCode
	}

	moved, err := s.repo.UpdateStatus(ctx, order.ID, order.Status, input.To)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !moved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
	}

	order.Status = input.To
	tracking := s.buildTracking(order)
	return &tracking, nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func statusInFlow(flow []enums.OrderStatus, status enums.OrderStatus) bool {
	for _, candidate := range flow {
		if candidate == status {
			return true
		}
	}
	return false
}
