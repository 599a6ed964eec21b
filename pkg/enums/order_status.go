package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order from checkout to delivery.
type OrderStatus string

const (
	OrderStatusPending               OrderStatus = "pending"
	OrderStatusPaid                  OrderStatus = "paid"
	OrderStatusAwaitingCustomization OrderStatus = "awaiting_customization"
	OrderStatusArtFinalized          OrderStatus = "art_finalized"
	OrderStatusProcessing            OrderStatus = "processing"
	OrderStatusReadyToShip           OrderStatus = "ready_to_ship"
	OrderStatusShipped               OrderStatus = "shipped"
	OrderStatusDelivered             OrderStatus = "delivered"
	OrderStatusCancelled             OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusAwaitingCustomization,
	OrderStatusArtFinalized,
	OrderStatusProcessing,
	OrderStatusReadyToShip,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// SimpleFlow is the status progression for orders without custom-art items.
var SimpleFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusReadyToShip,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// CustomizationFlow inserts the art sub-states between paid and processing.
var CustomizationFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusAwaitingCustomization,
	OrderStatusArtFinalized,
	OrderStatusProcessing,
	OrderStatusReadyToShip,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// FlowFor returns the ordered status list applicable to an order.
func FlowFor(hasCustomArt bool) []OrderStatus {
	if hasCustomArt {
		return CustomizationFlow
	}
	return SimpleFlow
}

// StepIndex locates the status within the flow. Unrecognized statuses map to
// step 0, keeping the function total for stale or unknown values.
func StepIndex(flow []OrderStatus, status OrderStatus) int {
	for i, candidate := range flow {
		if candidate == status {
			return i
		}
	}
	return 0
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions can leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

var validNextOrderStatus = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:               {OrderStatusPaid: true},
	OrderStatusPaid:                  {OrderStatusAwaitingCustomization: true, OrderStatusProcessing: true},
	OrderStatusAwaitingCustomization: {OrderStatusArtFinalized: true},
	OrderStatusArtFinalized:          {OrderStatusProcessing: true},
	OrderStatusProcessing:            {OrderStatusReadyToShip: true},
	OrderStatusReadyToShip:           {OrderStatusShipped: true},
	OrderStatusShipped:               {OrderStatusDelivered: true},
	OrderStatusDelivered:             {},
	OrderStatusCancelled:             {},
}

// CanTransition reports whether the forward move is allowed. Cancellation is
// absorbing and reachable from any non-terminal status.
func CanTransition(from, to OrderStatus) bool {
	if to == OrderStatusCancelled {
		return !from.IsTerminal()
	}
	return validNextOrderStatus[from][to]
}
