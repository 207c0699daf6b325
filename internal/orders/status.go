// Package orders persists order snapshots and applies status transitions
// received from the partner side.
package orders

import (
	"github.com/Sahil6458/MapleEats/internal/models"
)

// statusChain is the forward progression; cancelled sits outside it and is
// reachable from any non-terminal status.
var statusChain = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusOutForDelivery,
	models.StatusDelivered,
}

var trackingKeys = map[models.OrderStatus]string{
	models.StatusPending:        "orderPlaced",
	models.StatusConfirmed:      "confirmed",
	models.StatusPreparing:      "preparing",
	models.StatusReady:          "ready",
	models.StatusOutForDelivery: "outForDelivery",
	models.StatusDelivered:      "delivered",
	models.StatusCancelled:      "cancelled",
}

func chainIndex(status models.OrderStatus) int {
	for i, s := range statusChain {
		if s == status {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further transition is allowed.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// CanTransition validates a partner-reported status change: one step forward
// along the chain, or cancellation of any non-terminal order.
func CanTransition(from, to models.OrderStatus) bool {
	if IsTerminal(from) {
		return false
	}
	if to == models.StatusCancelled {
		return true
	}

	fromIdx := chainIndex(from)
	toIdx := chainIndex(to)
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx == fromIdx+1
}

// TrackingKey maps a status to its timestamp key in the order's tracking map.
func TrackingKey(status models.OrderStatus) string {
	return trackingKeys[status]
}
