package orders

import (
	"testing"

	"github.com/Sahil6458/MapleEats/internal/models"
)

func TestCanTransitionSingleStepForward(t *testing.T) {
	steps := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.StatusPending, models.StatusConfirmed},
		{models.StatusConfirmed, models.StatusPreparing},
		{models.StatusPreparing, models.StatusReady},
		{models.StatusReady, models.StatusOutForDelivery},
		{models.StatusOutForDelivery, models.StatusDelivered},
	}
	for _, step := range steps {
		if !CanTransition(step.from, step.to) {
			t.Fatalf("expected %s -> %s to be allowed", step.from, step.to)
		}
	}
}

func TestCanTransitionRejectsSkipsAndReversals(t *testing.T) {
	if CanTransition(models.StatusPending, models.StatusPreparing) {
		t.Fatal("skipping confirmed must be rejected")
	}
	if CanTransition(models.StatusPending, models.StatusDelivered) {
		t.Fatal("jumping straight to delivered must be rejected")
	}
	if CanTransition(models.StatusPreparing, models.StatusConfirmed) {
		t.Fatal("moving backwards must be rejected")
	}
	if CanTransition(models.StatusConfirmed, models.StatusConfirmed) {
		t.Fatal("self transition must be rejected")
	}
}

func TestCancellationAllowedFromAnyNonTerminalStatus(t *testing.T) {
	for _, status := range statusChain[:len(statusChain)-1] {
		if !CanTransition(status, models.StatusCancelled) {
			t.Fatalf("expected %s -> cancelled to be allowed", status)
		}
	}
}

func TestTerminalStatusesAreFrozen(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		if !IsTerminal(terminal) {
			t.Fatalf("expected %s to be terminal", terminal)
		}
		if CanTransition(terminal, models.StatusCancelled) {
			t.Fatalf("expected %s to reject cancellation", terminal)
		}
		if CanTransition(terminal, models.StatusConfirmed) {
			t.Fatalf("expected %s to reject further transitions", terminal)
		}
	}
}

func TestTrackingKeyCoversEveryStatus(t *testing.T) {
	expected := map[models.OrderStatus]string{
		models.StatusPending:        "orderPlaced",
		models.StatusConfirmed:      "confirmed",
		models.StatusPreparing:      "preparing",
		models.StatusReady:          "ready",
		models.StatusOutForDelivery: "outForDelivery",
		models.StatusDelivered:      "delivered",
		models.StatusCancelled:      "cancelled",
	}
	for status, key := range expected {
		if got := TrackingKey(status); got != key {
			t.Fatalf("expected tracking key %q for %s, got %q", key, status, got)
		}
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	for i := 0; i < 10; i++ {
		number := GenerateOrderNumber()
		if len(number) != 11 {
			t.Fatalf("expected 11 character order number, got %q", number)
		}
		if number[:2] != "ME" {
			t.Fatalf("expected ME prefix, got %q", number)
		}
		for _, r := range number[2:] {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits after the prefix, got %q", number)
			}
		}
	}
}
