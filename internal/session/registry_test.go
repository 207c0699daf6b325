package session

import (
	"testing"
	"time"

	"github.com/Sahil6458/MapleEats/internal/checkout"
)

func newTestRegistry() *Registry {
	return NewRegistry(nil, nil)
}

func TestStartCreatesIsolatedSessions(t *testing.T) {
	registry := newTestRegistry()

	first := registry.Start()
	second := registry.Start()

	if first.ID == second.ID {
		t.Fatal("expected distinct session ids")
	}
	if first.Cart == second.Cart {
		t.Fatal("expected each session to own its cart")
	}
	if first.Checkout.Step() != checkout.StepAddress {
		t.Fatalf("expected fresh checkout at address step, got %s", first.Checkout.Step())
	}
}

func TestGetUnknownSessionReturnsNil(t *testing.T) {
	registry := newTestRegistry()

	if registry.Get("nope") != nil {
		t.Fatal("expected nil for unknown session id")
	}
}

func TestGetReturnsSameSession(t *testing.T) {
	registry := newTestRegistry()
	started := registry.Start()

	if got := registry.Get(started.ID); got != started {
		t.Fatal("expected Get to return the started session")
	}
}

func TestEndDiscardsSession(t *testing.T) {
	registry := newTestRegistry()
	started := registry.Start()

	registry.End(started.ID)
	if registry.Get(started.ID) != nil {
		t.Fatal("expected ended session to be gone")
	}
}

func TestIdleSessionsExpire(t *testing.T) {
	registry := newTestRegistry()
	registry.idleTTL = time.Millisecond

	started := registry.Start()
	time.Sleep(5 * time.Millisecond)

	if registry.Get(started.ID) != nil {
		t.Fatal("expected idle session to expire")
	}
}
