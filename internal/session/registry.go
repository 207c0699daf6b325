// Package session keys each shopper's cart and checkout flow by an opaque
// session id. Sessions live in memory only; nothing here is persisted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sahil6458/MapleEats/internal/accounts"
	"github.com/Sahil6458/MapleEats/internal/cart"
	"github.com/Sahil6458/MapleEats/internal/checkout"
)

// Session bundles the per-shopper state: one cart ledger and one checkout
// flow. Both are created together and discarded together.
type Session struct {
	ID        string
	Cart      *cart.Ledger
	Checkout  *checkout.Flow
	CreatedAt time.Time

	lastSeen time.Time
}

// Registry hands out sessions and expires idle ones. Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	resolver *accounts.Resolver
	otp      checkout.OTPService
	idleTTL  time.Duration
}

const defaultIdleTTL = 2 * time.Hour

func NewRegistry(resolver *accounts.Resolver, otp checkout.OTPService) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		resolver: resolver,
		otp:      otp,
		idleTTL:  defaultIdleTTL,
	}
}

// Start creates a fresh session with an empty cart and a checkout flow at the
// address step.
func (r *Registry) Start() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Cart:      cart.NewLedger(),
		Checkout:  checkout.NewFlow(r.resolver, r.otp),
		CreatedAt: now,
		lastSeen:  now,
	}

	r.mu.Lock()
	r.pruneLocked(now)
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s
}

// Get returns the session for an id, refreshing its idle timer. Unknown or
// expired ids return nil.
func (r *Registry) Get(id string) *Session {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil
	}
	if now.Sub(s.lastSeen) > r.idleTTL {
		delete(r.sessions, id)
		return nil
	}
	s.lastSeen = now
	return s
}

// End discards a session. Unknown ids are a no-op.
func (r *Registry) End(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) pruneLocked(now time.Time) {
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idleTTL {
			delete(r.sessions, id)
		}
	}
}
