// Package accounts decides login-vs-registration for a checkout phone number
// and owns the account identity store.
package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/Sahil6458/MapleEats/internal/models"
)

var ErrNotFound = errors.New("account not found")

// Store is the keyed CRUD the resolver needs from the account collection.
type Store interface {
	FindByPhone(ctx context.Context, phone string) (*models.Account, error)
	Insert(ctx context.Context, account models.Account) (*models.Account, error)
	UpdateProfile(ctx context.Context, phone, name, email string) (*models.Account, error)
}

// OTPSender dispatches a verification code to a phone number.
type OTPSender interface {
	Send(ctx context.Context, phone string) error
}

// Resolution reports what the checkout flow should do with the entered phone.
type Resolution struct {
	RequiresOTP  bool `json:"requiresOTP"`
	IsNewAccount bool `json:"isNewAccount"`
}

type Resolver struct {
	store Store
	otp   OTPSender
}

func NewResolver(store Store, otp OTPSender) *Resolver {
	return &Resolver{store: store, otp: otp}
}

// Resolve looks up the phone and dispatches an OTP either way: an existing
// account is a login attempt, an unknown phone a registration attempt. No
// account row is written here; a new identity materializes only after
// verification proves phone ownership. When OTP dispatch fails, the partial
// resolution is still returned alongside the error so the caller can enter
// fallback mode knowing whether this is a new account.
func (r *Resolver) Resolve(ctx context.Context, phone string) (Resolution, error) {
	normalized := normalizePhone(phone)

	_, err := r.store.FindByPhone(ctx, normalized)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Resolution{}, err
	}

	resolution := Resolution{
		RequiresOTP:  true,
		IsNewAccount: errors.Is(err, ErrNotFound),
	}

	if err := r.otp.Send(ctx, normalized); err != nil {
		return resolution, err
	}
	return resolution, nil
}

// CompleteVerification materializes the identity after a successful OTP
// check: inserts a new account for an unknown phone, or refreshes name/email
// on an existing one when newer values were supplied.
func (r *Resolver) CompleteVerification(ctx context.Context, phone, name, email string) (*models.Account, error) {
	normalized := normalizePhone(phone)

	existing, err := r.store.FindByPhone(ctx, normalized)
	if errors.Is(err, ErrNotFound) {
		return r.store.Insert(ctx, models.Account{
			Phone:     normalized,
			Name:      strings.TrimSpace(name),
			Email:     strings.ToLower(strings.TrimSpace(email)),
			Addresses: []models.DeliveryAddress{},
		})
	}
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if (name != "" && name != existing.Name) || (email != "" && email != existing.Email) {
		return r.store.UpdateProfile(ctx, normalized, name, email)
	}
	return existing, nil
}

// normalizePhone strips formatting so lookups key on the digits (and leading
// +) alone.
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
