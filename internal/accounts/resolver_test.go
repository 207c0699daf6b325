package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/Sahil6458/MapleEats/internal/models"
)

type memoryStore struct {
	byPhone map[string]*models.Account
	inserts int
	findErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byPhone: map[string]*models.Account{}}
}

func (s *memoryStore) FindByPhone(_ context.Context, phone string) (*models.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if account, ok := s.byPhone[phone]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *memoryStore) Insert(_ context.Context, account models.Account) (*models.Account, error) {
	s.inserts++
	s.byPhone[account.Phone] = &account
	return &account, nil
}

func (s *memoryStore) UpdateProfile(_ context.Context, phone, name, email string) (*models.Account, error) {
	account, ok := s.byPhone[phone]
	if !ok {
		return nil, ErrNotFound
	}
	if name != "" {
		account.Name = name
	}
	if email != "" {
		account.Email = email
	}
	copied := *account
	return &copied, nil
}

type recordingSender struct {
	sent []string
	err  error
}

func (r *recordingSender) Send(_ context.Context, phone string) error {
	r.sent = append(r.sent, phone)
	return r.err
}

func TestResolveUnknownPhoneIsRegistration(t *testing.T) {
	store := newMemoryStore()
	sender := &recordingSender{}
	resolver := NewResolver(store, sender)

	resolution, err := resolver.Resolve(context.Background(), "+1 (555) 123-4567")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !resolution.RequiresOTP || !resolution.IsNewAccount {
		t.Fatalf("expected registration resolution, got %+v", resolution)
	}
	if store.inserts != 0 {
		t.Fatal("no account row may exist before OTP verification succeeds")
	}
	if len(sender.sent) != 1 || sender.sent[0] != "+15551234567" {
		t.Fatalf("expected normalized OTP dispatch, got %v", sender.sent)
	}
}

func TestResolveKnownPhoneIsLogin(t *testing.T) {
	store := newMemoryStore()
	store.byPhone["+15551234567"] = &models.Account{Phone: "+15551234567", Name: "Jordan"}
	resolver := NewResolver(store, &recordingSender{})

	resolution, err := resolver.Resolve(context.Background(), "+15551234567")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolution.IsNewAccount {
		t.Fatal("expected login, not registration")
	}
	if !resolution.RequiresOTP {
		t.Fatal("login still requires OTP")
	}
}

func TestResolveReturnsResolutionAlongsideDispatchError(t *testing.T) {
	store := newMemoryStore()
	sendErr := errors.New("provider down")
	resolver := NewResolver(store, &recordingSender{err: sendErr})

	resolution, err := resolver.Resolve(context.Background(), "+15559876543")
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected dispatch error, got %v", err)
	}
	if !resolution.IsNewAccount {
		t.Fatal("partial resolution must still say whether the account is new")
	}
}

func TestCompleteVerificationInsertsNewAccount(t *testing.T) {
	store := newMemoryStore()
	resolver := NewResolver(store, &recordingSender{})

	account, err := resolver.CompleteVerification(context.Background(), "+15551234567", "Jordan Lee", "Jordan@Example.com")
	if err != nil {
		t.Fatalf("verification completion failed: %v", err)
	}
	if store.inserts != 1 {
		t.Fatalf("expected one insert, got %d", store.inserts)
	}
	if account.Email != "jordan@example.com" {
		t.Fatalf("expected lowercased email, got %q", account.Email)
	}
}

func TestCompleteVerificationRefreshesExistingProfile(t *testing.T) {
	store := newMemoryStore()
	store.byPhone["+15551234567"] = &models.Account{Phone: "+15551234567", Name: "Old", Email: "old@example.com"}
	resolver := NewResolver(store, &recordingSender{})

	account, err := resolver.CompleteVerification(context.Background(), "+15551234567", "New Name", "")
	if err != nil {
		t.Fatalf("verification completion failed: %v", err)
	}
	if store.inserts != 0 {
		t.Fatal("login must not insert a second row")
	}
	if account.Name != "New Name" {
		t.Fatalf("expected refreshed name, got %q", account.Name)
	}
	if account.Email != "old@example.com" {
		t.Fatalf("expected untouched email, got %q", account.Email)
	}
}
