package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Sahil6458/MapleEats/internal/accounts"
	"github.com/Sahil6458/MapleEats/internal/models"
)

type Step string

const (
	StepAddress Step = "address"
	StepDetails Step = "details"
	StepPhone   Step = "phone"
	StepOTP     Step = "otp"
	StepPayment Step = "payment"
	StepSuccess Step = "success"
)

var stepOrder = []Step{StepAddress, StepDetails, StepPhone, StepOTP, StepPayment, StepSuccess}

var (
	// ErrStepBlocked means a transition's precondition does not hold; the
	// flow treats it as a no-op rather than a crash.
	ErrStepBlocked = errors.New("checkout step blocked")

	// ErrBusy rejects re-entrant triggering while an async action is
	// outstanding (e.g. double-tapping "Send Code").
	ErrBusy = errors.New("checkout action already in progress")
)

const (
	fallbackNotice       = `OTP service is temporarily unavailable. For testing, use "123456" as OTP.`
	invalidTestOTPNotice = `Invalid test OTP. Use "123456" for testing.`
	invalidOTPNotice     = "Invalid OTP. Please try again."
	addressChangeNotice  = "Changing the delivery address during checkout is not supported yet. Please restart checkout to use a different address."
)

// CustomerDetails is the contact block collected at the details step.
type CustomerDetails struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	DeliveryInstructions string `json:"deliveryInstructions"`
}

// State is a read-only snapshot of the flow for the presentation layer.
type State struct {
	CurrentStep   Step                    `json:"currentStep"`
	Address       *models.DeliveryAddress `json:"deliveryAddress,omitempty"`
	Details       CustomerDetails         `json:"customerDetails"`
	OTPSent       bool                    `json:"otpSent"`
	UsingFallback bool                    `json:"usingFallback"`
	Loading       bool                    `json:"loading"`
	Error         string                  `json:"error,omitempty"`
	IsNewAccount  bool                    `json:"isNewAccount"`
	Verified      bool                    `json:"verified"`
}

// Flow drives one checkout attempt through its linear steps. Created fresh
// per attempt, reset on close/cancel/success. Async failures land in the
// error string, never in a panic or an unhandled error the caller must catch.
type Flow struct {
	mu sync.Mutex

	step          Step
	address       *models.DeliveryAddress
	details       CustomerDetails
	otpSent       bool
	usingFallback bool
	loading       bool
	errMsg        string
	isNewAccount  bool
	verified      bool
	account       *models.Account

	// gen invalidates in-flight provider calls: Reset bumps it, and any
	// completion captured under an older value is dropped unapplied.
	gen uint64

	resolver *accounts.Resolver
	otp      OTPService
}

func NewFlow(resolver *accounts.Resolver, otp OTPService) *Flow {
	return &Flow{step: StepAddress, resolver: resolver, otp: otp}
}

func (f *Flow) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		CurrentStep:   f.step,
		Address:       f.address,
		Details:       f.details,
		OTPSent:       f.otpSent,
		UsingFallback: f.usingFallback,
		Loading:       f.loading,
		Error:         f.errMsg,
		IsNewAccount:  f.isNewAccount,
		Verified:      f.verified,
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Account returns the identity resolved at OTP verification, nil before then.
func (f *Flow) Account() *models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.account
}

// SetAddress attaches the delivery address required to leave the address step.
func (f *Flow) SetAddress(address models.DeliveryAddress) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepSuccess {
		return
	}
	f.address = &address
	f.errMsg = ""
}

// RequestAddressChange always fails: mid-checkout address changes are
// unsupported by current product policy.
func (f *Flow) RequestAddressChange() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errMsg = addressChangeNotice
	return errors.New(addressChangeNotice)
}

// UpdateDetails validates and stores the customer contact block.
func (f *Flow) UpdateDetails(details CustomerDetails) error {
	if err := validateDetails(details); err != nil {
		f.mu.Lock()
		f.errMsg = err.Error()
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepSuccess {
		return ErrStepBlocked
	}
	details.Name = strings.TrimSpace(details.Name)
	details.Email = strings.TrimSpace(details.Email)
	details.Phone = strings.TrimSpace(details.Phone)
	f.details = details
	f.errMsg = ""
	return nil
}

func validateDetails(details CustomerDetails) error {
	if err := ValidateName(details.Name); err != nil {
		return err
	}
	if err := ValidateEmail(details.Email); err != nil {
		return err
	}
	return ValidatePhone(details.Phone)
}

// GoToStep moves to an earlier step (back navigation, always allowed before
// success) or to the immediate next step once its precondition holds.
// Skipping ahead is rejected.
func (f *Flow) GoToStep(target Step) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	targetIdx := stepIndex(target)
	currentIdx := stepIndex(f.step)
	if targetIdx < 0 {
		return ErrStepBlocked
	}

	if f.step == StepSuccess {
		return ErrStepBlocked
	}
	if targetIdx == currentIdx {
		return nil
	}
	if targetIdx < currentIdx {
		f.step = target
		f.errMsg = ""
		return nil
	}
	if targetIdx != currentIdx+1 || !f.canEnter(target) {
		return ErrStepBlocked
	}

	f.step = target
	f.errMsg = ""
	return nil
}

// canEnter holds the forward preconditions; called with the lock held.
func (f *Flow) canEnter(target Step) bool {
	switch target {
	case StepDetails:
		return f.address != nil
	case StepPhone:
		return validateDetails(f.details) == nil
	case StepOTP:
		return f.otpSent
	case StepPayment:
		return f.verified
	default:
		// success is reachable only through PlaceOrder.
		return false
	}
}

func stepIndex(step Step) int {
	for i, s := range stepOrder {
		if s == step {
			return i
		}
	}
	return -1
}

// SendOTP resolves the account behind the entered phone (login vs
// registration) and dispatches a verification code. A provider outage flips
// the flow into fallback mode and still advances, surfacing the test-code
// notice instead of blocking checkout.
func (f *Flow) SendOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.step != StepPhone && f.step != StepOTP {
		f.mu.Unlock()
		return ErrStepBlocked
	}
	if err := ValidatePhone(f.details.Phone); err != nil {
		f.errMsg = err.Error()
		f.mu.Unlock()
		return err
	}
	phone := f.details.Phone
	gen := f.gen
	f.loading = true
	f.errMsg = ""
	f.mu.Unlock()

	resolution, err := f.resolver.Resolve(ctx, phone)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		// the flow was reset while the call was in flight
		return ErrStepBlocked
	}
	f.loading = false
	f.isNewAccount = resolution.IsNewAccount

	if err == nil {
		f.otpSent = true
		f.usingFallback = false
		f.step = StepOTP
		return nil
	}

	if errors.Is(err, ErrProviderUnavailable) {
		f.otpSent = true
		f.usingFallback = true
		f.step = StepOTP
		f.errMsg = fallbackNotice
		return nil
	}

	f.errMsg = "Failed to send verification code. Please try again."
	return err
}

// VerifyOTP checks the entered code, then materializes or refreshes the
// account identity. In fallback mode only the fixed test code passes.
func (f *Flow) VerifyOTP(ctx context.Context, code string) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.step != StepOTP || !f.otpSent {
		f.mu.Unlock()
		return ErrStepBlocked
	}
	if !ValidOTPFormat(code) {
		f.errMsg = "Enter the 6-digit verification code."
		f.mu.Unlock()
		return ErrCodeRejected
	}
	phone := f.details.Phone
	name := f.details.Name
	email := f.details.Email
	fallback := f.usingFallback
	gen := f.gen
	f.loading = true
	f.errMsg = ""
	f.mu.Unlock()

	var verifyErr error
	if fallback {
		if code != FallbackOTPCode {
			verifyErr = ErrCodeRejected
		}
	} else {
		verifyErr = f.otp.Verify(ctx, phone, code)
	}

	if verifyErr != nil {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.gen != gen {
			return ErrStepBlocked
		}
		f.loading = false

		if !fallback && errors.Is(verifyErr, ErrProviderUnavailable) {
			// Outage mid-verification: degrade the same way send does.
			f.usingFallback = true
			f.errMsg = fallbackNotice
			return verifyErr
		}
		if fallback {
			f.errMsg = invalidTestOTPNotice
		} else {
			f.errMsg = invalidOTPNotice
		}
		return verifyErr
	}

	// don't materialize an account for a flow that was reset mid-verify
	f.mu.Lock()
	if f.gen != gen {
		f.mu.Unlock()
		return ErrStepBlocked
	}
	f.mu.Unlock()

	account, err := f.resolver.CompleteVerification(ctx, phone, name, email)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		return ErrStepBlocked
	}
	f.loading = false

	if err != nil {
		f.errMsg = "Verification succeeded but the account could not be saved. Please try again."
		return err
	}

	f.account = account
	f.verified = true
	f.step = StepPayment
	return nil
}

// PlaceOrder runs the supplied placement action from the payment step. On
// failure the flow stays on payment with the error surfaced and loading
// cleared; on success it reaches the terminal success step.
func (f *Flow) PlaceOrder(ctx context.Context, place func(context.Context) error) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.step != StepPayment {
		f.mu.Unlock()
		return ErrStepBlocked
	}
	gen := f.gen
	f.loading = true
	f.errMsg = ""
	f.mu.Unlock()

	err := place(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		return ErrStepBlocked
	}
	f.loading = false

	if err != nil {
		f.errMsg = "Failed to place your order. Please try again."
		return err
	}

	f.step = StepSuccess
	return nil
}

// Reset returns the flow to a fresh address step, discarding all buffered
// state. Called on close, cancel, and after success.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gen++
	f.step = StepAddress
	f.address = nil
	f.details = CustomerDetails{}
	f.otpSent = false
	f.usingFallback = false
	f.loading = false
	f.errMsg = ""
	f.isNewAccount = false
	f.verified = false
	f.account = nil
}
