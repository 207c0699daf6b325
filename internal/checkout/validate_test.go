package checkout

import "testing"

func TestValidateName(t *testing.T) {
	valid := []string{"Jo", "Jordan Lee", "Élise Moreau"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Fatalf("expected %q to be valid: %v", name, err)
		}
	}

	invalid := []string{"", "J", "Jordan3", "Lee!", "  "}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("jordan@example.com"); err != nil {
		t.Fatalf("expected valid email: %v", err)
	}

	for _, email := range []string{"", "jordan", "jordan@", "jordan@example", "jo rdan@example.com"} {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("expected %q to be rejected", email)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+15551234567", "5551234567", "+1 (555) 123-4567"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Fatalf("expected %q to be valid: %v", phone, err)
		}
	}

	invalid := []string{"", "555123", "+1555abc4567", "555.123.4567"}
	for _, phone := range invalid {
		if err := ValidatePhone(phone); err == nil {
			t.Fatalf("expected %q to be rejected", phone)
		}
	}
}

func TestValidOTPFormat(t *testing.T) {
	if !ValidOTPFormat("123456") {
		t.Fatal("expected 123456 to be well-formed")
	}
	for _, code := range []string{"", "12345", "1234567", "12345a", "12 456"} {
		if ValidOTPFormat(code) {
			t.Fatalf("expected %q to be malformed", code)
		}
	}
}
