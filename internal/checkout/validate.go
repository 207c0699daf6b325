package checkout

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName requires at least two characters, letters and spaces only.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && r != ' ' {
			return fmt.Errorf("name may only contain letters and spaces")
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// ValidatePhone accepts digits with an optional leading +, requiring at least
// ten digits once formatting characters are stripped.
func ValidatePhone(phone string) error {
	stripped := strings.TrimSpace(phone)
	stripped = strings.TrimPrefix(stripped, "+")

	digits := 0
	for _, r := range stripped {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// formatting, ignore
		default:
			return fmt.Errorf("phone number may only contain digits")
		}
	}
	if digits < 10 {
		return fmt.Errorf("phone number must have at least 10 digits")
	}
	return nil
}

// ValidOTPFormat reports whether the buffered input is exactly six digits.
func ValidOTPFormat(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
