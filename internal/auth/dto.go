package auth

import (
	"regexp"
	"strings"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterDTO struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

var (
	emailPattern          = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	atLeastOneDigit       = regexp.MustCompile(`\d`)
	atLeastOneUppercase   = regexp.MustCompile(`[A-Z]`)
	atLeastOneLowercase   = regexp.MustCompile(`[a-z]`)
	atLeastOneSpecialChar = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ValidationError{Msg: "Email address is required"}
	}
	if !emailPattern.MatchString(email) {
		return ValidationError{Msg: "Enter a valid email address"}
	}
	return nil
}

// validatePasswordStrength enforces the registration password policy: a
// digit, an uppercase letter, a lowercase letter, a special character, and at
// least eight characters.
func validatePasswordStrength(password string) error {
	switch {
	case !atLeastOneDigit.MatchString(password):
		return ValidationError{Msg: "Password must contain a number"}
	case !atLeastOneUppercase.MatchString(password):
		return ValidationError{Msg: "Password must contain an uppercase letter"}
	case !atLeastOneLowercase.MatchString(password):
		return ValidationError{Msg: "Password must contain a lowercase letter"}
	case !atLeastOneSpecialChar.MatchString(password):
		return ValidationError{Msg: "Password must contain a special character"}
	case len(password) < 8:
		return ValidationError{Msg: "Password must be at least 8 characters"}
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if err := validateEmail(d.Email); err != nil {
		return err
	}
	if d.Password == "" {
		return ValidationError{Msg: "Password is required"}
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	if err := validateEmail(d.Email); err != nil {
		return err
	}
	if err := validatePasswordStrength(d.Password); err != nil {
		return err
	}
	if err := validatePasswordStrength(d.PasswordConfirm); err != nil {
		return err
	}
	return nil
}
