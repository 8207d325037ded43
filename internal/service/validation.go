package service

import (
	"regexp"
	"strings"
)

// Credential validation. Checks are purely syntactic and evaluated in a
// fixed order, returning on the first failure.

// emailPattern is the minimal address-like shape accepted for the email
// field: something@something.something, with no whitespace or extra @.
// Intentionally loose; real deliverability is not this layer's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

// ValidateRegistration checks registration input.
// Order: missing fields, username length, email format, password length.
// Username and email are considered after trimming surrounding whitespace;
// the password is taken as-is.
func ValidateRegistration(username, email, password string) error {
	if err := requireFields(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}

	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		return ErrUsernameTooShort
	}

	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}

	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}

	return nil
}

// ValidateLogin checks login input for missing fields only; everything
// else is the password verification's job.
func ValidateLogin(username, password string) error {
	return requireFields(map[string]string{
		"username": username,
		"password": password,
	})
}

// requireFields fails with a MissingFieldError for the first field that is
// absent or empty after trimming. Fields are checked in a stable order so
// the reported field does not vary between calls.
func requireFields(fields map[string]string) error {
	for _, name := range []string{"username", "email", "password"} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == "" {
			return &MissingFieldError{Field: name}
		}
	}
	return nil
}
