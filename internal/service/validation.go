package service

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLen = 12
	maxPasswordLen = 72 // bcrypt ignores anything past 72 bytes
	maxEmailLen    = 255
	maxNameLen     = 100
	maxPhoneLen    = 20
)

const passwordPolicy = "password must be 12 to 72 characters and include an uppercase letter, a lowercase letter, a digit and a special character"

// normalizeEmail lowercases and trims an address.
func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// validateEmail expects an already normalized address.
func validateEmail(email string) error {
	if email == "" {
		return validationError("email is required")
	}
	if len(email) > maxEmailLen {
		return validationError("email must be at most %d characters", maxEmailLen)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return validationError("email must be a valid address")
	}
	return nil
}

// validatePassword never includes the password in its message.
func validatePassword(pw string) error {
	if len(pw) < minPasswordLen || len(pw) > maxPasswordLen {
		return validationError(passwordPolicy)
	}
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSpace(r):
		case !unicode.IsLetter(r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return validationError(passwordPolicy)
	}
	return nil
}

// validateName expects a trimmed name.
func validateName(field, name string) error {
	if name == "" {
		return validationError("%s is required", field)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return validationError("%s must be at most %d characters", field, maxNameLen)
	}
	for _, r := range name {
		if r == ' ' || r == '\'' || r == '-' {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= 0xC0 && r <= 0xFF && r != 0xD7 && r != 0xF7) {
			continue
		}
		return validationError("%s may only contain letters, spaces, apostrophes and hyphens", field)
	}
	return nil
}

func validatePhone(phone *string) error {
	if phone != nil && utf8.RuneCountInString(*phone) > maxPhoneLen {
		return validationError("phone must be at most %d characters", maxPhoneLen)
	}
	return nil
}
