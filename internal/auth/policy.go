package auth

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"

	apperrors "dailyquest/internal/errors"
)

const (
	// UsernameMinLength and UsernameMaxLength bound usernames.
	UsernameMinLength = 5
	UsernameMaxLength = 50
	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 15

	// passwordSymbols is the fixed punctuation set counted as symbols.
	passwordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>?/\\|`~"

	// NameMaxLength and PhoneMaxLength bound optional profile fields.
	NameMaxLength  = 100
	PhoneMaxLength = 20
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateUsername checks length and charset, naming the violated rule.
func ValidateUsername(username string) error {
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return apperrors.NewValidationError("username must be between 5 and 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return apperrors.NewValidationError("username may only contain letters, digits, underscores and hyphens")
	}
	return nil
}

// ValidatePassword enforces the password strength policy. The returned error
// names every missing requirement so clients can show actionable messages.
func ValidatePassword(password string) error {
	var missing []string
	if len(password) < PasswordMinLength {
		missing = append(missing, "at least 15 characters")
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !lower {
		missing = append(missing, "a lowercase letter")
	}
	if !upper {
		missing = append(missing, "an uppercase letter")
	}
	if !digit {
		missing = append(missing, "a digit")
	}
	if !symbol {
		missing = append(missing, "a symbol")
	}

	if len(missing) > 0 {
		return apperrors.NewValidationError("password must contain " + strings.Join(missing, ", "))
	}
	return nil
}

// ValidateName bounds an optional profile name field.
func ValidateName(field, value string) error {
	if len(value) > NameMaxLength {
		return apperrors.NewValidationError(field + " must be at most 100 characters")
	}
	return nil
}

// ValidatePhone checks a loose international-number shape.
func ValidatePhone(phone string) error {
	if len(phone) > PhoneMaxLength {
		return apperrors.NewValidationError("phone must be at most 20 characters")
	}
	parsed, err := phonenumbers.Parse(phone, "")
	if err != nil || !phonenumbers.IsPossibleNumber(parsed) {
		return apperrors.NewValidationError("phone must be a possible international number, e.g. +15551234567")
	}
	return nil
}
