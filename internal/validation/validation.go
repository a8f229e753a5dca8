// Package validation provides input validation and content sanitizing
// shared by the HTTP handlers.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  = validator.New()
	sanitizer = bluemonday.UGCPolicy()

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// Struct validates a request struct against its `validate` tags.
func Struct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("field %q failed validation (%s)", f.Field(), f.Tag())
		}
		return err
	}
	return nil
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidateUsername allows 3-50 word characters.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return errors.New("username must be 3-50 characters of letters, digits or underscore")
	}
	return nil
}

// ValidatePassword enforces the minimum and maximum password length.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}
	return nil
}

// SanitizeContent strips unsafe HTML from user-generated content before it
// is persisted.
func SanitizeContent(input string) string {
	return sanitizer.Sanitize(input)
}
