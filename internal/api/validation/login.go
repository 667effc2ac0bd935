package validation

import (
	"strings"
	"unicode/utf8"
)

// LoginForm mirrors the fields submitted to /login.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateLoginForm validates the fields of a login submission.
func ValidateLoginForm(f LoginForm) []FieldError {
	var errs []FieldError

	username := strings.TrimSpace(f.Username)
	if username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	} else if n := utf8.RuneCountInString(username); n < 2 || n > 150 {
		errs = append(errs, FieldError{Field: "username", Message: "username must be between 2 and 150 characters"})
	}

	if f.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}
