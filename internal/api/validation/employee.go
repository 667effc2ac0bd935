package validation

import (
	"strings"
	"unicode/utf8"
)

// EmployeeForm mirrors the fields submitted to /add_employee.
type EmployeeForm struct {
	Name string `json:"name"`
}

// ValidateEmployeeForm validates the fields of an add-employee submission.
func ValidateEmployeeForm(f EmployeeForm) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if n := utf8.RuneCountInString(name); n < 2 || n > 150 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be between 2 and 150 characters"})
	}

	return errs
}
