package usecase

import (
	"fmt"
	"strings"

	"github.com/opticart/checkout/internal/domain/model"
)

// FieldError describes a single invalid form field. Recoverable by user
// correction; field errors never reach the orchestrator.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all field errors of one submission attempt.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// ValidateDetails checks the mandatory checkout form fields. Returns nil
// when the details are ready for submission.
func ValidateDetails(d model.CustomerDetails) *ValidationError {
	var fields []FieldError

	if strings.TrimSpace(d.FirstName) == "" {
		fields = append(fields, FieldError{Field: "firstName", Message: "first name is required"})
	}
	if strings.TrimSpace(d.LastName) == "" {
		fields = append(fields, FieldError{Field: "lastName", Message: "last name is required"})
	}
	if !allDigits(d.Phone) || len(d.Phone) != 10 {
		fields = append(fields, FieldError{Field: "phone", Message: "phone must be exactly 10 digits"})
	}
	if email := strings.TrimSpace(d.Email); email != "" && !strings.Contains(email, "@") {
		fields = append(fields, FieldError{Field: "email", Message: "email looks invalid"})
	}
	if strings.TrimSpace(d.Address) == "" {
		fields = append(fields, FieldError{Field: "address", Message: "address is required"})
	}
	if strings.TrimSpace(d.City) == "" {
		fields = append(fields, FieldError{Field: "city", Message: "city is required"})
	}
	if strings.TrimSpace(d.State) == "" {
		fields = append(fields, FieldError{Field: "state", Message: "state is required"})
	}
	if !allDigits(d.PostalCode) || len(d.PostalCode) != 6 {
		fields = append(fields, FieldError{Field: "postalCode", Message: "postal code must be exactly 6 digits"})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
