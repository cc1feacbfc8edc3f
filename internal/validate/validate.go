// Package validate checks alert create/update payloads against the field
// rules and reports every violated field, not just the first.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"visaslots/internal/domain"
)

// FieldError describes a single violated field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one entry per violated field.
type ValidationError struct {
	Details []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Field+": "+d.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so errors match the wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Create validates a create payload. The status default is applied by the
// caller, not here.
func Create(req *domain.CreateAlertRequest) error {
	if err := validate.Struct(req); err != nil {
		return asValidationError(err)
	}
	return nil
}

// Update validates a partial update payload. An empty payload (after JSON
// decoding drops unrecognized keys) is rejected before any field checks.
func Update(req *domain.UpdateAlertRequest) error {
	if req.IsEmpty() {
		return &ValidationError{Details: []FieldError{{
			Field:   "general",
			Message: "At least one field must be provided for update",
		}}}
	}
	if err := validate.Struct(req); err != nil {
		return asValidationError(err)
	}
	return nil
}

// asValidationError converts validator errors into a ValidationError with
// one entry per violated field.
func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return &ValidationError{Details: details}
}

// messageFor maps a field violation to its client-facing message.
func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "country":
		if fe.Tag() == "max" {
			return "Country must be at most 100 characters"
		}
		return "Country is required"
	case "city":
		if fe.Tag() == "max" {
			return "City must be at most 100 characters"
		}
		return "City is required"
	case "visaType":
		return "Visa type must be Tourist, Business, or Student"
	case "status":
		return "Status must be Active, Booked, or Expired"
	}
	return fe.Error()
}
