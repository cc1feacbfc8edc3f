package validate

import (
	"errors"
	"strings"
	"testing"

	"visaslots/internal/domain"
)

func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	return verr.Details
}

func hasField(details []FieldError, field string) bool {
	for _, d := range details {
		if d.Field == field {
			return true
		}
	}
	return false
}

func TestCreate_Valid(t *testing.T) {
	req := &domain.CreateAlertRequest{
		Country:  "Japan",
		City:     "Tokyo",
		VisaType: domain.VisaTypeTourist,
	}

	if err := Create(req); err != nil {
		t.Errorf("Create() error = %v, want nil", err)
	}

	req.Status = domain.StatusBooked
	if err := Create(req); err != nil {
		t.Errorf("Create() with explicit status error = %v, want nil", err)
	}
}

func TestCreate_OneErrorPerViolatedField(t *testing.T) {
	// Missing country and an out-of-enumeration visa type must both be
	// reported, not just the first violation.
	req := &domain.CreateAlertRequest{
		City:     "Tokyo",
		VisaType: "Diplomatic",
	}

	details := fieldErrors(t, Create(req))

	if len(details) != 2 {
		t.Fatalf("got %d errors, want 2: %+v", len(details), details)
	}
	if !hasField(details, "country") {
		t.Errorf("missing country error: %+v", details)
	}
	if !hasField(details, "visaType") {
		t.Errorf("missing visaType error: %+v", details)
	}
}

func TestCreate_Messages(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.CreateAlertRequest
		field   string
		message string
	}{
		{
			name:    "missing country",
			req:     domain.CreateAlertRequest{City: "Tokyo", VisaType: domain.VisaTypeTourist},
			field:   "country",
			message: "Country is required",
		},
		{
			name: "country too long",
			req: domain.CreateAlertRequest{
				Country:  strings.Repeat("a", 101),
				City:     "Tokyo",
				VisaType: domain.VisaTypeTourist,
			},
			field:   "country",
			message: "Country must be at most 100 characters",
		},
		{
			name:    "missing city",
			req:     domain.CreateAlertRequest{Country: "Japan", VisaType: domain.VisaTypeTourist},
			field:   "city",
			message: "City is required",
		},
		{
			name:    "bad visa type",
			req:     domain.CreateAlertRequest{Country: "Japan", City: "Tokyo", VisaType: "Work"},
			field:   "visaType",
			message: "Visa type must be Tourist, Business, or Student",
		},
		{
			name: "bad status",
			req: domain.CreateAlertRequest{
				Country: "Japan", City: "Tokyo",
				VisaType: domain.VisaTypeTourist, Status: "Pending",
			},
			field:   "status",
			message: "Status must be Active, Booked, or Expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := fieldErrors(t, Create(&tt.req))
			if len(details) != 1 {
				t.Fatalf("got %d errors, want 1: %+v", len(details), details)
			}
			if details[0].Field != tt.field {
				t.Errorf("field = %q, want %q", details[0].Field, tt.field)
			}
			if details[0].Message != tt.message {
				t.Errorf("message = %q, want %q", details[0].Message, tt.message)
			}
		})
	}
}

func TestCreate_MaxLengthBoundary(t *testing.T) {
	req := &domain.CreateAlertRequest{
		Country:  strings.Repeat("a", 100),
		City:     strings.Repeat("b", 100),
		VisaType: domain.VisaTypeStudent,
	}

	if err := Create(req); err != nil {
		t.Errorf("Create() with 100-char fields error = %v, want nil", err)
	}
}

func TestUpdate_EmptyPayload(t *testing.T) {
	details := fieldErrors(t, Update(&domain.UpdateAlertRequest{}))

	if len(details) != 1 {
		t.Fatalf("got %d errors, want 1: %+v", len(details), details)
	}
	if details[0].Field != "general" {
		t.Errorf("field = %q, want general", details[0].Field)
	}
	if details[0].Message != "At least one field must be provided for update" {
		t.Errorf("unexpected message %q", details[0].Message)
	}
}

func TestUpdate_PartialValid(t *testing.T) {
	status := domain.StatusBooked
	if err := Update(&domain.UpdateAlertRequest{Status: &status}); err != nil {
		t.Errorf("Update() error = %v, want nil", err)
	}

	country := "France"
	visaType := domain.VisaTypeBusiness
	req := &domain.UpdateAlertRequest{Country: &country, VisaType: &visaType}
	if err := Update(req); err != nil {
		t.Errorf("Update() error = %v, want nil", err)
	}
}

func TestUpdate_PresentFieldsStillChecked(t *testing.T) {
	empty := ""
	badStatus := domain.Status("Cancelled")
	req := &domain.UpdateAlertRequest{Country: &empty, Status: &badStatus}

	details := fieldErrors(t, Update(req))

	if len(details) != 2 {
		t.Fatalf("got %d errors, want 2: %+v", len(details), details)
	}
	if !hasField(details, "country") || !hasField(details, "status") {
		t.Errorf("missing expected fields: %+v", details)
	}
}

func TestUpdate_TooLong(t *testing.T) {
	long := strings.Repeat("x", 101)
	req := &domain.UpdateAlertRequest{City: &long}

	details := fieldErrors(t, Update(req))

	if len(details) != 1 || details[0].Field != "city" {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details[0].Message != "City must be at most 100 characters" {
		t.Errorf("message = %q", details[0].Message)
	}
}
