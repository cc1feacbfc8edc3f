// Package domain contains the core entities and errors for the visa slot tracker.
package domain

import (
	"errors"
	"time"
)

// ErrAlertNotFound is returned when an alert cannot be found.
var ErrAlertNotFound = errors.New("alert not found")

// ErrInvalidAlertID is returned when an alert id is not a positive integer.
var ErrInvalidAlertID = errors.New("invalid alert id")

// VisaType classifies the visa a slot alert is tracking.
type VisaType string

const (
	VisaTypeTourist  VisaType = "Tourist"
	VisaTypeBusiness VisaType = "Business"
	VisaTypeStudent  VisaType = "Student"
)

// IsValid returns true if the visa type is one of the enumerated members.
func (v VisaType) IsValid() bool {
	return v == VisaTypeTourist || v == VisaTypeBusiness || v == VisaTypeStudent
}

// Status represents the current booking state of a slot alert.
type Status string

const (
	// StatusActive indicates the slot is still being watched.
	StatusActive Status = "Active"
	// StatusBooked indicates a slot was booked for this alert.
	StatusBooked Status = "Booked"
	// StatusExpired indicates the alert is no longer relevant.
	StatusExpired Status = "Expired"
)

// IsValid returns true if the status is one of the enumerated members.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusBooked || s == StatusExpired
}

// Alert is a stored record tracking one (country, city, visaType) tuple
// with a mutable booking status.
type Alert struct {
	// ID is the surrogate key assigned by the store on creation. Never reused.
	ID int64 `json:"id"`

	// Country is the country whose consulate slots are being watched.
	Country string `json:"country"`

	// City is the consulate city.
	City string `json:"city"`

	// VisaType is the visa category for the slot.
	VisaType VisaType `json:"visaType"`

	// Status is the current booking state.
	Status Status `json:"status"`

	// CreatedAt is assigned by the store at insertion and is the listing
	// sort key (newest first). Immutable afterwards.
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive returns true if the alert is still being watched.
func (a *Alert) IsActive() bool {
	return a.Status == StatusActive
}

// AlertFilter provides filtering options for querying alerts.
// Country matches as a case-insensitive substring, Status matches exactly.
type AlertFilter struct {
	Country string
	Status  Status
	Limit   int
	Offset  int
}

// Pagination describes one page of a listing result.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
