package domain

// CreateAlertRequest represents the input for creating a new alert.
// Status is optional and defaults to Active in the service layer.
type CreateAlertRequest struct {
	Country  string   `json:"country" validate:"required,max=100"`
	City     string   `json:"city" validate:"required,max=100"`
	VisaType VisaType `json:"visaType" validate:"required,oneof=Tourist Business Student"`
	Status   Status   `json:"status" validate:"omitempty,oneof=Active Booked Expired"`
}

// ToAlert converts the request to an Alert entity. ID and CreatedAt are
// assigned by the store.
func (r *CreateAlertRequest) ToAlert() *Alert {
	status := r.Status
	if status == "" {
		status = StatusActive
	}
	return &Alert{
		Country:  r.Country,
		City:     r.City,
		VisaType: r.VisaType,
		Status:   status,
	}
}

// UpdateAlertRequest represents a partial update. Nil fields are left
// unchanged; at least one field must be present.
type UpdateAlertRequest struct {
	Country  *string   `json:"country" validate:"omitnil,min=1,max=100"`
	City     *string   `json:"city" validate:"omitnil,min=1,max=100"`
	VisaType *VisaType `json:"visaType" validate:"omitnil,oneof=Tourist Business Student"`
	Status   *Status   `json:"status" validate:"omitnil,oneof=Active Booked Expired"`
}

// IsEmpty returns true when no field is present in the request.
func (r *UpdateAlertRequest) IsEmpty() bool {
	return r.Country == nil && r.City == nil && r.VisaType == nil && r.Status == nil
}

// ApplyTo copies the present fields onto an existing alert.
func (r *UpdateAlertRequest) ApplyTo(a *Alert) {
	if r.Country != nil {
		a.Country = *r.Country
	}
	if r.City != nil {
		a.City = *r.City
	}
	if r.VisaType != nil {
		a.VisaType = *r.VisaType
	}
	if r.Status != nil {
		a.Status = *r.Status
	}
}
