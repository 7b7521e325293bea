package dto

// CreateBatchRequest: payload POST /protocols. Quantity diparse manual
// di controller supaya input non-numerik jadi 400, bukan default 1.
type CreateBatchRequest struct {
	Province  string `json:"province" form:"province" validate:"required"`
	PartnerID uint   `json:"partner_id" form:"partner_id" validate:"required"`
	Quantity  int    `json:"quantity" form:"-" validate:"min=1,max=100"`
}

// UpdateStatusRequest: payload POST /protocols/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required"`
}

// ConfirmUsageRequest: payload scanner POST /api/confirm-usage/:code.
type ConfirmUsageRequest struct {
	Action string `json:"action" form:"action" validate:"required"`
}

// UpdatePatientDataRequest: form data pasien dari scanner.
type UpdatePatientDataRequest struct {
	PatientName        string `json:"patient_name" form:"patient_name" validate:"required"`
	HealthcareFacility string `json:"healthcare_facility" form:"healthcare_facility" validate:"required"`
	Occupation         string `json:"occupation" form:"occupation"`
	MaritalStatus      string `json:"marital_status" form:"marital_status"`
	GPA                string `json:"gpa" form:"gpa"`
	Address            string `json:"address" form:"address"`
	Phone              string `json:"phone" form:"phone"`
	Age                string `json:"age" form:"age"`
	Notes              string `json:"notes" form:"notes"`
}

// ProtocolCreatedEvent: payload broadcast protocol_created.
type ProtocolCreatedEvent struct {
	Codes    []string `json:"codes"`
	Quantity int      `json:"quantity"`
	Partner  string   `json:"partner"`
	Province string   `json:"province"`
}

// StatusUpdatedEvent: payload broadcast status_updated.
type StatusUpdatedEvent struct {
	ID        uint   `json:"id"`
	Code      string `json:"code"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
