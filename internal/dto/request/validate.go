package request

type ValidateRUTRequest struct {
	RUT string `json:"rut" validate:"required"`
}

type ValidatePhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type ValidateDateRequest struct {
	Date string `json:"date" validate:"required"`
}

// ValidateRecordRequest pre-checks the owner and patient fields of a clinic
// record in one call. Dates are YYYY-MM-DD or RFC 3339.
type ValidateRecordRequest struct {
	RUT       string `json:"rut" validate:"required,rut"`
	Phone     string `json:"phone" validate:"omitempty,cl_phone"`
	BirthDate string `json:"birth_date" validate:"omitempty,not_future_date"`
	VisitedAt string `json:"visited_at" validate:"omitempty,not_future"`
}
