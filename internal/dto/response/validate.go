package response

type ValidationResult struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
	Message   string `json:"message,omitempty"`
}

// RecordCheck echoes an accepted record in canonical form.
type RecordCheck struct {
	RUT       string `json:"rut"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	VisitedAt string `json:"visited_at,omitempty"`
}
