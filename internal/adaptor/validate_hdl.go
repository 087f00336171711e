package adaptor

import (
	"net/http"

	"vet-clinic/internal/dto/request"
	"vet-clinic/internal/dto/response"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/utils"

	"go.uber.org/zap"
)

type ValidationHandler struct {
	service usecase.ValidationService
	log     *zap.Logger
}

func NewValidationHandler(service usecase.ValidationService, log *zap.Logger) *ValidationHandler {
	return &ValidationHandler{
		service: service,
		log:     log,
	}
}

// RUT handles POST /api/validate/rut. An invalid number is a 200 with
// valid=false; only a malformed request is a 400.
func (h *ValidationHandler) RUT(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateRUTRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	utils.ResponseSuccess(w, "RUN checked", h.service.CheckRUT(req.RUT))
}

// Phone handles POST /api/validate/phone
func (h *ValidationHandler) Phone(w http.ResponseWriter, r *http.Request) {
	var req request.ValidatePhoneRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	utils.ResponseSuccess(w, "Phone checked", h.service.CheckPhone(req.Phone))
}

// Date handles POST /api/validate/date
func (h *ValidationHandler) Date(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateDateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	utils.ResponseSuccess(w, "Date checked", h.service.CheckDate(req.Date))
}

// Record handles POST /api/validate/record. Field rules run as validate
// tags, so a rejected record is a 400 naming each field.
func (h *ValidationHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateRecordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	check := response.RecordCheck{RUT: h.service.CheckRUT(req.RUT).Formatted}
	if req.Phone != "" {
		check.Phone = h.service.CheckPhone(req.Phone).Formatted
	}
	if req.BirthDate != "" {
		check.BirthDate = h.service.CheckDate(req.BirthDate).Formatted
	}
	if req.VisitedAt != "" {
		check.VisitedAt = h.service.CheckDate(req.VisitedAt).Formatted
	}

	utils.ResponseSuccess(w, "Record is valid", check)
}
