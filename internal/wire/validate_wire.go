package wire

import (
	"vet-clinic/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireValidation(r chi.Router, validationHandler *adaptor.ValidationHandler) {
	r.Post("/api/validate/rut", validationHandler.RUT)
	r.Post("/api/validate/phone", validationHandler.Phone)
	r.Post("/api/validate/date", validationHandler.Date)
	r.Post("/api/validate/record", validationHandler.Record)
}
