package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"vet-clinic/internal/data/entity"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/utils"
	"vet-clinic/pkg/validation"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Validation *ValidationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Validation: NewValidationHandler(service.Validation, log),
	}
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// userIDParam parses the {id} route parameter, writing 400 when it is not
// a UUID.
func userIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps service errors to responses. Infrastructure
// failures are logged and answered with a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var fieldErrs validation.Errors

	switch {
	case errors.As(err, &fieldErrs):
		log.Warn(operation+" validation failed", zap.String("errors", utils.FormatValidationErrors(fieldErrs)))
		utils.ResponseBadRequest(w, "Validation failed", fieldErrs)

	case errors.Is(err, entity.ErrInvalidRole):
		log.Warn(operation+" failed - invalid role")
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"role": err.Error()})

	case errors.Is(err, entity.ErrUserNotFound):
		log.Warn(operation+" failed - not found")
		utils.ResponseNotFound(w, entity.ErrUserNotFound.Error())

	case errors.Is(err, entity.ErrUsernameTaken):
		log.Warn(operation+" failed - username taken")
		utils.ResponseConflict(w, entity.ErrUsernameTaken.Error())

	case errors.Is(err, entity.ErrEmailTaken):
		log.Warn(operation+" failed - email taken")
		utils.ResponseConflict(w, entity.ErrEmailTaken.Error())

	case errors.Is(err, entity.ErrWrongPassword):
		log.Warn(operation+" failed - wrong password")
		utils.ResponseUnauthorized(w, entity.ErrWrongPassword.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
