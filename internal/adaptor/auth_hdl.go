package adaptor

import (
	"net/http"

	"vet-clinic/internal/dto/request"
	"vet-clinic/internal/dto/response"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/utils"

	"go.uber.org/zap"
)

// Login failures share one message whether the account is unknown,
// inactive or the password is wrong.
const msgInvalidCredentials = "Invalid username or password"

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.RegisterUser(r.Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", response.UserToResponse(user))
}

// Login handles POST /api/auth/login. It verifies credentials only; no
// session or token is issued here.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.ValidateCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}
	if user == nil {
		utils.ResponseUnauthorized(w, msgInvalidCredentials)
		return
	}

	utils.ResponseSuccess(w, "Login successful", response.UserToResponse(user))
}

// ChangePassword handles PUT /api/users/{id}/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed successfully", nil)
}
