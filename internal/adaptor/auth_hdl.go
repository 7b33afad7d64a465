package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"travel-agency/internal/dto/request"
	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service      usecase.AuthService
	cookieSecure bool
	log          *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookieSecure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieSecure: cookieSecure,
		log:          log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/_auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Call service
	response, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	h.setCookie(w, utils.CustomerCookie, response.Token, response.ExpiresAt)
	utils.ResponseCreated(w, "Registration successful", response)
}

// Login handles POST /api/_auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	h.setCookie(w, utils.CustomerCookie, response.Token, response.ExpiresAt)
	utils.ResponseSuccess(w, "Login successful", response)
}

// AdminLogin handles POST /api/_auth/adminLogin
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.AdminLogin(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "admin login")
		return
	}

	h.setCookie(w, utils.AdminCookie, response.Token, response.ExpiresAt)
	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/_auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, utils.CustomerCookie)
	h.clearCookie(w, utils.AdminCookie)
	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Me handles GET /api/_auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Current session", utils.GetPrincipal(r.Context()))
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
