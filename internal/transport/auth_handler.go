package transport

import (
	"net/http"
	"time"

	"aaamo-store/internal/middleware"
	"aaamo-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const MsgLoggedIn = "تم تسجيل الدخول بنجاح."

// LoginRequest represents the admin login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AuthHandler handles admin sign-in
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Post("/login", h.Login)
	})
}

// Login handles admin authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	token, expiresAt, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, h.logger, err, MsgIncompleteLogin)
		return
	}

	h.logger.Info("Admin logged in", zap.String("email", req.Email))
	middleware.RespondWithSuccess(w, http.StatusOK, MsgLoggedIn, LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}
