package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yourhostel/stat-syncer/internal/service"
	"github.com/yourhostel/stat-syncer/internal/transport/http/response"
	"github.com/yourhostel/stat-syncer/pkg/apierror"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest represents the request body for signup and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupResponse represents the response for a successful signup.
type SignupResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // Seconds until expiry
}

// Signup handles POST /api/auth/signup
// Creates a new user with a hashed password.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, SignupResponse{
		Username: user.Username,
		Roles:    user.Roles,
	})
}

// Login handles POST /api/auth/login
// Verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, LoginResponse{
		Token:     token,
		ExpiresIn: int(h.authService.TokenTTL().Seconds()),
	})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return req, false
	}
	defer r.Body.Close()

	if req.Username == "" {
		response.Error(w, apierror.BadRequest("username is required"))
		return req, false
	}
	if req.Password == "" {
		response.Error(w, apierror.BadRequest("password is required"))
		return req, false
	}
	return req, true
}
