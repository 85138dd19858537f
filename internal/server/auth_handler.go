package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest is the payload for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the payload for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

// LoginResponse carries the signed token and user on successful login.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resent, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if resent {
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": "Account already exists but is not verified. Verification email re-sent.",
		})
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]string{
		"message": "Account created! Please verify your email, then login.",
	})
}

// Verify handles email verification link requests.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Verify(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Email verified. You can now login.",
		"email":   user.Email,
	})
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Login(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	jsonResponse(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: UserResponse{
			ID:       user.ID.String(),
			Name:     user.Name,
			Email:    user.Email,
			Provider: user.Provider,
		},
	})
}

// ForgotPassword handles password reset requests. The response never
// reveals whether the address is registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := h.userService.ForgotPassword(r.Context(), req.Email); err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message": "If the email exists, a reset link has been sent.",
	})
}

// ResetPassword handles password reset completion.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := h.userService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Password updated successfully.",
	})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
