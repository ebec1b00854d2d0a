package handlers

import (
	"errors"
	"net/http"

	"flicksclub/internal/security"
	"flicksclub/internal/service"
	"flicksclub/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	emailService         *service.EmailService
	csrf                 *security.CSRFGenerator
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *service.AuthService,
	emailService *service.EmailService,
	csrf *security.CSRFGenerator,
	oauthProviders map[string]OAuthProvider,
	oauthRedirectBaseURL string,
) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		csrf:                 csrf,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

// Register handles new account creation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "Email already registered", "", nil)
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Registration failed", err)
		}
		return
	}

	// Log the new account straight in
	session, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Post-registration login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondWithJSON(w, http.StatusCreated, newUserView(user))
}

// Login handles credential login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Login failed", err)
		}
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondWithJSON(w, http.StatusOK, newUserView(user))
}

// Logout invalidates the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the authenticated user along with a CSRF token for
// mutating requests.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}
	token, err := h.csrf.GenerateToken(cookie.Value)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "CSRF token generation failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":      newUserView(user),
		"csrfToken": token,
	})
}

// RequestPasswordReset starts the password reset flow. It always
// responds 200 so callers cannot probe which emails have accounts.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Password reset request failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "If that email has an account, a reset link is on its way",
	})
}

// ConfirmPasswordReset sets a new password from a reset token
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password updated, please log in"})
}
