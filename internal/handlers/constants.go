package handlers

const (
	SessionCookieName = "session_id"
	CSRFHeaderName    = "X-CSRF-Token"

	ErrInvalidJSON         = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrInternalServerError = "Internal server error"
)
