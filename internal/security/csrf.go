package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CSRFGenerator derives CSRF tokens from the session ID with
// HMAC-SHA256. The token is deterministic per session, so validation
// needs no server-side token store.
type CSRFGenerator struct {
	secret []byte
}

// NewCSRFGenerator creates a CSRF generator keyed with secret
func NewCSRFGenerator(secret string) *CSRFGenerator {
	return &CSRFGenerator{secret: []byte(secret)}
}

// GenerateToken returns the CSRF token for a session
func (g *CSRFGenerator) GenerateToken(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session ID is required")
	}
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "csrf:%s", sessionID)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// ValidateToken reports whether token belongs to sessionID
func (g *CSRFGenerator) ValidateToken(sessionID, token string) bool {
	if sessionID == "" || token == "" {
		return false
	}
	expected, err := g.GenerateToken(sessionID)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(token))
}
