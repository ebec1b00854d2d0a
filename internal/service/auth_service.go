package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"flicksclub/internal/models"
	"flicksclub/internal/repository"
	"flicksclub/internal/security"
	"flicksclub/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new member account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and creates a session
func (s *AuthService) Login(email, password string) (*models.Session, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.startSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// startSession issues a fresh session for a user who just proved their
// identity, by password or through an OAuth provider.
func (s *AuthService) startSession(userID int64) (*models.Session, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a user using an OAuth provider
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.User, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	user, err := s.resolveOAuthUser(provider, subject, email, name)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.startSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// resolveOAuthUser maps a verified provider identity onto a member
// account: an existing link wins, then a matching email gets linked,
// and otherwise a new account is created.
func (s *AuthService) resolveOAuthUser(provider, subject, email, name string) (*models.User, error) {
	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		if existing.OAuthProvider != "" && existing.OAuthProvider != provider {
			return nil, ErrEmailTaken
		}
		if err := s.userRepo.LinkOAuthProvider(existing.ID, provider, subject); err != nil {
			return nil, fmt.Errorf("failed to link oauth provider: %w", err)
		}
		return existing, nil
	}

	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	// OAuth accounts never log in with this hash; it only keeps the
	// column non-empty.
	randomPasswordHash, err := security.HashPassword(security.GenerateSessionID())
	if err != nil {
		return nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
	}
	created, err := s.userRepo.CreateUser(email, randomPasswordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}
	if err := s.userRepo.LinkOAuthProvider(created.ID, provider, subject); err != nil {
		return nil, fmt.Errorf("failed to link oauth provider: %w", err)
	}
	return created, nil
}

// RequestPasswordReset creates a password reset token and sends an email.
// An unknown email is not an error; we never reveal which addresses
// have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_ = s.userRepo.DeleteUserPasswordResetTokens(user.ID)

	expiresAt := time.Now().Add(1 * time.Hour)
	if err := s.userRepo.CreatePasswordResetToken(token, user.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if emailService != nil && emailService.IsEnabled() {
		if err := emailService.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return nil
}

// ResetPassword resets a user's password using a valid token
func (s *AuthService) ResetPassword(token, newPassword string) error {
	resetToken, err := s.userRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	if resetToken == nil {
		return errors.New("invalid or expired reset token")
	}
	if resetToken.Used {
		return errors.New("this reset link has already been used")
	}
	if resetToken.IsExpired() {
		return errors.New("this reset link has expired")
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(resetToken.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.userRepo.MarkPasswordResetTokenAsUsed(token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}

	// Force re-login everywhere after a password change
	_ = s.userRepo.DeleteUserSessions(resetToken.UserID)

	return nil
}

// CleanupExpiredPasswordResetTokens removes expired reset tokens
func (s *AuthService) CleanupExpiredPasswordResetTokens() error {
	if err := s.userRepo.DeleteExpiredPasswordResetTokens(); err != nil {
		return fmt.Errorf("failed to cleanup reset tokens: %w", err)
	}
	return nil
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
