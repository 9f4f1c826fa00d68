package service

import (
	"context"
	"log"
	"strings"

	"mims-console/internal/domain/entity"
	"mims-console/internal/infrastructure/backend"
	"mims-console/internal/infrastructure/localstore"
	"mims-console/pkg/apperror"
	"mims-console/pkg/utils"
)

// AuthService handles authentication-related operations. Credentials are
// verified by the remote backend; the console issues its own session token
// and remembers the identity locally so a restart restores the session
// without re-entering credentials.
type AuthService struct {
	backend    *backend.Client
	store      *localstore.Store
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(client *backend.Client, store *localstore.Store, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		backend:    client,
		store:      store,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents an established session
type LoginOutput struct {
	Session entity.Session
	Token   string
}

func (in *LoginInput) validate() error {
	if strings.TrimSpace(in.Email) == "" {
		return apperror.NewValidationError("email", "Email is required")
	}
	if in.Password == "" {
		return apperror.NewValidationError("password", "Password is required")
	}
	return nil
}

// Login verifies credentials against the backend and establishes a session.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if err := s.backend.Login(ctx, input.Email, input.Password); err != nil {
		return nil, err
	}

	name, err := s.backend.GetUser(ctx, input.Email)
	if err != nil || name == "" {
		// The account exists (credentials just verified); fall back to the
		// email as display name rather than failing the whole login.
		name = input.Email
	}

	return s.establish(entity.Session{Email: input.Email, DisplayName: name})
}

// BeginOTPLogin verifies credentials and triggers the one-time passcode
// mail. No session exists until the code is verified.
func (s *AuthService) BeginOTPLogin(ctx context.Context, input *LoginInput) error {
	if err := input.validate(); err != nil {
		return err
	}
	return s.backend.BeginOTPLogin(ctx, input.Email, input.Password)
}

// VerifyOTP exchanges a one-time passcode for a session.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*LoginOutput, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperror.NewValidationError("email", "Email is required")
	}
	if strings.TrimSpace(otp) == "" {
		return nil, apperror.NewValidationError("otp", "Enter the code from your email")
	}

	name, err := s.backend.VerifyOTP(ctx, email, otp)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}

	return s.establish(entity.Session{Email: email, DisplayName: name})
}

// Restore rebuilds the session from the locally stored identity. Returns
// nil when no identity is stored (the caller must re-authenticate).
func (s *AuthService) Restore() (*LoginOutput, error) {
	session, err := s.store.LoadIdentity()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	token, err := s.jwtManager.GenerateSessionToken(session.Email, session.DisplayName)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Session: *session, Token: token}, nil
}

// Logout discards the stored identity. The issued token simply expires;
// there is no server-side token revocation.
func (s *AuthService) Logout() error {
	return s.store.ClearIdentity()
}

func (s *AuthService) establish(session entity.Session) (*LoginOutput, error) {
	token, err := s.jwtManager.GenerateSessionToken(session.Email, session.DisplayName)
	if err != nil {
		return nil, err
	}

	// Restore data is a convenience; a write failure must not block login.
	if err := s.store.SaveIdentity(session); err != nil {
		log.Printf("auth: could not persist identity: %v", err)
	}

	return &LoginOutput{Session: session, Token: token}, nil
}
