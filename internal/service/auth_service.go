package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"rafiq/internal/models"
	"rafiq/internal/repository"
	"rafiq/internal/schema"
	"rafiq/internal/security"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrGuardianNotFound   = errors.New("guardian not found")
)

// AuthService handles guardian authentication business logic
type AuthService struct {
	guardianRepo *repository.GuardianRepository
	tokens       *security.TokenManager
	email        *EmailService
}

// NewAuthService creates a new auth service
func NewAuthService(guardianRepo *repository.GuardianRepository, tokens *security.TokenManager, email *EmailService) *AuthService {
	return &AuthService{
		guardianRepo: guardianRepo,
		tokens:       tokens,
		email:        email,
	}
}

// Register creates a new guardian account and issues the first token pair
func (s *AuthService) Register(ctx context.Context, req schema.RegisterGuardianRequest) (*models.Guardian, *models.TokenPair, error) {
	reg, err := req.Validate()
	if err != nil {
		return nil, nil, err
	}

	email := strings.ToLower(reg.Email)
	existing, err := s.guardianRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing guardian: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(reg.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	guardian := &models.Guardian{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      passwordHash,
		FirstName:         reg.FirstName,
		LastName:          reg.LastName,
		PreferredLanguage: reg.PreferredLanguage,
		Timezone:          reg.Timezone,
		IsActive:          true,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.guardianRepo.Create(guardian); err != nil {
		return nil, nil, fmt.Errorf("failed to create guardian: %w", err)
	}

	if err := s.sendVerificationEmail(ctx, guardian); err != nil {
		// Registration succeeds even if the mail cannot go out
		log.Printf("Failed to send verification email to %s: %v", guardian.Email, err)
	}

	pair, err := s.mintPair(guardian.ID)
	if err != nil {
		return nil, nil, err
	}
	return guardian, pair, nil
}

// Login authenticates a guardian and issues a fresh token pair
func (s *AuthService) Login(req schema.LoginRequest) (*models.Guardian, *models.TokenPair, error) {
	login, err := req.Validate()
	if err != nil {
		return nil, nil, err
	}

	guardian, err := s.guardianRepo.GetByEmail(strings.ToLower(login.Email))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up guardian: %w", err)
	}
	if guardian == nil || guardian.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(login.Password, guardian.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}
	if !guardian.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.guardianRepo.UpdateLastLogin(guardian.ID, now); err != nil {
		log.Printf("Failed to record last login for %s: %v", guardian.ID, err)
	}
	guardian.LastLogin = &now

	pair, err := s.mintPair(guardian.ID)
	if err != nil {
		return nil, nil, err
	}
	return guardian, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
// Both tokens rotate on every refresh.
func (s *AuthService) Refresh(req schema.RefreshTokenRequest) (*models.TokenPair, error) {
	refresh, err := req.Validate()
	if err != nil {
		return nil, err
	}

	guardianID, err := s.tokens.Verify(refresh.RefreshToken, "refresh")
	if err != nil {
		return nil, ErrInvalidToken
	}

	guardian, err := s.guardianRepo.GetByID(guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guardian: %w", err)
	}
	if guardian == nil {
		return nil, ErrInvalidToken
	}
	if !guardian.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.mintPair(guardian.ID)
}

// GetGuardian retrieves an active guardian by id
func (s *AuthService) GetGuardian(id string) (*models.Guardian, error) {
	guardian, err := s.guardianRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guardian: %w", err)
	}
	if guardian == nil {
		return nil, ErrGuardianNotFound
	}
	return guardian, nil
}

// VerifyEmail consumes a verification token from the emailed link
func (s *AuthService) VerifyEmail(token string) error {
	ok, err := s.guardianRepo.VerifyEmailByToken(token)
	if err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	if !ok {
		return ErrInvalidToken
	}
	return nil
}

// OAuthLogin signs a guardian in via an external identity, creating or
// linking the account as needed. OAuth emails count as verified.
func (s *AuthService) OAuthLogin(provider, subject, email, firstName, lastName string) (*models.Guardian, *models.TokenPair, error) {
	guardian, err := s.guardianRepo.GetByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up oauth identity: %w", err)
	}

	if guardian == nil && email != "" {
		guardian, err = s.guardianRepo.GetByEmail(strings.ToLower(email))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up guardian: %w", err)
		}
		if guardian != nil {
			if err := s.guardianRepo.LinkOAuth(guardian.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth identity: %w", err)
			}
		}
	}

	if guardian == nil {
		guardian = &models.Guardian{
			ID:                uuid.NewString(),
			Email:             strings.ToLower(email),
			FirstName:         firstName,
			LastName:          lastName,
			PreferredLanguage: models.LanguageArabic,
			Timezone:          "Asia/Dubai",
			IsEmailVerified:   true,
			IsActive:          true,
			OAuthProvider:     provider,
			OAuthSubject:      subject,
			CreatedAt:         time.Now().UTC(),
		}
		if err := s.guardianRepo.Create(guardian); err != nil {
			return nil, nil, fmt.Errorf("failed to create guardian: %w", err)
		}
	}

	if !guardian.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.guardianRepo.UpdateLastLogin(guardian.ID, now); err != nil {
		log.Printf("Failed to record last login for %s: %v", guardian.ID, err)
	}

	pair, err := s.mintPair(guardian.ID)
	if err != nil {
		return nil, nil, err
	}
	return guardian, pair, nil
}

func (s *AuthService) sendVerificationEmail(ctx context.Context, guardian *models.Guardian) error {
	token, err := generateToken()
	if err != nil {
		return err
	}
	if err := s.guardianRepo.SetEmailVerifyToken(guardian.ID, token); err != nil {
		return err
	}
	return s.email.SendVerificationEmail(ctx, guardian.Email, guardian.FirstName, token, string(guardian.PreferredLanguage))
}

func (s *AuthService) mintPair(guardianID string) (*models.TokenPair, error) {
	access, err := s.tokens.MintAccess(guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, err := s.tokens.MintRefresh(guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to mint refresh token: %w", err)
	}
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// generateToken creates a random token for email verification links
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
