package service

import (
	"context"
	"errors"
	"fmt"

	"bakuworry/internal/domain"
	"bakuworry/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownIdentity is returned for validly signed tokens whose identity is not on record
var ErrUnknownIdentity = errors.New("unknown identity")

// AuthService handles anonymous sign-in and token authentication
type AuthService struct {
	identityRepo repository.IdentityRepository
	tokens       *TokenIssuer
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(identityRepo repository.IdentityRepository, tokens *TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		identityRepo: identityRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// SignInAnonymously records a new identity and returns its credential
func (s *AuthService) SignInAnonymously(ctx context.Context) (*domain.Credential, error) {
	uid := uuid.NewString()

	identity, err := s.identityRepo.CreateIdentity(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	token, _, err := s.tokens.Issue(identity.UID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Anonymous identity created", zap.String("uid", identity.UID))
	return &domain.Credential{UID: identity.UID, Token: token}, nil
}

// Authenticate verifies an identity token and returns its uid.
// Invalid tokens wrap ErrInvalidToken, unknown ones ErrUnknownIdentity;
// any other error is a storage failure.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	uid, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	exists, err := s.identityRepo.IdentityExists(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("check identity: %w", err)
	}
	if !exists {
		return "", ErrUnknownIdentity
	}

	if err := s.identityRepo.TouchIdentity(ctx, uid); err != nil {
		s.logger.Warn("Failed to update identity last seen", zap.String("uid", uid), zap.Error(err))
	}

	return uid, nil
}
