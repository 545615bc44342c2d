package service

import (
	"crypto/subtle"
	"errors"

	"bakuworry/internal/domain"

	"go.uber.org/zap"
)

// ErrInvalidSiteKey is returned when an exchange presents the wrong site key
var ErrInvalidSiteKey = errors.New("invalid attestation site key")

// AttestationService exchanges site keys for attestation tokens and verifies them
type AttestationService struct {
	siteKey string
	appID   string
	tokens  *TokenIssuer
	logger  *zap.Logger
}

// NewAttestationService creates a new attestation service
func NewAttestationService(siteKey, appID string, tokens *TokenIssuer, logger *zap.Logger) *AttestationService {
	return &AttestationService{
		siteKey: siteKey,
		appID:   appID,
		tokens:  tokens,
		logger:  logger,
	}
}

// Exchange issues an attestation token for a matching site key
func (s *AttestationService) Exchange(siteKey string) (*domain.AttestationToken, error) {
	if s.siteKey == "" || subtle.ConstantTimeCompare([]byte(siteKey), []byte(s.siteKey)) != 1 {
		s.logger.Warn("Attestation exchange rejected")
		return nil, ErrInvalidSiteKey
	}

	token, expiresAt, err := s.tokens.Issue(s.appID)
	if err != nil {
		return nil, err
	}

	return &domain.AttestationToken{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify reports whether token is a valid attestation for this app
func (s *AttestationService) Verify(token string) error {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return err
	}
	if subject != s.appID {
		return ErrInvalidToken
	}
	return nil
}
