package service

import (
	"context"
	"errors"
	"fmt"

	"bakuworry/internal/domain"

	"go.uber.org/zap"
)

// WorryAPI sends worries to the worry processing service
type WorryAPI interface {
	ProcessWorry(ctx context.Context, cred *domain.Credential, req domain.WorryRequest) (*domain.WorryResponse, error)
}

// CredentialSource exposes the current identity, if any
type CredentialSource interface {
	Current() *domain.Credential
	Invalidate(ctx context.Context)
}

// SubmissionError carries the user-facing text for a failed submission
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit worry: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// SubmissionService submits worries and maps failures to fixed messages
type SubmissionService struct {
	api      WorryAPI
	identity CredentialSource
	dev      bool
	logger   *zap.Logger
}

// NewSubmissionService creates a new submission service.
// dev enables verbose diagnostics in failure messages.
func NewSubmissionService(api WorryAPI, identity CredentialSource, dev bool, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		api:      api,
		identity: identity,
		dev:      dev,
		logger:   logger,
	}
}

// Submit sends the worry once. On failure the returned error is a
// *SubmissionError whose Message is safe to show the user.
func (s *SubmissionService) Submit(ctx context.Context, text, botField string) (string, error) {
	cred := s.identity.Current()
	resp, err := s.api.ProcessWorry(ctx, cred, domain.WorryRequest{
		Text:     text,
		BotField: botField,
	})
	if err != nil {
		s.logger.Error("Error calling worry service", zap.Error(err))

		// A rejected identity is dropped so the next sign-in starts fresh
		var callErr *domain.CallError
		if cred != nil && errors.As(err, &callErr) && callErr.Code == domain.CodeUnauthenticated {
			s.identity.Invalidate(ctx)
		}
		return "", &SubmissionError{Message: s.userMessage(err), Err: err}
	}

	return resp.Response, nil
}

func (s *SubmissionService) userMessage(err error) string {
	var callErr *domain.CallError
	if errors.As(err, &callErr) {
		switch callErr.Code {
		case domain.CodeUnauthenticated, domain.CodeFailedPrecondition:
			return domain.MessageUnauthenticated
		case domain.CodeInvalidArgument:
			return domain.MessageInvalidInput
		}
	}

	if s.dev {
		return domain.DevMessage(err.Error())
	}
	return domain.MessageConfusion
}
