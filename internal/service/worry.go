package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"bakuworry/internal/domain"
	"bakuworry/internal/metrics"

	"go.uber.org/zap"
)

// Generator is an opaque text-completion backend
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Caller describes who is making a worry call
type Caller struct {
	UID      string
	Attested bool
}

// WorryService processes worries. It keeps no state between calls.
type WorryService struct {
	generator Generator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewWorryService creates a new worry service
func NewWorryService(generator Generator, m *metrics.Metrics, logger *zap.Logger) *WorryService {
	return &WorryService{
		generator: generator,
		metrics:   m,
		logger:    logger,
	}
}

// Process runs the checks in order and returns the tagged outcome.
// Errors are always *domain.CallError.
func (s *WorryService) Process(ctx context.Context, caller Caller, req domain.WorryRequest) (domain.Outcome, error) {
	if caller.UID == "" {
		s.metrics.RecordOutcome(metrics.OutcomeUnauthenticated)
		return domain.Outcome{}, domain.NewCallError(domain.CodeUnauthenticated,
			"The function must be called while authenticated.")
	}

	if !caller.Attested {
		s.metrics.RecordOutcome(metrics.OutcomeUnattested)
		return domain.Outcome{}, domain.NewCallError(domain.CodeFailedPrecondition,
			"The function must be called from an attested app.")
	}

	if req.BotField != "" {
		s.logger.Warn("Honeypot field filled, skipping generation",
			zap.String("uid", caller.UID),
			zap.Int("bot_field_length", len(req.BotField)),
		)
		s.metrics.RecordOutcome(metrics.OutcomeAbuse)
		return domain.Outcome{
			Response:      domain.SilentResponse,
			Accepted:      true,
			AbuseDetected: true,
		}, nil
	}

	// Whitespace-only text is treated as empty
	if strings.TrimSpace(req.Text) == "" {
		s.metrics.RecordOutcome(metrics.OutcomeInvalid)
		return domain.Outcome{}, domain.NewCallError(domain.CodeInvalidArgument,
			"The function must be called with one argument 'text' containing the worry.")
	}

	if utf8.RuneCountInString(req.Text) > domain.MaxWorryLength {
		s.metrics.RecordOutcome(metrics.OutcomeInvalid)
		return domain.Outcome{}, domain.NewCallError(domain.CodeInvalidArgument,
			"Worry is too long. Keep it brief.")
	}

	if HasCrisisIndicator(req.Text) {
		s.logger.Info("Crisis indicator detected, returning safety response", zap.String("uid", caller.UID))
		s.metrics.RecordOutcome(metrics.OutcomeCrisis)
		return domain.Outcome{
			Response:     domain.SafetyResponse,
			Accepted:     true,
			CrisisScreen: true,
		}, nil
	}

	start := time.Now()
	generated, err := s.generator.Generate(ctx, BuildPrompt(req.Text))
	s.metrics.ObserveGeneration(time.Since(start), err)
	if err != nil {
		s.logger.Error("Error calling generator", zap.String("uid", caller.UID), zap.Error(err))
		s.metrics.RecordOutcome(metrics.OutcomeInternal)
		return domain.Outcome{}, domain.NewCallError(domain.CodeInternal, domain.InternalMessage)
	}

	response := shapeResponse(generated)
	if response == "" {
		s.logger.Error("Generator returned empty response", zap.String("uid", caller.UID))
		s.metrics.RecordOutcome(metrics.OutcomeInternal)
		return domain.Outcome{}, domain.NewCallError(domain.CodeInternal, domain.InternalMessage)
	}

	outcome := domain.Outcome{Response: response, Accepted: true}
	if response == domain.SafetyResponse {
		outcome.CrisisScreen = true
		s.metrics.RecordOutcome(metrics.OutcomeCrisis)
	} else {
		s.metrics.RecordOutcome(metrics.OutcomeAccepted)
	}
	return outcome, nil
}
