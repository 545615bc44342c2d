package handler

import (
	"context"
	"net/http"

	"bakuworry/internal/domain"
	"bakuworry/internal/metrics"
	"bakuworry/internal/middleware"
	"bakuworry/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes bounds callable request bodies
const maxBodyBytes = 64 << 10

// SignInService creates anonymous identities
type SignInService interface {
	SignInAnonymously(ctx context.Context) (*domain.Credential, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

// AttestationExchanger issues and verifies attestation tokens
type AttestationExchanger interface {
	Exchange(siteKey string) (*domain.AttestationToken, error)
	Verify(token string) error
}

// WorryProcessor processes a single worry call
type WorryProcessor interface {
	Process(ctx context.Context, caller service.Caller, req domain.WorryRequest) (domain.Outcome, error)
}

// Handler serves the worry service's HTTP API
type Handler struct {
	authService  SignInService
	attestation  AttestationExchanger
	worryService WorryProcessor
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	authService SignInService,
	attestation AttestationExchanger,
	worryService WorryProcessor,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:  authService,
		attestation:  attestation,
		worryService: worryService,
		metrics:      m,
		logger:       logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/identity/anonymous", h.handleSignIn)
	r.Post("/v1/attestation/exchange", h.handleAttestationExchange)

	r.With(middleware.CallerMiddleware(h.authService, h.attestation, h.logger)).
		Post("/v1/processWorry", h.handleProcessWorry)

	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
}
