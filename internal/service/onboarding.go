package service

import (
	"context"
	"sync"

	"bakuworry/internal/domain"
	"bakuworry/internal/repository"

	"go.uber.org/zap"
)

// OnboardingService owns the persisted onboarding flag.
// The flag only ever moves from false to true.
type OnboardingService struct {
	store  repository.KVStore
	logger *zap.Logger

	mu   sync.RWMutex
	seen bool
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(store repository.KVStore, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{store: store, logger: logger}
}

// Load reads the persisted flag
func (s *OnboardingService) Load(ctx context.Context) bool {
	value, ok, err := s.store.Get(ctx, domain.KeyOnboardingSeen)
	if err != nil {
		s.logger.Error("Failed to load onboarding status", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok && value == "true" {
		s.seen = true
	}
	return s.seen
}

// HasSeen reports whether onboarding was completed
func (s *OnboardingService) HasSeen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen
}

// Complete marks onboarding as done and persists the flag
func (s *OnboardingService) Complete(ctx context.Context) {
	s.mu.Lock()
	s.seen = true
	s.mu.Unlock()

	if err := s.store.Set(ctx, domain.KeyOnboardingSeen, "true"); err != nil {
		s.logger.Error("Failed to save onboarding status", zap.Error(err))
	}
}
