package service

import (
	"context"
	"strconv"
	"sync"

	"bakuworry/internal/domain"
	"bakuworry/internal/repository"

	"go.uber.org/zap"
)

// ProgressService tracks XP and level for the local identity
type ProgressService struct {
	store  repository.KVStore
	logger *zap.Logger

	mu        sync.RWMutex
	progress  domain.Progress
	listeners []func(domain.LevelUp)
}

// NewProgressService creates a new progress service starting at level 1
func NewProgressService(store repository.KVStore, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		store:    store,
		logger:   logger,
		progress: domain.NewProgress(0),
	}
}

// Load reads persisted progress. Read errors fall back to defaults.
func (s *ProgressService) Load(ctx context.Context) domain.Progress {
	xp := 0

	raw, ok, err := s.store.Get(ctx, domain.KeyXP)
	switch {
	case err != nil:
		s.logger.Error("Failed to load progress", zap.Error(err))
	case ok:
		parsed, convErr := strconv.Atoi(raw)
		if convErr != nil || parsed < 0 {
			s.logger.Warn("Ignoring malformed stored XP", zap.String("value", raw))
		} else {
			xp = parsed
		}
	}

	p := domain.NewProgress(xp)

	// Stored level is only a cache of the derived value
	if rawLevel, ok, err := s.store.Get(ctx, domain.KeyLevel); err == nil && ok {
		if stored, convErr := strconv.Atoi(rawLevel); convErr != nil || stored != p.Level {
			s.logger.Warn("Stored level out of sync, using derived level",
				zap.String("stored", rawLevel),
				zap.Int("derived", p.Level),
			)
		}
	}

	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()

	return p
}

// Progress returns the current in-memory progress
func (s *ProgressService) Progress() domain.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// OnLevelUp registers a level-up listener
func (s *ProgressService) OnLevelUp(fn func(domain.LevelUp)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// AddXP adds amount to the XP total and persists it.
// Persistence failures are logged; the in-memory state still advances.
func (s *ProgressService) AddXP(ctx context.Context, amount int) domain.Progress {
	if amount <= 0 {
		return s.Progress()
	}

	s.mu.Lock()
	previous := s.progress
	next := domain.NewProgress(previous.XP + amount)
	s.progress = next
	listeners := append([]func(domain.LevelUp){}, s.listeners...)
	s.mu.Unlock()

	err := s.store.SetMany(ctx, map[string]string{
		domain.KeyXP:    strconv.Itoa(next.XP),
		domain.KeyLevel: strconv.Itoa(next.Level),
	})
	if err != nil {
		s.logger.Error("Failed to save progress",
			zap.Int("xp", next.XP),
			zap.Int("level", next.Level),
			zap.Error(err),
		)
	}

	for level := previous.Level + 1; level <= next.Level; level++ {
		s.logger.Info("Level up", zap.Int("level", level), zap.Int("xp", next.XP))
		event := domain.LevelUp{Level: level, XP: next.XP}
		for _, fn := range listeners {
			fn(event)
		}
	}

	return next
}
