package repository

import (
	"context"

	"bakuworry/internal/domain"
)

// IdentityRepository defines anonymous identity operations
type IdentityRepository interface {
	CreateIdentity(ctx context.Context, uid string) (*domain.Identity, error)
	IdentityExists(ctx context.Context, uid string) (bool, error)
	TouchIdentity(ctx context.Context, uid string) error
}

// KVStore defines local key-value persistence
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all pairs atomically
	SetMany(ctx context.Context, values map[string]string) error
}
