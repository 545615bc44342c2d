package postgres

import (
	"context"
	"database/sql"
	"time"

	"bakuworry/internal/domain"
)

// IdentityRepo implements repository.IdentityRepository
type IdentityRepo struct {
	db *sql.DB
}

// NewIdentityRepo creates a new identity repository
func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{db: db}
}

// CreateIdentity records a new anonymous identity
func (r *IdentityRepo) CreateIdentity(ctx context.Context, uid string) (*domain.Identity, error) {
	var createdAt time.Time
	query := `
		INSERT INTO identities (uid)
		VALUES ($1)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, uid).Scan(&createdAt); err != nil {
		return nil, err
	}

	return &domain.Identity{UID: uid, CreatedAt: createdAt}, nil
}

// IdentityExists checks if identity was issued by this service
func (r *IdentityRepo) IdentityExists(ctx context.Context, uid string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM identities WHERE uid = $1)`
	if err := r.db.QueryRowContext(ctx, query, uid).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// TouchIdentity updates last_seen_at for the identity
func (r *IdentityRepo) TouchIdentity(ctx context.Context, uid string) error {
	query := `UPDATE identities SET last_seen_at = NOW() WHERE uid = $1`
	_, err := r.db.ExecContext(ctx, query, uid)
	return err
}
