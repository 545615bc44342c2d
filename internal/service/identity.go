package service

import (
	"context"
	"fmt"
	"sync"

	"bakuworry/internal/domain"
	"bakuworry/internal/repository"

	"go.uber.org/zap"
)

// AnonymousSigner creates anonymous identities
type AnonymousSigner interface {
	SignInAnonymously(ctx context.Context) (*domain.Credential, error)
}

// IdentityProvider supplies the durable anonymous credential for this install
type IdentityProvider struct {
	store  repository.KVStore
	signer AnonymousSigner
	logger *zap.Logger

	mu      sync.RWMutex
	current *domain.Credential
	loading bool
}

// NewIdentityProvider creates a provider in the loading state
func NewIdentityProvider(store repository.KVStore, signer AnonymousSigner, logger *zap.Logger) *IdentityProvider {
	return &IdentityProvider{
		store:   store,
		signer:  signer,
		logger:  logger,
		loading: true,
	}
}

// Start restores the stored credential or signs in anonymously.
// Failures are logged and leave the provider unauthenticated.
func (p *IdentityProvider) Start(ctx context.Context) {
	defer func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}()

	cred, err := p.restore(ctx)
	if err != nil {
		p.logger.Error("Failed to restore identity", zap.Error(err))
	}
	if cred != nil {
		p.mu.Lock()
		p.current = cred
		p.mu.Unlock()
		p.logger.Info("Identity restored", zap.String("uid", cred.UID))
		return
	}

	if err := p.SignIn(ctx); err != nil {
		p.logger.Error("Auto sign-in failed", zap.Error(err))
	}
}

// SignIn creates an anonymous identity when none is held
func (p *IdentityProvider) SignIn(ctx context.Context) error {
	if p.Current() != nil {
		return nil
	}

	cred, err := p.signer.SignInAnonymously(ctx)
	if err != nil {
		return fmt.Errorf("sign in anonymously: %w", err)
	}

	p.mu.Lock()
	p.current = cred
	p.mu.Unlock()

	err = p.store.SetMany(ctx, map[string]string{
		domain.KeyIdentityToken: cred.Token,
		domain.KeyIdentityUID:   cred.UID,
	})
	if err != nil {
		p.logger.Error("Failed to persist identity", zap.Error(err))
	}

	p.logger.Info("Signed in anonymously", zap.String("uid", cred.UID))
	return nil
}

// Invalidate drops the held credential and its stored copy so the next
// Start or SignIn creates a fresh identity
func (p *IdentityProvider) Invalidate(ctx context.Context) {
	p.mu.Lock()
	cred := p.current
	p.current = nil
	p.mu.Unlock()

	if cred == nil {
		return
	}

	err := p.store.SetMany(ctx, map[string]string{
		domain.KeyIdentityToken: "",
		domain.KeyIdentityUID:   "",
	})
	if err != nil {
		p.logger.Error("Failed to clear stored identity", zap.Error(err))
	}

	p.logger.Info("Identity rejected by server, cleared", zap.String("uid", cred.UID))
}

// Current returns the credential, or nil while pending or unauthenticated
func (p *IdentityProvider) Current() *domain.Credential {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Loading reports whether Start has not yet settled
func (p *IdentityProvider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *IdentityProvider) restore(ctx context.Context) (*domain.Credential, error) {
	token, ok, err := p.store.Get(ctx, domain.KeyIdentityToken)
	if err != nil || !ok || token == "" {
		return nil, err
	}

	uid, _, err := p.store.Get(ctx, domain.KeyIdentityUID)
	if err != nil {
		return nil, err
	}

	return &domain.Credential{UID: uid, Token: token}, nil
}
