package testutil

import (
	"context"

	"bakuworry/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockIdentityRepository is a mock for IdentityRepository
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) CreateIdentity(ctx context.Context, uid string) (*domain.Identity, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) IdentityExists(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityRepository) TouchIdentity(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// MockKVStore is a mock for KVStore
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKVStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKVStore) SetMany(ctx context.Context, values map[string]string) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

// MockGenerator is a mock for the text generation backend
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockAuthenticator is a mock for identity token authentication
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockAttestationVerifier is a mock for attestation verification
type MockAttestationVerifier struct {
	mock.Mock
}

func (m *MockAttestationVerifier) Verify(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

// MockAnonymousSigner is a mock for anonymous sign-in
type MockAnonymousSigner struct {
	mock.Mock
}

func (m *MockAnonymousSigner) SignInAnonymously(ctx context.Context) (*domain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

// MockWorryAPI is a mock for the worry service client
type MockWorryAPI struct {
	mock.Mock
}

func (m *MockWorryAPI) ProcessWorry(ctx context.Context, cred *domain.Credential, req domain.WorryRequest) (*domain.WorryResponse, error) {
	args := m.Called(ctx, cred, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorryResponse), args.Error(1)
}

// MockSubmitter is a mock for worry submission
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, text, botField string) (string, error) {
	args := m.Called(ctx, text, botField)
	return args.String(0), args.Error(1)
}
