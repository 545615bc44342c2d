package service

import (
	"context"
	"errors"
	"testing"

	"bakuworry/internal/domain"
	"bakuworry/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestOnboardingService_Load(t *testing.T) {
	tests := []struct {
		name     string
		stored   map[string]string
		readErr  error
		expected bool
	}{
		{
			name:     "fresh install",
			stored:   nil,
			expected: false,
		},
		{
			name:     "completed",
			stored:   map[string]string{domain.KeyOnboardingSeen: "true"},
			expected: true,
		},
		{
			name:     "unexpected value",
			stored:   map[string]string{domain.KeyOnboardingSeen: "yes"},
			expected: false,
		},
		{
			name:     "read error",
			readErr:  errors.New("locked"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemoryKVStore(tt.stored)
			store.ReadErr = tt.readErr

			service := NewOnboardingService(store, testutil.NewTestLogger())

			assert.Equal(t, tt.expected, service.Load(context.Background()))
			assert.Equal(t, tt.expected, service.HasSeen())
		})
	}
}

func TestOnboardingService_Complete(t *testing.T) {
	store := testutil.NewMemoryKVStore(nil)
	service := NewOnboardingService(store, testutil.NewTestLogger())

	service.Complete(context.Background())

	assert.True(t, service.HasSeen())
	assert.Equal(t, "true", store.Value(domain.KeyOnboardingSeen))

	relaunched := NewOnboardingService(store, testutil.NewTestLogger())
	assert.True(t, relaunched.Load(context.Background()))
}

func TestOnboardingService_Complete_WriteFailure(t *testing.T) {
	store := testutil.NewMemoryKVStore(nil)
	store.WriteErr = errors.New("read-only filesystem")
	service := NewOnboardingService(store, testutil.NewTestLogger())

	service.Complete(context.Background())

	assert.True(t, service.HasSeen())
}
