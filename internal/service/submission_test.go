package service

import (
	"context"
	"errors"
	"testing"

	"bakuworry/internal/domain"
	"bakuworry/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticCredential struct {
	cred        *domain.Credential
	invalidated int
}

func (s *staticCredential) Current() *domain.Credential {
	return s.cred
}

func (s *staticCredential) Invalidate(ctx context.Context) {
	s.invalidated++
	s.cred = nil
}

func TestSubmissionService_Submit_Success(t *testing.T) {
	cred := &domain.Credential{UID: "uid-1", Token: "token"}
	api := new(testutil.MockWorryAPI)
	api.On("ProcessWorry", mock.Anything, cred, domain.WorryRequest{Text: "I am worried about my exam"}).
		Return(&domain.WorryResponse{Response: "  The moon has seen many exams.  "}, nil)

	service := NewSubmissionService(api, &staticCredential{cred: cred}, false, testutil.NewTestLogger())

	reply, err := service.Submit(context.Background(), "I am worried about my exam", "")

	assert.NoError(t, err)
	assert.Equal(t, "  The moon has seen many exams.  ", reply, "response is returned verbatim")
	api.AssertExpectations(t)
}

func TestSubmissionService_Submit_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		dev      bool
		expected string
	}{
		{
			name:     "unauthenticated",
			err:      domain.NewCallError(domain.CodeUnauthenticated, "must be authenticated"),
			expected: domain.MessageUnauthenticated,
		},
		{
			name:     "failed precondition",
			err:      domain.NewCallError(domain.CodeFailedPrecondition, "not attested"),
			expected: domain.MessageUnauthenticated,
		},
		{
			name:     "invalid argument",
			err:      domain.NewCallError(domain.CodeInvalidArgument, "too long"),
			expected: domain.MessageInvalidInput,
		},
		{
			name:     "internal in production",
			err:      domain.NewCallError(domain.CodeInternal, domain.InternalMessage),
			expected: domain.MessageConfusion,
		},
		{
			name:     "network error in production",
			err:      errors.New("dial tcp 127.0.0.1:8080: connection refused"),
			expected: domain.MessageConfusion,
		},
		{
			name:     "network error in development",
			err:      errors.New("dial tcp 127.0.0.1:8080: connection refused"),
			dev:      true,
			expected: "The wind is silent... (Error: dial tcp 127.0.0.1:8080: connection refused)",
		},
		{
			name:     "auth error in development keeps fixed message",
			err:      domain.NewCallError(domain.CodeUnauthenticated, "must be authenticated"),
			dev:      true,
			expected: domain.MessageUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(testutil.MockWorryAPI)
			api.On("ProcessWorry", mock.Anything, (*domain.Credential)(nil), mock.Anything).Return(nil, tt.err).Once()

			service := NewSubmissionService(api, &staticCredential{}, tt.dev, testutil.NewTestLogger())

			reply, err := service.Submit(context.Background(), "worry", "")

			assert.Empty(t, reply)
			var subErr *SubmissionError
			require.True(t, errors.As(err, &subErr))
			assert.Equal(t, tt.expected, subErr.Message)
			assert.ErrorIs(t, err, tt.err)
			api.AssertExpectations(t)
		})
	}
}

func TestSubmissionService_Submit_InvalidatesRejectedIdentity(t *testing.T) {
	tests := []struct {
		name        string
		cred        *domain.Credential
		err         error
		invalidated int
	}{
		{
			name:        "unauthenticated drops held identity",
			cred:        &domain.Credential{UID: "uid-1", Token: "stale-token"},
			err:         domain.NewCallError(domain.CodeUnauthenticated, "must be authenticated"),
			invalidated: 1,
		},
		{
			name: "unauthenticated without identity",
			err:  domain.NewCallError(domain.CodeUnauthenticated, "must be authenticated"),
		},
		{
			name: "failed precondition keeps identity",
			cred: &domain.Credential{UID: "uid-1", Token: "token"},
			err:  domain.NewCallError(domain.CodeFailedPrecondition, "not attested"),
		},
		{
			name: "network error keeps identity",
			cred: &domain.Credential{UID: "uid-1", Token: "token"},
			err:  errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(testutil.MockWorryAPI)
			api.On("ProcessWorry", mock.Anything, tt.cred, mock.Anything).Return(nil, tt.err).Once()
			identity := &staticCredential{cred: tt.cred}

			service := NewSubmissionService(api, identity, false, testutil.NewTestLogger())
			_, err := service.Submit(context.Background(), "worry", "")

			assert.Error(t, err)
			assert.Equal(t, tt.invalidated, identity.invalidated)
		})
	}
}
