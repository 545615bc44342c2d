package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bakuworry/internal/domain"
	"bakuworry/internal/metrics"
	"bakuworry/internal/testutil"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var trustedCaller = Caller{UID: "uid-1", Attested: true}

func requireCallError(t *testing.T, err error, code domain.ErrorCode) *domain.CallError {
	t.Helper()
	var callErr *domain.CallError
	require.True(t, errors.As(err, &callErr), "expected *domain.CallError, got %v", err)
	assert.Equal(t, code, callErr.Code)
	return callErr
}

func TestWorryService_Process_Rejections(t *testing.T) {
	tests := []struct {
		name         string
		caller       Caller
		req          domain.WorryRequest
		expectedCode domain.ErrorCode
	}{
		{
			name:         "missing identity",
			caller:       Caller{Attested: true},
			req:          domain.WorryRequest{Text: "worry"},
			expectedCode: domain.CodeUnauthenticated,
		},
		{
			name:         "identity checked before attestation",
			caller:       Caller{},
			req:          domain.WorryRequest{Text: "worry", BotField: "bot"},
			expectedCode: domain.CodeUnauthenticated,
		},
		{
			name:         "missing attestation",
			caller:       Caller{UID: "uid-1"},
			req:          domain.WorryRequest{Text: "worry"},
			expectedCode: domain.CodeFailedPrecondition,
		},
		{
			name:         "attestation checked before honeypot",
			caller:       Caller{UID: "uid-1"},
			req:          domain.WorryRequest{Text: "worry", BotField: "bot"},
			expectedCode: domain.CodeFailedPrecondition,
		},
		{
			name:         "empty text",
			caller:       trustedCaller,
			req:          domain.WorryRequest{Text: ""},
			expectedCode: domain.CodeInvalidArgument,
		},
		{
			name:         "whitespace text",
			caller:       trustedCaller,
			req:          domain.WorryRequest{Text: " \n\t "},
			expectedCode: domain.CodeInvalidArgument,
		},
		{
			name:         "too long",
			caller:       trustedCaller,
			req:          domain.WorryRequest{Text: strings.Repeat("a", 501)},
			expectedCode: domain.CodeInvalidArgument,
		},
		{
			name:         "too long in characters",
			caller:       trustedCaller,
			req:          domain.WorryRequest{Text: strings.Repeat("夢", 501)},
			expectedCode: domain.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := new(testutil.MockGenerator)
			service := NewWorryService(generator, metrics.New(), testutil.NewTestLogger())

			outcome, err := service.Process(context.Background(), tt.caller, tt.req)

			requireCallError(t, err, tt.expectedCode)
			assert.Equal(t, domain.Outcome{}, outcome)
			generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestWorryService_Process_Honeypot(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	generator := new(testutil.MockGenerator)
	m := metrics.New()
	service := NewWorryService(generator, m, zap.New(core))

	for _, botField := range []string{"http://spam.example", " ", strings.Repeat("x", 600)} {
		outcome, err := service.Process(context.Background(), trustedCaller, domain.WorryRequest{
			Text:     "buy cheap pills",
			BotField: botField,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.Outcome{
			Response:      domain.SilentResponse,
			Accepted:      true,
			AbuseDetected: true,
		}, outcome)
	}

	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	assert.Equal(t, 3, logs.FilterMessage("Honeypot field filled, skipping generation").Len())
	assert.Equal(t, float64(3), promtestutil.ToFloat64(m.Outcomes().WithLabelValues(metrics.OutcomeAbuse)))
}

func TestWorryService_Process_Generates(t *testing.T) {
	generator := new(testutil.MockGenerator)
	generator.On("Generate", mock.Anything, BuildPrompt("I am worried about my exam")).
		Return("\nThe owl studies by moonlight. Your worry is mine now.\n", nil)

	m := metrics.New()
	service := NewWorryService(generator, m, testutil.NewTestLogger())

	outcome, err := service.Process(context.Background(), trustedCaller, domain.WorryRequest{
		Text: "I am worried about my exam",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.Outcome{
		Response: "The owl studies by moonlight. Your worry is mine now.",
		Accepted: true,
	}, outcome)
	assert.Equal(t, float64(1), promtestutil.ToFloat64(m.Outcomes().WithLabelValues(metrics.OutcomeAccepted)))
	generator.AssertExpectations(t)
}

func TestWorryService_Process_AcceptsMaxLength(t *testing.T) {
	text := strings.Repeat("夢", domain.MaxWorryLength)
	generator := new(testutil.MockGenerator)
	generator.On("Generate", mock.Anything, BuildPrompt(text)).Return("Long dreams, long nights.", nil)

	service := NewWorryService(generator, metrics.New(), testutil.NewTestLogger())

	outcome, err := service.Process(context.Background(), trustedCaller, domain.WorryRequest{Text: text})

	assert.NoError(t, err)
	assert.True(t, outcome.Accepted)
}

func TestWorryService_Process_CrisisScreen(t *testing.T) {
	inputs := []string{
		"I want to kill myself",
		"Exams are hard and honestly I have been thinking about suicide lately",
		"sometimes I DON'T WANT TO LIVE anymore",
		"I keep wanting to hurt myself. Also my cat is sick.",
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			generator := new(testutil.MockGenerator)
			service := NewWorryService(generator, metrics.New(), testutil.NewTestLogger())

			outcome, err := service.Process(context.Background(), trustedCaller, domain.WorryRequest{Text: text})

			assert.NoError(t, err)
			assert.Equal(t, domain.SafetyResponse, outcome.Response)
			assert.True(t, outcome.CrisisScreen)
			generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestWorryService_Process_ModelSafetyReplyIsNormalized(t *testing.T) {
	generator := new(testutil.MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).
		Return("Your burden is heavy. Please seek a guide in the waking world who can help you carry it.\n\n988 Suicide & Crisis Lifeline\n", nil)

	service := NewWorryService(generator, metrics.New(), testutil.NewTestLogger())

	outcome, err := service.Process(context.Background(), trustedCaller, domain.WorryRequest{
		Text: "everything feels pointless and dark",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.SafetyResponse, outcome.Response)
	assert.True(t, outcome.CrisisScreen)
}

func TestWorryService_Process_GenerationFailure(t *testing.T) {
	tests := []struct {
		name      string
		generated string
		genErr    error
	}{
		{
			name:   "provider error",
			genErr: errors.New("googleapi: Error 429: quota exceeded for key AIza..."),
		},
		{
			name:      "empty output",
			generated: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := new(testutil.MockGenerator)
			generator.On("Generate", mock.Anything, mock.Anything).Return(tt.generated, tt.genErr)

			m := metrics.New()
			service := NewWorryService(generator, m, testutil.NewTestLogger())

			_, err := service.Process(context.Background(), trustedCaller, domain.WorryRequest{Text: "worry"})

			callErr := requireCallError(t, err, domain.CodeInternal)
			assert.Equal(t, domain.InternalMessage, callErr.Message)
			assert.NotContains(t, callErr.Error(), "quota")
			assert.Equal(t, float64(1), promtestutil.ToFloat64(m.Outcomes().WithLabelValues(metrics.OutcomeInternal)))
		})
	}
}
