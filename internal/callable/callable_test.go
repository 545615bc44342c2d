package callable

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakuworry/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     domain.ErrorCode
		expected int
	}{
		{domain.CodeUnauthenticated, http.StatusUnauthorized},
		{domain.CodeFailedPrecondition, http.StatusBadRequest},
		{domain.CodeInvalidArgument, http.StatusBadRequest},
		{domain.CodeInternal, http.StatusInternalServerError},
		{domain.ErrorCode("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.code))
		})
	}
}

func TestWriteResult(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteResult(rec, domain.WorryResponse{Response: "The river carries it away."})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"result":{"response":"The river carries it away."}}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, domain.NewCallError(domain.CodeInvalidArgument, "Worry is too long. Keep it brief."))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.CodeInvalidArgument, resp.Error.Code)
	assert.Empty(t, resp.Result)
}
