// Package callable implements the JSON envelope shared by the worry
// service and its client: {"data": ...} in, {"result": ...} or
// {"error": {"status", "message"}} out.
package callable

import (
	"encoding/json"
	"net/http"

	"bakuworry/internal/domain"
)

// Request wraps callable input
type Request struct {
	Data json.RawMessage `json:"data"`
}

// Response wraps callable output
type Response struct {
	Result json.RawMessage   `json:"result,omitempty"`
	Error  *domain.CallError `json:"error,omitempty"`
}

// HTTPStatus maps an error code to its HTTP status
func HTTPStatus(code domain.ErrorCode) int {
	switch code {
	case domain.CodeUnauthenticated:
		return http.StatusUnauthorized
	case domain.CodeFailedPrecondition, domain.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteResult writes a successful callable response
func WriteResult(w http.ResponseWriter, result any) {
	raw, err := json.Marshal(result)
	if err != nil {
		WriteError(w, domain.NewCallError(domain.CodeInternal, domain.InternalMessage))
		return
	}
	write(w, http.StatusOK, Response{Result: raw})
}

// WriteError writes a callable error response
func WriteError(w http.ResponseWriter, callErr *domain.CallError) {
	write(w, HTTPStatus(callErr.Code), Response{Error: callErr})
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
