package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bakuworry/internal/callable"
	"bakuworry/internal/domain"
	"bakuworry/internal/middleware"

	"go.uber.org/zap"
)

// handleProcessWorry handles the worry call. Malformed input still flows
// through the service so the check order holds.
func (h *Handler) handleProcessWorry(w http.ResponseWriter, r *http.Request) {
	data, err := decodeData(w, r)
	if err != nil {
		h.logger.Info("Malformed worry request", zap.Error(err))
	}

	text, _ := stringField(data["text"])
	req := domain.WorryRequest{
		Text:     text,
		BotField: botField(data["botField"]),
	}

	outcome, err := h.worryService.Process(r.Context(), middleware.CallerFromContext(r.Context()), req)
	if err != nil {
		var callErr *domain.CallError
		if !errors.As(err, &callErr) {
			h.logger.Error("Unexpected worry service error", zap.Error(err))
			callErr = domain.NewCallError(domain.CodeInternal, domain.InternalMessage)
		}
		callable.WriteError(w, callErr)
		return
	}

	callable.WriteResult(w, domain.WorryResponse{Response: outcome.Response})
}

// decodeData reads the callable envelope into its top-level fields.
// The returned map is never nil.
func decodeData(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	data := map[string]json.RawMessage{}

	var req callable.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return data, err
	}
	if len(req.Data) == 0 || string(req.Data) == "null" {
		return data, nil
	}
	if err := json.Unmarshal(req.Data, &data); err != nil {
		return map[string]json.RawMessage{}, err
	}
	return data, nil
}

// stringField decodes raw as a JSON string
func stringField(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// botField returns the honeypot value; any non-string, non-null value counts as filled
func botField(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if s, ok := stringField(raw); ok {
		return s
	}
	return string(raw)
}
