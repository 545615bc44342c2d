// Package client talks to the worry service over its callable HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"bakuworry/internal/callable"
	"bakuworry/internal/domain"

	"go.uber.org/zap"
)

const (
	signInPath       = "/v1/identity/anonymous"
	exchangePath     = "/v1/attestation/exchange"
	processWorryPath = "/v1/processWorry"

	attestationHeader = "X-Baku-Attestation"

	// refresh attestation tokens this long before they expire
	attestationSkew = time.Minute
)

// Client is an HTTP client for the worry service
type Client struct {
	baseURL    string
	siteKey    string
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	attestation *domain.AttestationToken
	now         func() time.Time
}

// New creates a client. An empty siteKey disables attestation.
func New(baseURL, siteKey string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		siteKey:    siteKey,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// SignInAnonymously creates a new anonymous identity
func (c *Client) SignInAnonymously(ctx context.Context) (*domain.Credential, error) {
	var cred domain.Credential
	if err := c.call(ctx, signInPath, struct{}{}, nil, &cred); err != nil {
		return nil, err
	}
	if cred.Token == "" {
		return nil, fmt.Errorf("sign-in returned no token")
	}
	return &cred, nil
}

// ProcessWorry submits a worry under cred, which may be nil
func (c *Client) ProcessWorry(ctx context.Context, cred *domain.Credential, req domain.WorryRequest) (*domain.WorryResponse, error) {
	headers := http.Header{}
	if cred != nil && cred.Token != "" {
		headers.Set("Authorization", "Bearer "+cred.Token)
	}

	token, err := c.attestationToken(ctx)
	if err != nil {
		// The service answers failed-precondition without it
		c.logger.Warn("Failed to obtain attestation token", zap.Error(err))
	}
	if token != "" {
		headers.Set(attestationHeader, token)
	}

	var resp domain.WorryResponse
	if err := c.call(ctx, processWorryPath, req, headers, &resp); err != nil {
		var callErr *domain.CallError
		if errors.As(err, &callErr) && callErr.Code == domain.CodeFailedPrecondition {
			c.dropAttestation()
		}
		return nil, err
	}
	return &resp, nil
}

// dropAttestation forces the next call to exchange a new token
func (c *Client) dropAttestation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attestation = nil
}

func (c *Client) attestationToken(ctx context.Context) (string, error) {
	if c.siteKey == "" {
		return "", nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attestation != nil && c.now().Add(attestationSkew).Before(c.attestation.ExpiresAt) {
		return c.attestation.Token, nil
	}

	var token domain.AttestationToken
	body := map[string]string{"siteKey": c.siteKey}
	if err := c.call(ctx, exchangePath, body, nil, &token); err != nil {
		return "", fmt.Errorf("exchange attestation: %w", err)
	}

	c.attestation = &token
	return token.Token, nil
}

// call performs one callable request. Service errors are returned as *domain.CallError.
func (c *Client) call(ctx context.Context, path string, data any, headers http.Header, out any) error {
	payload, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	var envelope callable.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", path, resp.StatusCode, err)
	}

	if envelope.Error != nil {
		return envelope.Error
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", path, err)
	}
	return nil
}
