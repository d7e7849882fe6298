// Package gateway issues requests against the protected admin API, attaching
// the current bearer token and owning the single handling point for
// authorization failures.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rewearadmin/internal/metrics"
	"rewearadmin/internal/vault"
	v1 "rewearadmin/pkg/api/v1"
	"rewearadmin/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// ErrUnauthorized reports that the backend rejected the session. By the time
// a caller sees it the vault has been cleared and the expiry signal
// published. Pure transport failures are never mapped onto it.
var ErrUnauthorized = errors.New("gateway: session rejected by server")

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	vault      *vault.Vault
	// onAuthFailure broadcasts the expiry signal; injected to keep this
	// package below the session package.
	onAuthFailure func()
}

func New(baseURL string, timeout time.Duration, v *vault.Vault, onAuthFailure func()) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if onAuthFailure == nil {
		onAuthFailure = func() {}
	}
	return &Gateway{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: timeout},
		vault:         v,
		onAuthFailure: onAuthFailure,
	}
}

// Do issues an authenticated request. The access token is read through the
// vault at call time, so a login immediately followed by a request uses the
// fresh pair. A missing token does not short-circuit; the server answers
// with 401 and the normal teardown runs.
//
// On 401/403 the vault is cleared, the expiry signal is published and
// ErrUnauthorized is returned. Network errors propagate unchanged and leave
// stored credentials alone.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	req, err := g.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if token := g.vault.AccessToken(); token != "" {
		req.Header.Set("Authorization", v1.DefaultTokenType+" "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}

	metrics.ObserveRequest(method, path, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		g.expireSession(method, path, resp.StatusCode)
		return nil, fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	}

	return resp, nil
}

// DoPublic issues a request that must work before authentication (login,
// signup). No bearer header is attached and a 401 here is an ordinary
// response, not a session-ending condition.
func (g *Gateway) DoPublic(ctx context.Context, method, path string, body any) (*http.Response, error) {
	req, err := g.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}

	metrics.ObserveRequest(method, path, resp.StatusCode)
	return resp, nil
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode request body: %w", err)
		}
		buf = bytes.NewBuffer(raw)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+apiPrefix+path, buf)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	return req, nil
}

func (g *Gateway) expireSession(method, path string, status int) {
	logger.Warn("gateway: access token rejected, tearing down session",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
	)
	metrics.RecordAuthFailure()
	if err := g.vault.Clear(); err != nil {
		logger.Error("gateway: failed to clear vault on expiry", zap.Error(err))
	}
	g.onAuthFailure()
}

// DecodeJSON drains resp into v and closes the body.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

// ErrorMessage extracts the backend error payload, falling back to the HTTP
// status text.
func ErrorMessage(resp *http.Response) string {
	defer resp.Body.Close()
	var payload v1.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(resp.StatusCode)
}
