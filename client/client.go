// Package client is the admin SDK for the rewear platform: it wires the
// token codec, vault, authenticated gateway and role session together and
// exposes the operations the admin surfaces call.
package client

import (
	"context"
	"fmt"
	"net/http"

	"rewearadmin/internal/codec"
	"rewearadmin/internal/config"
	"rewearadmin/internal/gateway"
	"rewearadmin/internal/guard"
	"rewearadmin/internal/session"
	"rewearadmin/internal/vault"
	v1 "rewearadmin/pkg/api/v1"
	"rewearadmin/pkg/logger"

	"go.uber.org/zap"
)

type Client struct {
	vault   *vault.Vault
	bus     *session.Bus
	gateway *gateway.Gateway
	session *session.Session
}

// New builds a client persisting tokens to the per-user file medium.
func New(cfg *config.Config) (*Client, error) {
	medium, err := vault.NewFileMedium(cfg.Auth.VaultPath)
	if err != nil {
		return nil, fmt.Errorf("client: open token store: %w", err)
	}
	return NewWithMedium(cfg, medium)
}

// NewWithMedium builds a client over an explicit storage medium. Tests pass
// a memory medium to keep sessions isolated.
func NewWithMedium(cfg *config.Config, medium vault.Medium) (*Client, error) {
	cd, err := codec.New(cfg.Auth.ObfuscationKey)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	c := &Client{}
	c.vault = vault.New(cd, medium)
	c.bus = session.NewBus()
	c.gateway = gateway.New(cfg.API.BaseURL, cfg.API.Timeout, c.vault, c.bus.PublishExpiry)
	c.session = session.New(c.vault, c, c.bus)
	return c, nil
}

// Login obtains a fresh credential pair, persists it and resolves the role
// for the new session. A rejected login leaves any previous session state
// untouched.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.gateway.DoPublic(ctx, http.MethodPost, "/admin/auth/login", v1.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("client: login rejected: %s", gateway.ErrorMessage(resp))
	}

	var tokens v1.TokenResponse
	if err := gateway.DecodeJSON(resp, &tokens); err != nil {
		return err
	}

	if err := c.vault.SetTokens(vault.Pair{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
		ExpiresIn:    tokens.ExpiresIn,
	}); err != nil {
		return err
	}

	logger.Info("client: logged in", zap.String("email", email))
	c.session.Resolve(ctx)
	return nil
}

// Logout tears the local session down. There is no server-side logout call
// in the admin contract; dropping the tokens is the whole operation.
func (c *Client) Logout() error {
	return c.session.Logout()
}

// FetchRole resolves the current admin's role through the gateway. It
// satisfies session.RoleFetcher.
func (c *Client) FetchRole(ctx context.Context) (v1.Role, error) {
	resp, err := c.gateway.Do(ctx, http.MethodGet, "/admin/auth/my-role", nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return "", fmt.Errorf("client: role fetch failed with status %d", resp.StatusCode)
	}

	var payload v1.RoleResponse
	if err := gateway.DecodeJSON(resp, &payload); err != nil {
		return "", err
	}
	role, ok := v1.ParseRole(payload.Role)
	if !ok {
		return "", fmt.Errorf("client: unknown role %q in response", payload.Role)
	}
	return role, nil
}

// Resolve settles the role session; call once at startup and after login.
func (c *Client) Resolve(ctx context.Context) {
	c.session.Resolve(ctx)
}

func (c *Client) Session() *session.Session { return c.session }

func (c *Client) Vault() *vault.Vault { return c.vault }

// Guard evaluates the route guard for a surface restricted to the given
// roles.
func (c *Client) Guard(allowed []v1.Role) guard.Decision {
	return guard.For(c.vault, c.session, allowed)
}

// CreateSignupRequest validates the form locally, then submits it. No state
// is touched on validation failure and nothing is sent.
func (c *Client) CreateSignupRequest(ctx context.Context, form SignupForm) (v1.SignupRecord, error) {
	if err := form.Validate(); err != nil {
		return v1.SignupRecord{}, err
	}

	resp, err := c.gateway.DoPublic(ctx, http.MethodPost, "/admin/auth/signup-requests", v1.SignupRequest{
		Email:         form.Email,
		Password:      form.Password,
		Name:          form.Name,
		RequestedRole: form.RequestedRole,
		Reason:        form.Reason,
	})
	if err != nil {
		return v1.SignupRecord{}, err
	}
	if resp.StatusCode != http.StatusCreated {
		return v1.SignupRecord{}, fmt.Errorf("client: signup request rejected: %s", gateway.ErrorMessage(resp))
	}

	var rec v1.SignupRecord
	if err := gateway.DecodeJSON(resp, &rec); err != nil {
		return v1.SignupRecord{}, err
	}
	return rec, nil
}

func (c *Client) ListSignupRequests(ctx context.Context) ([]v1.SignupRecord, error) {
	resp, err := c.gateway.Do(ctx, http.MethodGet, "/admin/auth/signup-requests", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("client: list signup requests failed with status %d", resp.StatusCode)
	}

	var payload v1.SignupListResponse
	if err := gateway.DecodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *Client) ApproveSignupRequest(ctx context.Context, id string) (v1.SignupRecord, error) {
	return c.decideSignup(ctx, id, "approve")
}

func (c *Client) RejectSignupRequest(ctx context.Context, id string) (v1.SignupRecord, error) {
	return c.decideSignup(ctx, id, "reject")
}

func (c *Client) decideSignup(ctx context.Context, id, action string) (v1.SignupRecord, error) {
	resp, err := c.gateway.Do(ctx, http.MethodPost, "/admin/auth/signup-requests/"+id+"/"+action, nil)
	if err != nil {
		return v1.SignupRecord{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return v1.SignupRecord{}, fmt.Errorf("client: %s failed: %s", action, gateway.ErrorMessage(resp))
	}

	var rec v1.SignupRecord
	if err := gateway.DecodeJSON(resp, &rec); err != nil {
		return v1.SignupRecord{}, err
	}
	return rec, nil
}
