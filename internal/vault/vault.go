// Package vault is the single source of truth for whether the client
// currently holds admin credentials. Tokens pass through the obfuscation
// codec on the way to the backing medium and back.
package vault

import (
	"fmt"

	"rewearadmin/internal/codec"
	"rewearadmin/pkg/logger"

	"go.uber.org/zap"
)

const (
	accessTokenKey  = "rewear.admin.access_token"
	refreshTokenKey = "rewear.admin.refresh_token"
)

// Pair is the credential pair issued by a successful login. TokenType and
// ExpiresIn are informational; only the two tokens are persisted.
type Pair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}

type Vault struct {
	codec  *codec.Codec
	medium Medium
}

func New(c *codec.Codec, m Medium) *Vault {
	return &Vault{codec: c, medium: m}
}

// SetTokens replaces any prior pair. Both writes are attempted in order and
// the first failure is returned; a partial write leaves the store in a state
// the presence check still interprets safely.
func (v *Vault) SetTokens(p Pair) error {
	if err := v.medium.Set(accessTokenKey, v.codec.Encode(p.AccessToken)); err != nil {
		return fmt.Errorf("vault: persist access token: %w", err)
	}
	if err := v.medium.Set(refreshTokenKey, v.codec.Encode(p.RefreshToken)); err != nil {
		return fmt.Errorf("vault: persist refresh token: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token, or "" when absent. A value
// that no longer decodes is purged and reported absent, so one corrupt entry
// cannot wedge the client.
func (v *Vault) AccessToken() string {
	return v.read(accessTokenKey)
}

// RefreshToken returns the stored refresh token, or "" when absent. The
// refresh token is captured for contract completeness; no renewal flow
// consumes it.
func (v *Vault) RefreshToken() string {
	return v.read(refreshTokenKey)
}

func (v *Vault) read(key string) string {
	stored, ok, err := v.medium.Get(key)
	if err != nil {
		logger.Warn("vault: read failed, treating as absent", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	plain, err := v.codec.Decode(stored)
	if err != nil {
		logger.Warn("vault: stored token is corrupt, purging", zap.String("key", key), zap.Error(err))
		if derr := v.medium.Delete(key); derr != nil {
			logger.Warn("vault: purge failed", zap.String("key", key), zap.Error(derr))
		}
		return ""
	}
	return plain
}

// Clear removes both tokens unconditionally and is safe to call repeatedly.
func (v *Vault) Clear() error {
	aerr := v.medium.Delete(accessTokenKey)
	rerr := v.medium.Delete(refreshTokenKey)
	if aerr != nil {
		return fmt.Errorf("vault: clear access token: %w", aerr)
	}
	if rerr != nil {
		return fmt.Errorf("vault: clear refresh token: %w", rerr)
	}
	return nil
}

// Authenticated reports credential presence only. It says nothing about
// server-side validity or expiry.
func (v *Vault) Authenticated() bool {
	return v.AccessToken() != ""
}
