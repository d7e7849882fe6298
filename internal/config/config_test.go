package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_MissingObfuscationKey(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	_, err := Load()
	if !errors.Is(err, ErrMissingObfuscationKey) {
		t.Fatalf("Load() error = %v, want ErrMissingObfuscationKey", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("REWEAR_AUTH_OBFUSCATION_KEY", "unit-test-key")
	t.Setenv("REWEAR_API_BASE_URL", "https://api.example.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.ObfuscationKey != "unit-test-key" {
		t.Errorf("ObfuscationKey = %q, want %q", cfg.Auth.ObfuscationKey, "unit-test-key")
	}
	if cfg.API.BaseURL != "https://api.example.test" {
		t.Errorf("BaseURL = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("Timeout default = %v, want 10s", cfg.API.Timeout)
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("REWEAR_AUTH_OBFUSCATION_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mock.Port != ":8080" {
		t.Errorf("Mock.Port = %q, want :8080", cfg.Mock.Port)
	}
	if cfg.Mock.AccessTokenTTL != 15*time.Minute {
		t.Errorf("AccessTokenTTL = %v, want 15m", cfg.Mock.AccessTokenTTL)
	}
	if cfg.Mock.LoginRatePerSec != 5 {
		t.Errorf("LoginRatePerSec = %d, want 5", cfg.Mock.LoginRatePerSec)
	}
}
