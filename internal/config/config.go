package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingObfuscationKey is returned when no token obfuscation key is
// configured. The auth subsystem refuses to start without one rather than
// writing credentials under an undefined key.
var ErrMissingObfuscationKey = errors.New("config: auth.obfuscation_key is required")

type Config struct {
	Server Server `mapstructure:"server"`
	API    API    `mapstructure:"api"`
	Auth   Auth   `mapstructure:"auth"`
	Mock   Mock   `mapstructure:"mock"`
}

type Server struct {
	Environment string `mapstructure:"environment"`
}

type API struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Auth struct {
	// ObfuscationKey is the shared key for the reversible token codec. It
	// ships with the client and deters casual inspection only; it is not a
	// confidentiality boundary.
	ObfuscationKey string `mapstructure:"obfuscation_key"`
	// VaultPath overrides where the token record file lives. Empty means the
	// per-user config directory.
	VaultPath string `mapstructure:"vault_path"`
}

// Mock configures the bundled mock admin backend (cmd/mockadmin).
type Mock struct {
	Port              string        `mapstructure:"port"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenTTL    time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL   time.Duration `mapstructure:"refresh_token_ttl"`
	RedisAddr         string        `mapstructure:"redis_addr"`
	RedisPassword     string        `mapstructure:"redis_password"`
	RedisDB           int           `mapstructure:"redis_db"`
	LoginRatePerSec   int           `mapstructure:"login_rate_per_sec"`
	AllowedWebOrigins []string      `mapstructure:"allowed_web_origins"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("REWEAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Auth.ObfuscationKey == "" {
		// The config is still returned: components that never touch the
		// codec (the mock backend) may proceed, the auth subsystem must not.
		return &cfg, ErrMissingObfuscationKey
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.environment", "dev")
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", 10*time.Second)
	// Empty defaults so AutomaticEnv can satisfy these without a config file.
	viper.SetDefault("auth.obfuscation_key", "")
	viper.SetDefault("auth.vault_path", "")
	viper.SetDefault("mock.port", ":8080")
	viper.SetDefault("mock.jwt_secret", "rewear-mock-admin-secret")
	viper.SetDefault("mock.access_token_ttl", 15*time.Minute)
	viper.SetDefault("mock.refresh_token_ttl", 7*24*time.Hour)
	viper.SetDefault("mock.redis_addr", "localhost:6379")
	viper.SetDefault("mock.login_rate_per_sec", 5)
}
