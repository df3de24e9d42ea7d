package goAuthClient

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config defines a public type used by goAuthClient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Transport TransportConfig
	Session   SessionConfig
	TwoFactor TwoFactorConfig
	OAuth     OAuthConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
TRANSPORT CONFIG
====================================
*/

// TransportConfig defines a public type used by goAuthClient APIs.
//
// TransportConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TransportConfig struct {
	BaseURL string        `env:"GOAUTHCLIENT_BASE_URL"`
	Timeout time.Duration `env:"GOAUTHCLIENT_TIMEOUT"`
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goAuthClient APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// RefreshOnCommit controls whether committing an account (login,
	// two-factor success, continuation) triggers an immediate session
	// refresh against the authority.
	RefreshOnCommit bool `env:"GOAUTHCLIENT_SESSION_REFRESH_ON_COMMIT"`
}

/*
====================================
TWO-FACTOR CONFIG
====================================
*/

// TwoFactorConfig defines a public type used by goAuthClient APIs.
//
// TwoFactorConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TwoFactorConfig struct {
	MaxAttempts     int           `env:"GOAUTHCLIENT_2FA_MAX_ATTEMPTS"`
	LockoutDuration time.Duration `env:"GOAUTHCLIENT_2FA_LOCKOUT_DURATION"`
}

/*
====================================
OAUTH CONFIG
====================================
*/

// OAuthProviderConfig defines a public type used by goAuthClient APIs.
//
// OAuthProviderConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OAuthProviderConfig struct {
	ClientID string
	AuthURL  string
	TokenURL string
	Scopes   []string
}

// OAuthConfig defines a public type used by goAuthClient APIs.
//
// OAuthConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OAuthConfig struct {
	Providers        map[string]OAuthProviderConfig
	CallbackURL      string        `env:"GOAUTHCLIENT_OAUTH_CALLBACK_URL"`
	RetryMaxAttempts int           `env:"GOAUTHCLIENT_OAUTH_RETRY_MAX_ATTEMPTS"`
	RetryCooldown    time.Duration `env:"GOAUTHCLIENT_OAUTH_RETRY_COOLDOWN"`
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by goAuthClient APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool `env:"GOAUTHCLIENT_AUDIT_ENABLED"`
	BufferSize int  `env:"GOAUTHCLIENT_AUDIT_BUFFER"`
	DropIfFull bool `env:"GOAUTHCLIENT_AUDIT_DROP_IF_FULL"`
}

// MetricsConfig defines a public type used by goAuthClient APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool `env:"GOAUTHCLIENT_METRICS_ENABLED"`
}

func defaultConfig() Config {
	return Config{
		Transport: TransportConfig{
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			RefreshOnCommit: true,
		},
		TwoFactor: TwoFactorConfig{
			MaxAttempts:     5,
			LockoutDuration: 5 * time.Minute,
		},
		OAuth: OAuthConfig{
			RetryMaxAttempts: 3,
			RetryCooldown:    5 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

// ConfigFromEnv describes the configfromenv operation and its observable behavior.
//
// ConfigFromEnv may return an error when input validation, dependency calls, or security checks fail.
// ConfigFromEnv does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func ConfigFromEnv() (Config, error) {
	cfg := defaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.TwoFactor.MaxAttempts < 1 {
		return errors.New("TwoFactor.MaxAttempts must be at least 1")
	}
	if c.TwoFactor.LockoutDuration <= 0 {
		return errors.New("TwoFactor.LockoutDuration must be positive")
	}
	if c.OAuth.RetryMaxAttempts < 1 {
		return errors.New("OAuth.RetryMaxAttempts must be at least 1")
	}
	if c.OAuth.RetryCooldown <= 0 {
		return errors.New("OAuth.RetryCooldown must be positive")
	}
	if c.Transport.Timeout < 0 {
		return errors.New("Transport.Timeout must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}
	for name, provider := range c.OAuth.Providers {
		if name == "" {
			return errors.New("OAuth provider name must not be empty")
		}
		if provider.ClientID == "" || provider.AuthURL == "" {
			return errors.New("OAuth provider " + name + " requires ClientID and AuthURL")
		}
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.OAuth.Providers != nil {
		out.OAuth.Providers = make(map[string]OAuthProviderConfig, len(cfg.OAuth.Providers))
		for name, provider := range cfg.OAuth.Providers {
			cloned := provider
			cloned.Scopes = append([]string(nil), provider.Scopes...)
			out.OAuth.Providers[name] = cloned
		}
	}
	return out
}
