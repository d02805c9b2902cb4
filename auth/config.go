package auth

import (
	"fmt"

	"github.com/kbukum/arraygate/auth/jwt"
	"github.com/kbukum/arraygate/auth/password"
	"github.com/kbukum/arraygate/util"
)

// Config holds all authentication configuration.
// It composes subpackage configs for loading from YAML/env via mapstructure.
type Config struct {
	// JWT configures token signing. The secret is normally supplied through
	// AUTH_JWT_SECRET rather than the config file.
	JWT jwt.Config `yaml:"jwt" mapstructure:"jwt"`

	// Password configures password hashing.
	Password password.Config `yaml:"password" mapstructure:"password"`

	// AcceptBearerHeader lets protected routes read the token from an
	// "Authorization: Bearer" header when the token query parameter is absent.
	AcceptBearerHeader *bool `yaml:"accept_bearer_header" mapstructure:"accept_bearer_header"`
}

// ApplyDefaults sets sensible defaults for the sub-configurations.
func (c *Config) ApplyDefaults() {
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
	if c.AcceptBearerHeader == nil {
		accept := true
		c.AcceptBearerHeader = &accept
	}
}

// Validate checks all sub-configurations.
func (c *Config) Validate() error {
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	return nil
}

// BearerHeaderEnabled reports whether the Authorization header fallback is on.
func (c *Config) BearerHeaderEnabled() bool {
	return c.AcceptBearerHeader == nil || *c.AcceptBearerHeader
}

// Describe returns a human-readable one-liner for the startup summary.
// Example: "JWT(HS256) secret=ab*** password=bcrypt(cost=12) bearer=on"
func (c *Config) Describe() string {
	bearer := "off"
	if c.BearerHeaderEnabled() {
		bearer = "on"
	}
	return fmt.Sprintf("JWT(%s) secret=%s password=%s bearer=%s",
		c.JWT.Method, util.MaskSecret(c.JWT.Secret, 2), c.Password.Describe(), bearer)
}
