package jwt

import (
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names an HMAC algorithm from the JWT "alg" header.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

var signingMethods = map[SigningMethod]*gojwt.SigningMethodHMAC{
	HS256: gojwt.SigningMethodHS256,
	HS384: gojwt.SigningMethodHS384,
	HS512: gojwt.SigningMethodHS512,
}

// Config is the auth.jwt section. Secret has no default and must be
// supplied, usually as AUTH_JWT_SECRET.
type Config struct {
	Secret string        `yaml:"secret" mapstructure:"secret"`
	Method SigningMethod `yaml:"method" mapstructure:"method"`
}

// ApplyDefaults selects HS256.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
}

func (c *Config) Validate() error {
	if _, ok := signingMethods[c.Method]; !ok {
		return fmt.Errorf("jwt: unsupported method %q (want HS256, HS384 or HS512)", c.Method)
	}
	if c.Secret == "" {
		return errors.New("jwt: secret is required")
	}
	return nil
}

// signingMethod falls back to HS256 for a config that skipped Validate.
func (c *Config) signingMethod() gojwt.SigningMethod {
	if m, ok := signingMethods[c.Method]; ok {
		return m
	}
	return gojwt.SigningMethodHS256
}

func (c *Config) key() []byte { return []byte(c.Secret) }
