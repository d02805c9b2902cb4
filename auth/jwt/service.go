// Package jwt issues and verifies stateless HMAC-signed bearer tokens.
//
// A token carries exactly one claim, the subject:
//
//	{"alg":"HS256","typ":"JWT"} . {"sub":"alice"} . signature
//
// No expiry or issue time is embedded, so a given subject and secret always
// produce the same token and tokens stay valid for as long as the secret is
// unchanged. Revocation is achieved by removing the subject, which callers
// re-check after Verify.
//
// Usage:
//
//	svc, err := jwt.NewService(&jwt.Config{Secret: os.Getenv("AUTH_JWT_SECRET")})
//	token, err := svc.Issue("alice")
//	subject, err := svc.Verify(token)
//	if errors.Is(err, jwt.ErrBadSignature) { ... }
package jwt

import (
	"errors"
	"fmt"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Service issues and verifies subject tokens. It is safe for concurrent use.
type Service struct {
	cfg    Config
	parser *gojwt.Parser
}

// NewService creates a token service, applying defaults and validating cfg.
func NewService(cfg *Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return &Service{
		cfg:    *cfg,
		parser: gojwt.NewParser(
			gojwt.WithValidMethods([]string{cfg.signingMethod().Alg()}),
			gojwt.WithStrictDecoding(),
		),
	}, nil
}

// Method returns the configured signing algorithm.
func (s *Service) Method() SigningMethod {
	return s.cfg.Method
}

// Issue signs a token whose only claim is sub=subject.
func (s *Service) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("jwt: subject is required")
	}
	token := gojwt.NewWithClaims(s.cfg.signingMethod(), gojwt.RegisteredClaims{Subject: subject})
	signed, err := token.SignedString(s.cfg.key())
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and returns its subject. Failures are
// always *TokenError and match ErrMalformed, ErrBadSignature or
// ErrMissingSubject under errors.Is.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &gojwt.RegisteredClaims{}
	if _, err := s.parser.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return "", s.classify(tokenString, err)
	}
	if claims.Subject == "" {
		return "", &TokenError{Kind: KindMissingSubject}
	}
	return claims.Subject, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(token *gojwt.Token) (any, error) {
	if _, ok := token.Method.(*gojwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	if token.Method.Alg() != s.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return s.cfg.key(), nil
}

// classify maps golang-jwt validation errors onto TokenError kinds. A
// signature segment that is not canonical base64url can never match the MAC,
// so it is reported as a bad signature even though the parser calls the
// token malformed.
func (s *Service) classify(tokenString string, err error) *TokenError {
	switch {
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid),
		errors.Is(err, gojwt.ErrTokenUnverifiable),
		errors.Is(err, gojwt.ErrTokenMalformed) && s.badSignatureEncoding(tokenString):
		return &TokenError{Kind: KindBadSignature, Cause: err}
	default:
		return &TokenError{Kind: KindMalformed, Cause: err}
	}
}

// badSignatureEncoding reports whether header and claims decode but the
// signature segment does not.
func (s *Service) badSignatureEncoding(tokenString string) bool {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return false
	}
	for _, seg := range parts[:2] {
		if _, err := s.parser.DecodeSegment(seg); err != nil {
			return false
		}
	}
	_, err := s.parser.DecodeSegment(parts[2])
	return err != nil
}
