// Package gateway orchestrates registration, login and per-request
// authentication on top of the credential store, the password hasher and
// the token service.
//
// A request moves through Unauthenticated -> Authenticating and ends either
// Authenticated (Authenticate returned a username) or Rejected. Rejections
// are deliberately indistinguishable at the HTTP boundary; the wrapped
// causes exist for logs, spans and metrics only.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kbukum/arraygate/auth"
	"github.com/kbukum/arraygate/auth/jwt"
	"github.com/kbukum/arraygate/auth/password"
	"github.com/kbukum/arraygate/component"
	"github.com/kbukum/arraygate/credential"
	"github.com/kbukum/arraygate/logger"
	"github.com/kbukum/arraygate/observability"
)

var (
	// ErrUserExists is returned by Register when the username is taken.
	ErrUserExists = errors.New("gateway: user already exists")

	// ErrInvalidCredentials is returned by Login for an unknown user or a
	// wrong password, and by Authenticate when the token's subject is no
	// longer registered.
	ErrInvalidCredentials = errors.New("gateway: invalid credentials")

	// ErrInvalidToken is returned by Authenticate when the token does not
	// verify. It wraps the underlying *jwt.TokenError.
	ErrInvalidToken = errors.New("gateway: invalid token")
)

// dummyPassword is hashed once to give unknown-user logins a digest to
// verify against.
const dummyPassword = "arraygate-unknown-user"

// Gateway is the authentication orchestrator. It is safe for concurrent use.
type Gateway struct {
	store   credential.Store
	hasher  password.Hasher
	tokens  *jwt.Service
	log     *logger.Logger
	metrics *observability.Metrics

	dummyOnce   sync.Once
	dummyDigest string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger. Defaults to the global logger tagged "gateway".
func WithLogger(l *logger.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// WithMetrics records every operation on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// New creates a Gateway.
func New(store credential.Store, hasher password.Hasher, tokens *jwt.Service, opts ...Option) *Gateway {
	g := &Gateway{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.WithComponent("gateway")
	}
	return g
}

// Register creates a user. Hashing runs before the store's write lock is
// taken; a concurrent registration of the same name that wins the insert
// still yields ErrUserExists here.
func (g *Gateway) Register(ctx context.Context, username, plaintext string) (err error) {
	ctx, op := observability.StartOperation(ctx, g.metrics, "gateway", "register")
	defer func() { op.End(ctx, outcome(err), err) }()
	log := g.log.WithContext(ctx)

	if g.store.Exists(username) {
		log.Warn("registration rejected", logger.Fields(logger.FieldUserID, username, logger.FieldStatus, "exists"))
		return ErrUserExists
	}

	digest, err := g.hasher.Hash(plaintext)
	if err != nil {
		if !errors.Is(err, password.ErrPasswordTooLong) {
			log.WithError(err).Error("password hashing failed", logger.Fields(logger.FieldUserID, username))
		}
		return fmt.Errorf("gateway: hash password: %w", err)
	}

	if err := g.store.Insert(username, digest); err != nil {
		if errors.Is(err, credential.ErrDuplicateUser) {
			log.Warn("registration lost insert race", logger.Fields(logger.FieldUserID, username))
			return ErrUserExists
		}
		log.WithError(err).Error("storing user failed", logger.Fields(logger.FieldUserID, username))
		return fmt.Errorf("gateway: store user: %w", err)
	}

	log.Debug("user registered", logger.Fields(logger.FieldUserID, username))
	return nil
}

// Login verifies credentials and issues a token. Unknown users and wrong
// passwords both return ErrInvalidCredentials after one hash verification.
func (g *Gateway) Login(ctx context.Context, username, plaintext string) (token string, err error) {
	ctx, op := observability.StartOperation(ctx, g.metrics, "gateway", "login")
	defer func() { op.End(ctx, outcome(err), err) }()
	log := g.log.WithContext(ctx)

	rec, ok := g.store.Lookup(username)
	if !ok {
		g.hasher.Verify(plaintext, g.dummy())
		log.Warn("login rejected", logger.Fields(logger.FieldUserID, username, logger.FieldStatus, "unknown_user"))
		return "", ErrInvalidCredentials
	}
	if !g.hasher.Verify(plaintext, rec.PasswordHash) {
		log.Warn("login rejected", logger.Fields(logger.FieldUserID, username, logger.FieldStatus, "bad_password"))
		return "", ErrInvalidCredentials
	}

	token, err = g.tokens.Issue(username)
	if err != nil {
		log.WithError(err).Error("token signing failed", logger.Fields(logger.FieldUserID, username))
		return "", fmt.Errorf("gateway: issue token: %w", err)
	}

	log.Debug("login succeeded", logger.Fields(logger.FieldUserID, username))
	return token, nil
}

// Authenticate resolves a token to a registered username.
func (g *Gateway) Authenticate(ctx context.Context, token string) (username string, err error) {
	ctx, op := observability.StartOperation(ctx, g.metrics, "gateway", "authenticate")
	defer func() { op.End(ctx, outcome(err), err) }()

	subject, err := g.tokens.Verify(token)
	if err != nil {
		g.log.WithContext(ctx).Warn("token rejected", logger.Fields(logger.FieldStatus, outcome(err)))
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !g.store.Exists(subject) {
		g.log.WithContext(ctx).Warn("token subject not registered", logger.Fields(logger.FieldUserID, subject))
		return "", ErrInvalidCredentials
	}

	op.SetUser(subject)
	return subject, nil
}

// Validator adapts Authenticate to the auth middleware contract. The
// principal it yields is the username string.
func (g *Gateway) Validator() auth.TokenValidator {
	return auth.TokenValidatorFunc(func(ctx context.Context, token string) (any, error) {
		return g.Authenticate(ctx, token)
	})
}

// Health reports the credential store as a health entry.
func (g *Gateway) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    "credential-store",
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d users", g.store.Len()),
	}
}

// Warm computes the unknown-user digest ahead of the first login so that
// request never pays for it.
func (g *Gateway) Warm(context.Context) error {
	if g.dummy() == "" {
		return errors.New("gateway: hashing the unknown-user password failed")
	}
	return nil
}

// dummy returns a digest of dummyPassword produced by the configured hasher.
// A hashing failure leaves it empty, which Verify rejects just the same.
func (g *Gateway) dummy() string {
	g.dummyOnce.Do(func() {
		if d, err := g.hasher.Hash(dummyPassword); err == nil {
			g.dummyDigest = d
		}
	})
	return g.dummyDigest
}

// outcome names the result of an operation for spans and metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, jwt.ErrMalformed):
		return jwt.KindMalformed.String()
	case errors.Is(err, jwt.ErrBadSignature):
		return jwt.KindBadSignature.String()
	case errors.Is(err, jwt.ErrMissingSubject):
		return jwt.KindMissingSubject.String()
	case errors.Is(err, ErrUserExists):
		return "user_exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, password.ErrPasswordTooLong):
		return "password_too_long"
	default:
		return "error"
	}
}
