package jwt

import "fmt"

// ErrorKind classifies why a token failed verification.
type ErrorKind int

const (
	// KindMalformed means the token could not be decoded into acceptable claims.
	KindMalformed ErrorKind = iota + 1
	// KindBadSignature means the signature did not verify against the secret.
	KindBadSignature
	// KindMissingSubject means the token verified but carries no subject.
	KindMissingSubject
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindBadSignature:
		return "bad_signature"
	case KindMissingSubject:
		return "missing_subject"
	default:
		return "unknown"
	}
}

// TokenError is returned by Service.Verify. Callers at the HTTP boundary
// collapse every kind into one generic 401; the kind exists for logs,
// metrics and tests.
type TokenError struct {
	Kind  ErrorKind
	Cause error
}

// Sentinels for errors.Is matching on kind.
var (
	ErrMalformed      = &TokenError{Kind: KindMalformed}
	ErrBadSignature   = &TokenError{Kind: KindBadSignature}
	ErrMissingSubject = &TokenError{Kind: KindMissingSubject}
)

func (e *TokenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("jwt: %s: %v", e.Kind, e.Cause)
	}
	return "jwt: " + e.Kind.String()
}

func (e *TokenError) Unwrap() error { return e.Cause }

// Is matches any TokenError of the same kind.
func (e *TokenError) Is(target error) bool {
	t, ok := target.(*TokenError)
	return ok && t.Kind == e.Kind
}
