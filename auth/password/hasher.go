// Package password hashes and verifies user passwords. BcryptHasher is the
// default; Argon2Hasher stores argon2id digests in PHC string form.
//
//	hasher := password.NewHasher(cfg)
//	digest, err := hasher.Hash("pw1")
//	ok := hasher.Verify("pw1", digest)
package password

// Hasher turns passwords into salted digests and checks them.
type Hasher interface {
	// Hash returns a fresh salted digest on every call.
	Hash(password string) (string, error)

	// Verify is false for a wrong password and for a digest it cannot
	// parse. It never panics on stored input.
	Verify(password, digest string) bool
}

// NewHasher returns the Hasher selected by cfg, with defaults applied.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	if cfg.Algorithm == AlgorithmArgon2id {
		return NewArgon2Hasher(Argon2Params{
			Time:    cfg.Argon2Time,
			Memory:  cfg.Argon2Memory,
			Threads: cfg.Argon2Threads,
		})
	}
	return NewBcryptHasher(cfg.BcryptCost)
}
