package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2KeyLen  = 32
	argon2SaltLen = 16

	// argon2MaxMemory caps the KiB a stored digest may ask for (1 GiB).
	argon2MaxMemory = 1 << 20
)

// Argon2Params are the argon2id cost parameters. Memory is in KiB.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultArgon2Params is the OWASP baseline: one pass over 64 MiB with
// four lanes.
var DefaultArgon2Params = Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4}

func (p Argon2Params) valid() bool {
	return p.Time > 0 && p.Threads > 0 && p.Memory > 0 && p.Memory <= argon2MaxMemory
}

// Argon2Hasher hashes with argon2id and encodes digests as
// $argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<key>.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher returns a hasher for p. Invalid parameters fall back to
// DefaultArgon2Params.
func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	if !p.valid() {
		p = DefaultArgon2Params
	}
	return &Argon2Hasher{params: p}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: argon2 salt: %w", err)
	}
	d := argon2Digest{
		params: h.params,
		salt:   salt,
		key:    argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, argon2KeyLen),
	}
	return d.String(), nil
}

// Verify recomputes the key with the digest's own parameters, so digests
// made under older settings keep verifying.
func (h *Argon2Hasher) Verify(password, digest string) bool {
	d, ok := parseArgon2Digest(digest)
	if !ok {
		return false
	}
	p := d.params
	key := argon2.IDKey([]byte(password), d.salt, p.Time, p.Memory, p.Threads, uint32(len(d.key)))
	return subtle.ConstantTimeCompare(key, d.key) == 1
}

type argon2Digest struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func (d argon2Digest) String() string {
	enc := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s", argon2.Version,
		d.params.Memory, d.params.Time, d.params.Threads,
		enc.EncodeToString(d.salt), enc.EncodeToString(d.key))
}

// parseArgon2Digest accepts only what argon2.IDKey can run without
// panicking or allocating more than argon2MaxMemory.
func parseArgon2Digest(s string) (argon2Digest, bool) {
	var d argon2Digest
	fields := strings.Split(s, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return d, false
	}
	if fields[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return d, false
	}
	p := &d.params
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil || !p.valid() {
		return d, false
	}

	var err error
	enc := base64.RawStdEncoding
	if d.salt, err = enc.DecodeString(fields[4]); err != nil {
		return d, false
	}
	if d.key, err = enc.DecodeString(fields[5]); err != nil || len(d.key) == 0 {
		return d, false
	}
	return d, true
}
