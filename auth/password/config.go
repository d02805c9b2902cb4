package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Algorithm names a password hashing scheme.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Config selects and tunes the password hasher. Only the fields of the
// chosen Algorithm take effect.
type Config struct {
	Algorithm     Algorithm `yaml:"algorithm" mapstructure:"algorithm"`
	BcryptCost    int       `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
	Argon2Time    uint32    `yaml:"argon2_time" mapstructure:"argon2_time"`
	Argon2Memory  uint32    `yaml:"argon2_memory" mapstructure:"argon2_memory"` // KiB
	Argon2Threads uint8     `yaml:"argon2_threads" mapstructure:"argon2_threads"`
}

// ApplyDefaults selects bcrypt at cost 12 and fills unset argon2id fields
// from DefaultArgon2Params.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmBcrypt
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = defaultBcryptCost
	}
	d := DefaultArgon2Params
	if c.Argon2Time == 0 {
		c.Argon2Time = d.Time
	}
	if c.Argon2Memory == 0 {
		c.Argon2Memory = d.Memory
	}
	if c.Argon2Threads == 0 {
		c.Argon2Threads = d.Threads
	}
}

func (c *Config) Validate() error {
	if c.Algorithm != AlgorithmBcrypt && c.Algorithm != AlgorithmArgon2id {
		return fmt.Errorf("password: unsupported algorithm %q (want bcrypt or argon2id)", c.Algorithm)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("password: bcrypt_cost %d outside [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	// argon2 needs 8 KiB per lane.
	if c.Argon2Memory < 8*uint32(c.Argon2Threads) {
		return fmt.Errorf("password: argon2_memory %d KiB is below 8 KiB per thread", c.Argon2Memory)
	}
	return nil
}

// Describe is the one-line form logged at startup.
func (c *Config) Describe() string {
	if c.Algorithm == AlgorithmArgon2id {
		return fmt.Sprintf("argon2id(t=%d,m=%d,p=%d)", c.Argon2Time, c.Argon2Memory, c.Argon2Threads)
	}
	return fmt.Sprintf("bcrypt(cost=%d)", c.BcryptCost)
}
