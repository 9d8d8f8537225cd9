// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"bookmarkd/config"
	"bookmarkd/internal/domain/service"
)

// Default argon2id parameters, used when the config section is absent.
const (
	defaultMemory      uint32 = 64 * 1024 // KiB
	defaultIterations  uint32 = 3
	defaultParallelism uint8  = 2
	defaultSaltLength  uint32 = 16
	defaultKeyLength   uint32 = 32
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface
// using the memory-hard argon2id function. Hashes are stored in the standard
// PHC string format, so the parameters travel with each hash and can be
// tuned without invalidating existing records.
type argon2Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewArgon2Hasher is the constructor for argon2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	hasher := &argon2Hasher{
		memory:      defaultMemory,
		iterations:  defaultIterations,
		parallelism: defaultParallelism,
		saltLength:  defaultSaltLength,
		keyLength:   defaultKeyLength,
	}

	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.Argon2Memory > 0 {
			hasher.memory = cfg.Auth.Argon2Memory
		}
		if cfg.Auth.Argon2Iterations > 0 {
			hasher.iterations = cfg.Auth.Argon2Iterations
		}
		if cfg.Auth.Argon2Parallelism > 0 {
			hasher.parallelism = cfg.Auth.Argon2Parallelism
		}
	}

	return hasher
}

// Hash generates a salted argon2id hash from a plaintext password.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memory, h.parallelism, h.keyLength)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.iterations,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Check compares a plaintext password with an encoded argon2id hash.
// Malformed hashes simply fail the check.
func (h *argon2Hasher) Check(password, hash string) bool {
	memory, iterations, parallelism, salt, key, err := decodeHash(hash)
	if err != nil {
		return false
	}

	otherKey := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, otherKey) == 1
}

// decodeHash parses a PHC-formatted argon2id string back into its parameters.
func decodeHash(hash string) (memory, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid argon2id hash format")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid argon2id version segment: %w", err)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var par uint32
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &par); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid argon2id parameter segment: %w", err)
	}
	parallelism = uint8(par)

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid argon2id salt encoding: %w", err)
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid argon2id key encoding: %w", err)
	}

	return memory, iterations, parallelism, salt, key, nil
}
