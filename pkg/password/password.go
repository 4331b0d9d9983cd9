// Package password hashes and verifies user passwords.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"

	"github.com/noah-isme/edusync-api/pkg/config"
)

// Supported algorithms.
const (
	AlgorithmScrypt = "scrypt"
	AlgorithmBcrypt = "bcrypt"
)

const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
)

var (
	// ErrMalformedHash is returned when a stored hash cannot be parsed.
	ErrMalformedHash = errors.New("password: malformed hash")
	// ErrTooLong is returned for passwords bcrypt cannot hash.
	ErrTooLong = errors.New("password: longer than 72 bytes")
)

// MaxBcryptBytes is the longest password bcrypt accepts.
const MaxBcryptBytes = 72

// Hasher turns plaintext passwords into stored hashes and back.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) (bool, error)
}

// New builds the hasher selected by configuration.
func New(cfg config.PasswordConfig) (Hasher, error) {
	switch cfg.Algorithm {
	case "", AlgorithmScrypt:
		return NewScrypt(cfg.SaltBytes), nil
	case AlgorithmBcrypt:
		return NewBcrypt(cfg.BcryptCost), nil
	default:
		return nil, fmt.Errorf("password: unknown algorithm %q", cfg.Algorithm)
	}
}

// Scrypt stores hashes as "<hex key>.<hex salt>". The salt passed to scrypt
// is the hex text itself, not the decoded bytes.
type Scrypt struct {
	saltBytes int
}

// NewScrypt returns a scrypt hasher drawing saltBytes of random salt.
func NewScrypt(saltBytes int) *Scrypt {
	if saltBytes <= 0 {
		saltBytes = 16
	}
	return &Scrypt{saltBytes: saltBytes}
}

func (s *Scrypt) Hash(plain string) (string, error) {
	buf := make([]byte, s.saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(buf)
	key, err := derive(plain, salt)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + salt, nil
}

func (s *Scrypt) Verify(stored, plain string) (bool, error) {
	hashed, salt, ok := strings.Cut(stored, ".")
	if !ok || salt == "" {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(hashed)
	if err != nil || len(want) != scryptKeyLen {
		return false, ErrMalformedHash
	}
	got, err := derive(plain, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

func derive(plain, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(plain), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt: %w", err)
	}
	return key, nil
}

// Bcrypt wraps golang.org/x/crypto/bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt hasher; out of range costs fall back to the default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	if len(plain) > MaxBcryptBytes {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

func (b *Bcrypt) Verify(stored, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrMalformedHash
	}
}
