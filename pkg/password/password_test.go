package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/pkg/config"
)

func TestScryptRoundTrip(t *testing.T) {
	h := NewScrypt(16)
	stored, err := h.Hash("admin123")
	require.NoError(t, err)

	hashed, salt, ok := strings.Cut(stored, ".")
	require.True(t, ok)
	assert.Len(t, hashed, 128)
	assert.Len(t, salt, 32)

	ok, err = h.Verify(stored, "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(stored, "admin124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScryptSaltsDiffer(t *testing.T) {
	h := NewScrypt(8)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestScryptMalformed(t *testing.T) {
	h := NewScrypt(16)
	for _, stored := range []string{"", "nodot", "zz.salt", "abcd.salt"} {
		_, err := h.Verify(stored, "x")
		assert.ErrorIs(t, err, ErrMalformedHash, stored)
	}
}

func TestBcryptRoundTrip(t *testing.T) {
	h := NewBcrypt(4)
	stored, err := h.Hash("secret")
	require.NoError(t, err)

	ok, err := h.Verify(stored, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(stored, "other")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify("not-a-hash", "secret")
	assert.ErrorIs(t, err, ErrMalformedHash)
}

func TestBcryptRejectsLongPasswords(t *testing.T) {
	h := NewBcrypt(4)
	_, err := h.Hash(strings.Repeat("€", 25))
	assert.ErrorIs(t, err, ErrTooLong)

	stored, err := h.Hash(strings.Repeat("a", MaxBcryptBytes))
	require.NoError(t, err)
	ok, err := h.Verify(stored, strings.Repeat("a", MaxBcryptBytes))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewSelectsAlgorithm(t *testing.T) {
	h, err := New(config.PasswordConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Scrypt{}, h)

	h, err = New(config.PasswordConfig{Algorithm: AlgorithmBcrypt, BcryptCost: 4})
	require.NoError(t, err)
	assert.IsType(t, &Bcrypt{}, h)

	_, err = New(config.PasswordConfig{Algorithm: "md5"})
	assert.Error(t, err)
}
