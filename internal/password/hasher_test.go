package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasherRoundTrip(t *testing.T) {
	for _, scheme := range []string{"bcrypt", "argon2id"} {
		t.Run(scheme, func(t *testing.T) {
			h, err := NewHasher([]string{scheme})
			require.NoError(t, err)

			encoded, err := h.Hash("correct horse battery staple")
			require.NoError(t, err)
			require.NotEmpty(t, encoded)
			assert.NotContains(t, encoded, "correct horse", "hash must not embed the plaintext")

			assert.True(t, h.Verify("correct horse battery staple", encoded))
			assert.False(t, h.Verify("incorrect horse battery staple", encoded))
		})
	}
}

func TestHasherAcceptsLongPasswords(t *testing.T) {
	// The domain admits passwords up to 128 characters, well past
	// bcrypt's raw 72-byte input limit. Every configured scheme must
	// round-trip the full accepted length.
	long := "A1!" + strings.Repeat("a", 125)

	for _, scheme := range []string{"bcrypt", "argon2id"} {
		t.Run(scheme, func(t *testing.T) {
			h, err := NewHasher([]string{scheme})
			require.NoError(t, err)

			encoded, err := h.Hash(long)
			require.NoError(t, err)
			assert.True(t, h.Verify(long, encoded))
			assert.False(t, h.Verify(long+"x", encoded))

			// A password differing only past byte 72 must not verify;
			// truncation would make these two indistinguishable.
			tail := long[:len(long)-1] + "b"
			assert.False(t, h.Verify(tail, encoded))
		})
	}
}

func TestHasherSchemeRotation(t *testing.T) {
	// A hash written under the old preferred scheme must stay verifiable
	// after rotation demotes that scheme to verify-only.
	old, err := NewHasher([]string{"bcrypt"})
	require.NoError(t, err)
	legacyHash, err := old.Hash("pre-rotation secret")
	require.NoError(t, err)

	rotated, err := NewHasher([]string{"argon2id", "bcrypt"})
	require.NoError(t, err)

	assert.True(t, rotated.Verify("pre-rotation secret", legacyHash))

	// New hashes come from the new preferred scheme.
	fresh, err := rotated.Hash("post-rotation secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fresh, "$argon2id$"))
	assert.True(t, rotated.Verify("post-rotation secret", fresh))
}

func TestHasherVerifyNeverErrors(t *testing.T) {
	h, err := NewHasher([]string{"bcrypt", "argon2id"})
	require.NoError(t, err)

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$garbage",
		"$argon2id$v=19$m=bad$salt$key",
		"$2a$truncated",
		"$unknown$v=1$x",
	}
	for _, encoded := range malformed {
		assert.False(t, h.Verify("password", encoded), "input %q", encoded)
	}
}

func TestNewHasher(t *testing.T) {
	t.Run("unknown scheme is rejected", func(t *testing.T) {
		_, err := NewHasher([]string{"md5"})
		assert.ErrorIs(t, err, ErrUnknownScheme)
	})

	t.Run("empty list defaults to bcrypt", func(t *testing.T) {
		h, err := NewHasher(nil)
		require.NoError(t, err)

		encoded, err := h.Hash("secret password")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "$2"), "expected a bcrypt hash, got %q", encoded)
	})
}
