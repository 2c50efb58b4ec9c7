package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrengthValidator(t *testing.T) {
	t.Run("default policy requires one uppercase letter", func(t *testing.T) {
		v, err := NewStrengthValidator(nil)
		require.NoError(t, err)

		assert.NoError(t, v.Validate(Input{Password: "Something"}))
		assert.Error(t, v.Validate(Input{Password: "something"}))
	})

	t.Run("configured minimums are enforced", func(t *testing.T) {
		v, err := NewStrengthValidator(map[string]any{
			"uppercase": 2,
			"numbers":   2,
			"special":   1,
		})
		require.NoError(t, err)

		assert.NoError(t, v.Validate(Input{Password: "AbC12!def"}))

		cases := map[string]string{
			"missing uppercase": "Abc12!def",
			"missing digit":     "AbC1!defg",
			"missing special":   "AbC12defg",
		}
		for name, pw := range cases {
			err := v.Validate(Input{Password: pw})
			require.Error(t, err, name)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr, name)
			// A single generic message, regardless of which rule failed.
			assert.Equal(t, "password is too weak", vErr.Message, name)
		}
	})

	t.Run("zero minimums accept anything", func(t *testing.T) {
		v, err := NewStrengthValidator(map[string]any{
			"uppercase": 0,
			"numbers":   0,
			"special":   0,
		})
		require.NoError(t, err)
		assert.NoError(t, v.Validate(Input{Password: ""}))
	})

	t.Run("parameters decoded as floats still apply", func(t *testing.T) {
		// JSON/YAML decoding can produce float64 for integer values.
		v, err := NewStrengthValidator(map[string]any{"numbers": float64(2)})
		require.NoError(t, err)
		assert.Error(t, v.Validate(Input{Password: "Abcdef1"}))
		assert.NoError(t, v.Validate(Input{Password: "Abcdef12"}))
	})
}
