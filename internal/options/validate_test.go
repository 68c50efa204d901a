package options

import (
	"errors"
	"testing"

	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleInputSource(t *testing.T) {
	t.Run("exactly one", func(t *testing.T) {
		err := ValidateSingleInputSource("loader", map[string]bool{"WithFilePath": true, "WithReader": false})
		assert.NoError(t, err)
	})

	t.Run("none", func(t *testing.T) {
		err := ValidateSingleInputSource("loader", map[string]bool{
			"WithFilePath": false, "WithReader": false, "WithBytes": false,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		assert.Contains(t, err.Error(), "use WithBytes, WithFilePath or WithReader")
	})

	t.Run("several", func(t *testing.T) {
		err := ValidateSingleInputSource("loader", map[string]bool{
			"WithFilePath": true, "WithReader": true, "WithBytes": false,
		})
		require.Error(t, err)

		var cfgErr *oaserrors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "WithFilePath or WithReader", cfgErr.Value)
	})
}
