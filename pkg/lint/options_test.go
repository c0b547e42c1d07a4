package lint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlassist/pkg/core"
)

func TestDecodeOptions(t *testing.T) {
	type settings struct {
		Enabled  bool          `mapstructure:"enabled"`
		Max      int           `mapstructure:"max"`
		Words    []string      `mapstructure:"words"`
		Timeout  time.Duration `mapstructure:"timeout"`
		Severity core.Severity `mapstructure:"severity"`
	}

	t.Run("weakly typed input", func(t *testing.T) {
		var s settings
		err := DecodeOptions(map[string]any{
			"enabled":  "true",
			"max":      "3",
			"words":    "drop,truncate",
			"timeout":  "2s",
			"severity": "info",
		}, &s)

		require.NoError(t, err)
		assert.True(t, s.Enabled)
		assert.Equal(t, 3, s.Max)
		assert.Equal(t, []string{"drop", "truncate"}, s.Words)
		assert.Equal(t, 2*time.Second, s.Timeout)
		assert.Equal(t, core.SeverityInfo, s.Severity)
	})

	t.Run("unknown key", func(t *testing.T) {
		var s settings
		err := DecodeOptions(map[string]any{"maxx": 1}, &s)
		assert.Error(t, err)
	})

	t.Run("empty keeps defaults", func(t *testing.T) {
		s := settings{Max: 7}
		require.NoError(t, DecodeOptions(nil, &s))
		assert.Equal(t, 7, s.Max)
	})
}

func TestConfig_NilSafe(t *testing.T) {
	var c *Config

	assert.False(t, c.IsDisabled("x"))
	_, ok := c.Severity("x")
	assert.False(t, ok)
	assert.Nil(t, c.Options("x"))
}
