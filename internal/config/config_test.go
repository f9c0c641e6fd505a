package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesOnlyDefinedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrorcrypt.toml")
	data := "field_count = 7\ndebug_delay = \"25ms\"\nkey_file = \" keys/a.mf \"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.GridSize)
	require.Equal(t, 7, cfg.FieldCount)
	require.Equal(t, 25*time.Millisecond, cfg.DebugDelay)
	require.Equal(t, "keys/a.mf", cfg.KeyFile)
	require.True(t, cfg.Base64)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParse_RawSmallGrid(t *testing.T) {
	cfg, err := Parse("grid_size = 4\nbase64 = false\nlog_level = \"trace\"\n")
	require.NoError(t, err)
	require.Equal(t, 4, cfg.GridSize)
	require.False(t, cfg.Base64)
	require.Equal(t, "trace", cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"GridTooLarge":   "grid_size = 65\nbase64 = false\n",
		"NoFields":       "field_count = 0\n",
		"Base64TooSmall": "grid_size = 8\n",
		"NegativeDelay":  "debug_delay = \"-1s\"\n",
		"UnknownKey":     "colour = \"red\"\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse("debug_delay = \"soon\"\n")
	require.Error(t, err)
	_, err = Parse("grid_size = [\n")
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
