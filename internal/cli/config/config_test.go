package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryscope/sqlfront/internal/cli/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Strict)
	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "text", cfg.Output)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict: true\noutput: json\n"), 0o644))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, "json", cfg.Output)
	// Untouched keys keep their defaults.
	assert.Equal(t, "ansi", cfg.Dialect)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: postgres\n"), 0o644))
	t.Setenv("SQLFRONT_DIALECT", "mysql")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SQLFRONT_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "text", "")
	require.NoError(t, flags.Parse([]string{"--output=text"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}
