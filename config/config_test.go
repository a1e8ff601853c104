package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlagsDefaults(t *testing.T) {
	c := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--max-depth=50", "--cache=false"}))
	assert.Equal(t, 50, c.MaxDepth)
	assert.False(t, c.CacheEnabled)
}

func TestFromYAMLMissingFileIsNotError(t *testing.T) {
	c := NewConfig()
	assert.NoError(t, c.FromYAML(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestFromYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bjsonctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 10\nlog_level: debug\n"), 0o644))

	c := NewConfig()
	require.NoError(t, c.FromYAML(path))
	assert.Equal(t, 10, c.MaxDepth)
	assert.Equal(t, "debug", c.LogLevel)
}
