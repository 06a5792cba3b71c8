package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/anagrams/internal/config"
)

func TestConfigShow_YAML(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvSuffix, "txt")

	stdout, _, err := run(t, "", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "suffix: txt")
	assert.Contains(t, stdout, "cache_size: 1024")
}

func TestConfigShow_JSONIncludesFlags(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "config", "show", "--json", "--dir", "/words")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "/words", cfg.Dictionary.Dir)
}

func TestConfigInit_WritesProjectFile(t *testing.T) {
	isolate(t)

	// Given: no project config
	// When: init runs with a folder flag
	stdout, _, err := run(t, "", "config", "init", "--dir", "/words")
	require.NoError(t, err)

	// Then: .anagrams.yaml exists and loads back with the folder
	cwd, err := os.Getwd()
	require.NoError(t, err)
	path := filepath.Join(cwd, config.ProjectConfigName)
	assert.Contains(t, stdout, "Wrote "+path)

	cfg, err := config.Load(cwd)
	require.NoError(t, err)
	assert.Equal(t, "/words", cfg.Dictionary.Dir)
}

func TestConfigInit_DoesNotOverwriteWithoutForce(t *testing.T) {
	isolate(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	path := filepath.Join(cwd, config.ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte("dictionary:\n  dir: /keep\n"), 0o644))

	stdout, _, err := run(t, "", "config", "init", "--dir", "/other")
	require.NoError(t, err)
	assert.Contains(t, stdout, "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/keep")

	_, _, err = run(t, "", "config", "init", "--force", "--dir", "/other")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/other")
}

func TestConfigInit_User(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "config", "init", "--user")

	require.NoError(t, err)
	assert.FileExists(t, config.GetUserConfigPath())
}

func TestConfigPath(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "", "config", "path")

	require.NoError(t, err)
	assert.Equal(t, config.GetUserConfigPath()+"\n", stdout)
}
