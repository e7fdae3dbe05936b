package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semtrack/pkg/palette"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields nil without error", func(t *testing.T) {
		chdir(t, t.TempDir())

		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("fills defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "semtrack.yaml")
		require.NoError(t, os.WriteFile(path, []byte("project: uni\n"), 0644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, "uni", config.Project)
		assert.Equal(t, "file", config.Storage.Backend)
		assert.Equal(t, palette.DefaultColor, config.Defaults.Color)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "semtrack.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n\t-broken"), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "semtrack.yaml")

		config := DefaultConfig()
		config.Project = "uni"
		config.Storage.Backend = "postgres"
		config.Storage.URL = "postgres://localhost/semtrack"
		config.Defaults.Semester = "WS24"
		require.NoError(t, SaveConfig(config, path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, config, loaded)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("environment overrides config values", func(t *testing.T) {
		t.Setenv("SEMTRACK_BACKEND", "postgres")
		t.Setenv("SEMTRACK_DATABASE_URL", "postgres://env/semtrack")
		t.Setenv("SEMTRACK_SEMESTER", "SS25")

		config := DefaultConfig()
		ApplyEnv(config)

		assert.Equal(t, "postgres", config.Storage.Backend)
		assert.Equal(t, "postgres://env/semtrack", config.Storage.URL)
		assert.Equal(t, "SS25", config.Defaults.Semester)
	})

	t.Run("unset variables leave config alone", func(t *testing.T) {
		config := DefaultConfig()
		config.Storage.Dir = "/data"
		ApplyEnv(config)

		assert.Equal(t, "/data", config.Storage.Dir)
	})
}

func TestStorageTarget(t *testing.T) {
	config := DefaultConfig()
	config.Storage.Dir = "/data"
	config.Storage.URL = "postgres://localhost/semtrack"

	assert.Equal(t, "/data", storageTarget(config))

	config.Storage.Backend = "postgres"
	assert.Equal(t, "postgres://localhost/semtrack", storageTarget(config))
}
