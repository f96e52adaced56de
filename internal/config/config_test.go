package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/khabri/internal/api"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "")
	return dir
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, cfg.APIURL)
	assert.Equal(t, "http://localhost:8000/api/posts", cfg.APIURL)
	assert.Equal(t, filepath.Join(dir, ".khabri", "khabri.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	isolateHome(t)
	require.NoError(t, (&Config{APIURL: "http://file.test/api/posts"}).Save())

	t.Setenv(EnvAPIURL, "http://env.test/api/posts")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.test/api/posts", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFileValueUsedWhenEnvEmpty(t *testing.T) {
	isolateHome(t)
	require.NoError(t, (&Config{APIURL: "http://file.test/api/posts", LogFile: "/tmp/k.log"}).Save())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://file.test/api/posts", cfg.APIURL)
	assert.Equal(t, "/tmp/k.log", cfg.LogFile)
}

func TestWithAPIURLIgnoresBlank(t *testing.T) {
	cfg := Config{APIURL: "http://a.test"}
	assert.Equal(t, "http://a.test", cfg.WithAPIURL("  ").APIURL)
	assert.Equal(t, "http://b.test", cfg.WithAPIURL("http://b.test").APIURL)
	assert.Equal(t, "http://a.test", cfg.APIURL)
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	isolateHome(t)

	cfg := Config{APIURL: "http://localhost:9000/api/posts"}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(Dir())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestSaveConfigOverwritesExisting(t *testing.T) {
	isolateHome(t)

	require.NoError(t, (&Config{APIURL: "http://one.test"}).Save())
	require.NoError(t, (&Config{APIURL: "http://two.test"}).Save())

	loaded, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "http://two.test", loaded.APIURL)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	dir := isolateHome(t)
	cfgDir := filepath.Join(dir, ".khabri")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(""), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultBaseURL, cfg.APIURL)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := isolateHome(t)
	cfgDir := filepath.Join(dir, ".khabri")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("invalid: yaml: content:"), 0600))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	isolateHome(t)
	require.NoError(t, (&Config{APIURL: "http://a.test"}).Save())
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestSaveRestoresPermissionsOnExistingFile(t *testing.T) {
	isolateHome(t)
	require.NoError(t, (&Config{APIURL: "http://a.test"}).Save())
	require.NoError(t, os.Chmod(Path(), 0644))

	require.NoError(t, (&Config{APIURL: "http://b.test"}).Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".khabri")
	assert.Contains(t, path, "config.yaml")
}
