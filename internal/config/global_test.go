package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearAppleEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvKeyID, "")
	t.Setenv(EnvIssuerID, "")
	t.Setenv(EnvKeyPath, "")
	os.Unsetenv(EnvKeyID)
	os.Unsetenv(EnvIssuerID)
	os.Unsetenv(EnvKeyPath)
}

func TestLoadGlobalFromEnv(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvKeyID, "ABC123XY45")
	t.Setenv(EnvIssuerID, "issuer-uuid")
	t.Setenv(EnvKeyPath, "/tmp/AuthKey.p8")

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "ABC123XY45", cfg.Apple.KeyID)
	require.Equal(t, "issuer-uuid", cfg.Apple.IssuerID)
	require.Equal(t, "/tmp/AuthKey.p8", cfg.Apple.KeyPath)
}

func TestLoadGlobalEnvIgnoresDiskFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	// A valid file on disk that must NOT win over the env triple.
	onDisk := "[apple]\nkey_id = \"DISK\"\nissuer_id = \"disk\"\nkey_path = \"/disk.p8\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(onDisk), 0o600))

	t.Setenv(EnvKeyID, "ENVKEY")
	t.Setenv(EnvIssuerID, "env-issuer")
	t.Setenv(EnvKeyPath, "/env.p8")

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "ENVKEY", cfg.Apple.KeyID)
}

func TestLoadGlobalPartialEnvFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	clearAppleEnv(t)
	t.Setenv(EnvKeyID, "ONLY_ONE_SET")

	onDisk := "[apple]\nkey_id = \"DISK\"\nissuer_id = \"disk\"\nkey_path = \"/disk.p8\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(onDisk), 0o600))

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "DISK", cfg.Apple.KeyID)
}

func TestLoadGlobalAbsentIsNone(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	clearAppleEnv(t)

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestLoadGlobalMalformedIsError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	clearAppleEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0o600))

	cfg, err := LoadGlobal()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestSaveGlobalRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(dir, "nested", "launchpad"))
	clearAppleEnv(t)

	in := &GlobalConfig{Apple: AppleConfig{
		KeyID:    "KEY99",
		IssuerID: "issuer-99",
		KeyPath:  "~/.launchpad/keys/AuthKey_KEY99.p8",
	}}
	require.NoError(t, SaveGlobal(in))

	// SaveGlobal also prepares the keys directory for credential copies.
	keysDir, err := KeysDir()
	require.NoError(t, err)
	info, err := os.Stat(keysDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	out, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, in.Apple, out.Apple)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(home, "x.p8"), ExpandTilde("~/x.p8"))
	require.Equal(t, home, ExpandTilde("~"))
	require.Equal(t, "/abs/x.p8", ExpandTilde("/abs/x.p8"))
	require.Equal(t, "rel/x.p8", ExpandTilde("rel/x.p8"))
	require.Equal(t, "~weird/x.p8", ExpandTilde("~weird/x.p8"))
}
