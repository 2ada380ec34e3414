package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addServeFlags(cmd)
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newFlagCommand())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 3333, cfg.Server.Port)
	require.NotNil(t, cfg.Browser.Headless)
	assert.True(t, *cfg.Browser.Headless)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "browsd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\nlogging:\n  level: debug\n"), 0o644))

	cmd := newFlagCommand()
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("port", "9999"))
	require.NoError(t, cmd.Flags().Set("headless", "false"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port, "explicit flag wins over the file")
	assert.Equal(t, "debug", cfg.Logging.Level, "file value kept where no flag is set")
	require.NotNil(t, cfg.Browser.Headless)
	assert.False(t, *cfg.Browser.Headless)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cmd := newFlagCommand()
	require.NoError(t, cmd.Flags().Set("port", "0"))

	_, err := loadConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cmd := newFlagCommand()
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")))

	_, err := loadConfig(cmd)
	assert.Error(t, err)
}

func TestNewComponents(t *testing.T) {
	cfg, err := loadConfig(newFlagCommand())
	require.NoError(t, err)

	server, mgr, log := newComponents(cfg)
	require.NotNil(t, server)
	require.NotNil(t, mgr)
	require.NotNil(t, log)
	assert.False(t, mgr.Launched())
}
