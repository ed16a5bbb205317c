package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/Tyrowin/chatroom/internal/server"
)

func parse(t *testing.T, args ...string) (*server.Config, error) {
	t.Helper()

	var cfg *server.Config
	cmd := newCommand()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		var err error
		cfg, err = loadConfig(c)
		return err
	}
	err := cmd.Run(context.Background(), append([]string{"chatroom"}, args...))
	return cfg, err
}

func TestLoadConfig_EnvFileThenFlags(t *testing.T) {
	req := require.New(t)
	envFile := filepath.Join(t.TempDir(), "chatroom.env")
	req.NoError(os.WriteFile(envFile, []byte("SEND_BUFFER_SIZE=64\nSERVER_PORT=:7000\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("SEND_BUFFER_SIZE")
		_ = os.Unsetenv("SERVER_PORT")
	})

	cfg, err := parse(t, "--env-file", envFile, "--port", ":9999", "--rejection-notices")
	req.NoError(err)
	req.Equal(64, cfg.SendBufferSize)
	req.Equal(":9999", cfg.Port)
	req.True(cfg.RejectionNotices)
	req.False(cfg.StrictIdentity)
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	cfg, err := parse(t, "--env-file", filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_InvalidFlagValue(t *testing.T) {
	_, err := parse(t, "--env-file", filepath.Join(t.TempDir(), "absent.env"), "--log-level", "loud")
	require.Error(t, err)
}

func TestLoadConfig_StrictIdentityNeedsSecret(t *testing.T) {
	_, err := parse(t, "--env-file", filepath.Join(t.TempDir(), "absent.env"), "--strict-identity")
	require.Error(t, err)
}
