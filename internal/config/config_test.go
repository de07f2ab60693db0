package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[game]
level = "arena"
tick_rate = "50ms"
seed = 7

[ssh]
keys_per_second = 0

[logging]
format = "json"
`))
	require.NoError(t, err)
	assert.Equal(t, "arena", cfg.Game.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Game.TickRate)
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, 0, cfg.SSH.KeysPerSecond)
	assert.Equal(t, "json", cfg.Logging.Format)

	// untouched keys keep their defaults
	assert.Equal(t, 150, cfg.Game.TeleportDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.SSH.PollInterval)
	assert.NotZero(t, cfg.Server.StartTime)
}

func TestLoad_ZeroSeedIsRandomised(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[game]\nseed = 0\n"))
	require.NoError(t, err)
	assert.NotZero(t, cfg.Game.Seed)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	for name, body := range map[string]string{
		"syntax":     "[game\n",
		"tick rate":  "[game]\ntick_rate = \"0s\"\n",
		"level":      "[game]\nlevel = \"\"\n",
		"keys":       "[ssh]\nkeys_per_second = -1\n",
		"log format": "[logging]\nformat = \"xml\"\n",
	} {
		_, err := Load(writeConfig(t, body))
		assert.Error(t, err, name)
	}
}

func TestLoad_BundledConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "server.toml"))
	require.NoError(t, err)
	assert.Equal(t, "map01", cfg.Game.Level)
	assert.Equal(t, 70*time.Millisecond, cfg.Game.TickRate)
	assert.True(t, cfg.Metrics.Enabled)
}
