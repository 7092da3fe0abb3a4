package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadDefaults(t *testing.T) {
	c, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.NoError(t, c.Validate())
	assert.True(t, c.Development())
	assert.Equal(t, []string{"*"}, c.Origins)
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `{
		"mode": "production",
		"addr": ":9000",
		"cors_origins": ["https://mines.example.com"],
		"log": {"level": "warn", "file": "/tmp/mines.log"},
		"game": {"width": 16, "height": 16, "mine_count": 40, "clear_clusters": true},
		"session": {"secret": "s3cret", "idle_timeout": "5m"}
	}`)

	c, err := Read(path)
	require.NoError(t, err)
	assert.True(t, c.Production())
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, []string{"https://mines.example.com"}, c.Origins)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, 10, c.Log.MaxSizeMB)
	assert.Equal(t, "16:16:40:1:1", c.Game.Params().Seed())
	assert.Equal(t, 5*time.Minute, c.Session.IdleTimeout.Duration)
	assert.Equal(t, 1024, c.Session.MaxSessions)
	assert.NoError(t, c.Validate())

	fields := c.Fields()
	assert.Equal(t, true, fields["session_secret_set"])
	assert.NotContains(t, fields, "session_secret")
}

func TestReadEnvOverrides(t *testing.T) {
	t.Setenv("MINES_ADDR", ":7000")
	t.Setenv("MINES_SESSION_SECRET", "from-env")
	path := writeConfig(t, `{"addr": ":9000"}`)

	c, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Addr)
	assert.Equal(t, "from-env", c.Session.Secret)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Read(writeConfig(t, `{"session": {"idle_timeout": true}}`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Game.MineCount = 81
	assert.Error(t, c.Validate())

	c = Default()
	c.Mode = "production"
	assert.Error(t, c.Validate())
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
	assert.Equal(t, 90*time.Minute, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, d.Duration)

	b, err := json.Marshal(Duration{time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1s"`, string(b))
}
