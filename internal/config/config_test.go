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

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults when the file is missing", func(t *testing.T) {
		// Given: no config file
		path := filepath.Join(t.TempDir(), "missing.yml")

		// When: loading
		conf, err := Load(path)

		// Then: every timing falls back to its default
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, 30*time.Second, conf.Game.TurnTimeout)
		assert.Equal(t, 5*time.Second, conf.Game.RequestTimeout)
		assert.Equal(t, 45*time.Second, conf.Game.IdleLeave)
		assert.Equal(t, 60*time.Second, conf.Game.IdleExpire)
		assert.Equal(t, time.Second, conf.Game.SweepInterval)
		assert.Equal(t, 10*time.Second, conf.Bridge.HeartbeatInterval)
	})

	t.Run("Values from the file", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
socket-port: "9000"
game:
  turn-timeout: 10s
  idle-leave: 30s
  idle-expire: 45s
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9000", conf.SocketPort)
		assert.Equal(t, 10*time.Second, conf.Game.TurnTimeout)
		assert.Equal(t, 30*time.Second, conf.Game.IdleLeave)
		assert.Equal(t, 45*time.Second, conf.Game.IdleExpire)
		assert.Equal(t, 5*time.Second, conf.Game.RequestTimeout)
	})

	t.Run("Inverted idle thresholds are rejected", func(t *testing.T) {
		path := writeConfig(t, `
game:
  idle-leave: 60s
  idle-expire: 45s
`)

		_, err := Load(path)

		require.ErrorIs(t, err, ErrIdleThresholds)
	})

	t.Run("MustLoad panics on invalid config", func(t *testing.T) {
		path := writeConfig(t, `
game:
  turn-timeout: -1s
`)

		assert.Panics(t, func() { MustLoad(path) })
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Game: Game{
				TurnTimeout:    time.Second,
				RequestTimeout: time.Second,
				IdleLeave:      time.Second,
				IdleExpire:     2 * time.Second,
				SweepInterval:  time.Second,
			},
			Bridge: Bridge{
				HeartbeatInterval: time.Second,
				RequestTimeout:    time.Second,
			},
		}
	}

	conf := valid()
	require.NoError(t, conf.Validate())

	conf = valid()
	conf.Game.SweepInterval = 0
	require.ErrorIs(t, conf.Validate(), ErrNonPositiveDuration)

	conf = valid()
	conf.Bridge.RequestTimeout = -time.Second
	require.ErrorIs(t, conf.Validate(), ErrNonPositiveDuration)
}
