package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/amoeba-bot/internal/apperror"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults with flags", func(t *testing.T) {
		// When: only the join code is given
		config, err := Load([]string{"--join_code", "abc:42"}, io.Discard)

		// Then: the defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "abc:42", config.JoinCode)
		assert.Equal(t, DefaultURL, config.URL)
		assert.Equal(t, "weighted", config.Agent)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, time.Duration(0), config.PingInterval)
		assert.False(t, config.Redis.Enabled())
	})

	t.Run("Environment is read", func(t *testing.T) {
		// Given: the environment carries the options
		t.Setenv("AMOEBA_JOIN_CODE", "host:7")
		t.Setenv("AMOEBA_AGENT", "random")
		t.Setenv("REDIS_HOST", "cache")

		// When: loading without flags
		config, err := Load(nil, io.Discard)

		// Then: the environment values are used
		require.NoError(t, err)
		assert.Equal(t, "host:7", config.JoinCode)
		assert.Equal(t, "random", config.Agent)
		assert.True(t, config.Redis.Enabled())
		assert.Equal(t, "cache:6379", config.Redis.GetRedisAddr())
	})

	t.Run("Flags override the config file", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\njoin-code: file:1\nagent: random\nping-interval: 15s\nhttp-port: \"8081\"\nredis:\n  host: localhost\n  channel: feed\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it with an agent flag
		config, err := Load([]string{"--config", path, "--agent", "weighted"}, io.Discard)

		// Then: file values are used and the flag wins
		require.NoError(t, err)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "file:1", config.JoinCode)
		assert.Equal(t, "weighted", config.Agent)
		assert.Equal(t, 15*time.Second, config.PingInterval)
		assert.Equal(t, "8081", config.HTTPPort)
		assert.Equal(t, "feed", config.Redis.ChannelFor("1"))
	})

	t.Run("Missing join code", func(t *testing.T) {
		// When: no join code is given anywhere
		_, err := Load(nil, io.Discard)

		// Then: ErrJoinCodeRequired is returned
		require.ErrorIs(t, err, apperror.ErrJoinCodeRequired)
	})

	t.Run("Malformed join code", func(t *testing.T) {
		// When: the join code has no game id
		_, err := Load([]string{"--join_code", "abc"}, io.Discard)

		// Then: ErrInvalidJoinCode is returned
		require.ErrorIs(t, err, apperror.ErrInvalidJoinCode)
	})

	t.Run("Missing config file", func(t *testing.T) {
		// When: the config file does not exist
		_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yml"), "--join_code", "a:1"}, io.Discard)

		// Then: the error names the missing file
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestParseJoinCode(t *testing.T) {
	for _, tc := range []struct {
		value    string
		joinCode string
		gameID   string
		valid    bool
	}{
		{value: "abc:42", joinCode: "abc", gameID: "42", valid: true},
		{value: "abc", valid: false},
		{value: ":42", valid: false},
		{value: "abc:", valid: false},
		{value: "a:b:c", valid: false},
	} {
		t.Run(tc.value, func(t *testing.T) {
			joinCode, gameID, err := ParseJoinCode(tc.value)
			if !tc.valid {
				require.ErrorIs(t, err, apperror.ErrInvalidJoinCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.joinCode, joinCode)
			assert.Equal(t, tc.gameID, gameID)
		})
	}
}

func TestConfig_MatchURL(t *testing.T) {
	// Given: the default template
	config := &Config{JoinCode: "abc:42", URL: DefaultURL}

	// When: building the url
	url, err := config.MatchURL()

	// Then: game id and join code are filled in
	require.NoError(t, err)
	assert.Equal(t, "ws://online-amoeba.herokuapp.com/game/42/abc", url)
	assert.Equal(t, "42", config.GameID())
	assert.Equal(t, "amoeba:match:42", config.Redis.ChannelFor(config.GameID()))
}
