package application_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	app "github.com/rocketscienceinc/gomoku-backend/internal"
	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

func TestDeploy(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	conf, err := config.Load("testdata/missing.yml")
	require.NoError(t, err)

	// Given: a deployed runtime with default timings
	runtime, err := app.Deploy(logger, conf)
	require.NoError(t, err)

	// Then: the login front door issues an identity
	reply, err := address.Ask[*messages.ClientReply](runtime.System.Root, address.Login,
		&messages.ClientRequest{Payload: []byte(`{"action":"new uuid"}`)}, time.Second)
	require.NoError(t, err)

	sessionID := gjson.GetBytes(reply.Payload, "uuid").String()
	require.NotEmpty(t, sessionID)

	// Then: every shared service answers
	elapsed, err := address.Ask[*messages.Elapsed](runtime.System.Root, address.PresenceTracker,
		&messages.GetElapsed{SessionID: sessionID}, time.Second)
	require.NoError(t, err)
	assert.True(t, elapsed.Seen)

	nickname, err := address.Ask[*messages.Nickname](runtime.System.Root, address.NicknameDirectory,
		&messages.GetNickname{SessionID: sessionID}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "player 0", nickname.Name)

	// When: the runtime is stopped
	runtime.Stop()
}
