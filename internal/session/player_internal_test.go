package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
)

// lifecycleContext delivers a single message to Receive.
type lifecycleContext struct {
	actor.Context
	msg interface{}
}

func (that lifecycleContext) Message() interface{} {
	return that.msg
}

func TestPlayer_RestartCancelsSweep(t *testing.T) {
	player := NewPlayer(slog.New(slog.NewTextHandler(io.Discard, nil)), config.Game{}, "s1")

	// Given: a scheduled sweep
	cancelled := 0
	player.cancelSweep = func() { cancelled++ }

	// When: the supervisor restarts the actor
	player.Receive(lifecycleContext{msg: &actor.Restarting{}})

	// Then: the old timer is cancelled before Started schedules a new one
	assert.Equal(t, 1, cancelled)
	assert.Nil(t, player.cancelSweep)

	// Then: a later stop does not cancel it twice
	player.stopSweep()
	assert.Equal(t, 1, cancelled)
}
