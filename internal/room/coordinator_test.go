package room_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/match"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
)

const settle = 200 * time.Millisecond

func enter(st *suite.Suite, sessionID, roomID string) *messages.EnterResult {
	st.Helper()

	result, err := address.Ask[*messages.EnterResult](st.System.Root, address.RoomCoordinator,
		&messages.EnterRoom{SessionID: sessionID, RoomID: roomID}, suite.Wait)
	require.NoError(st, err)

	return result
}

func TestCoordinator_Enter(t *testing.T) {
	_, st := suite.New(t)

	// When: the first session enters an unseen room
	result := enter(st, "s1", "lobby")

	// Then: a match is created and seats it first
	assert.True(t, result.Accepted)
	assert.Equal(t, match.ColorBlack, result.Color)

	// When: the room is full
	require.True(t, enter(st, "s2", "lobby").Accepted)
	result = enter(st, "s3", "lobby")

	// Then: the third session is turned away without an error
	assert.False(t, result.Accepted)
	assert.Equal(t, match.NoColor, result.Color)

	// When: a seated session enters its own room again
	result = enter(st, "s2", "lobby")

	// Then: it keeps its slot
	assert.True(t, result.Accepted)
	assert.Equal(t, match.ColorWhite, result.Color)
}

func TestCoordinator_ImplicitLeave(t *testing.T) {
	_, st := suite.New(t)

	// Given: two players sharing a room
	mover, stayer := st.Login(), st.Login()
	require.Equal(t, match.ColorBlack, mover.Enter("first"))
	require.Equal(t, match.ColorWhite, stayer.Enter("first"))
	stayer.Next(messages.ActionOpponentNickname)

	// When: one of them enters another room
	assert.Equal(t, match.ColorBlack, mover.Enter("second"))

	// Then: it was taken out of the first room
	gone, _ := stayer.Next(messages.ActionOpponentNickname).(*messages.OpponentNickname)
	assert.Nil(t, gone.Name)

	// Then: its old slot is free
	newcomer := st.Login()
	assert.Equal(t, match.ColorBlack, newcomer.Enter("first"))
}

func TestCoordinator_Eviction(t *testing.T) {
	_, st := suite.New(t)

	// Given: a room whose only occupant leaves
	require.True(t, enter(st, "s1", "short-lived").Accepted)
	address.Tell(st.System.Root, address.RoomCoordinator, &messages.LeaveRoom{SessionID: "s1"})

	// Then: the match actor is destroyed, its address has no handler
	require.Eventually(t, func() bool {
		_, err := address.Ask[*messages.EnterResult](st.System.Root, address.Match("short-lived"),
			&messages.Reset{SessionID: "nobody"}, 50*time.Millisecond)
		return errors.Is(err, apperror.ErrNoHandler)
	}, suite.Wait, 20*time.Millisecond)

	// When: someone enters the same room id
	result := enter(st, "s2", "short-lived")

	// Then: a fresh match seats it first
	assert.True(t, result.Accepted)
	assert.Equal(t, match.ColorBlack, result.Color)
}

func TestCoordinator_NoRoom(t *testing.T) {
	_, st := suite.New(t)

	// When: a session outside any room leaves or resets
	address.Tell(st.System.Root, address.RoomCoordinator, &messages.LeaveRoom{SessionID: "idle"})
	address.Tell(st.System.Root, address.RoomCoordinator, &messages.ResetRoom{SessionID: "idle"})

	// Then: nothing breaks and entering still works
	time.Sleep(settle)
	assert.True(t, enter(st, "idle", "after").Accepted)
}
