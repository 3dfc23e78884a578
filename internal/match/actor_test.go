package match_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/match"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
)

const quiet = 200 * time.Millisecond

var leaveRoom = map[string]interface{}{"action": "leave room"}

// seat - two fresh players in the room, black first.
func seat(st *suite.Suite, roomID string) (*suite.Client, *suite.Client) {
	st.Helper()

	black, white := st.Login(), st.Login()
	require.Equal(st, match.ColorBlack, black.Enter(roomID))
	require.Equal(st, match.ColorWhite, white.Enter(roomID))

	return black, white
}

func TestMatch_Enter(t *testing.T) {
	_, st := suite.New(t)

	// Given: two players seated in a room
	black, white := seat(st, "room-1")

	// Then: each learns the other's nickname
	toBlack, _ := black.Next(messages.ActionOpponentNickname).(*messages.OpponentNickname)
	toWhite, _ := white.Next(messages.ActionOpponentNickname).(*messages.OpponentNickname)
	require.NotNil(t, toBlack.Name)
	require.NotNil(t, toWhite.Name)
	assert.Equal(t, white.Nickname, *toBlack.Name)
	assert.Equal(t, black.Nickname, *toWhite.Name)

	// When: a third player tries the same room
	third := st.Login()

	// Then: there is no slot for it
	assert.Equal(t, match.NoColor, third.Enter("room-1"))
}

func TestMatch_Win(t *testing.T) {
	_, st := suite.New(t)

	// Given: black builds a column while white plays elsewhere
	black, white := seat(st, "room-win")
	black.Play([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{0, 4})
	white.Play([2]int{5, 0}, [2]int{5, 1}, [2]int{5, 2}, [2]int{5, 3})

	// Then: white sees black's first move
	put, _ := white.Next(messages.ActionPut).(*messages.Put)
	assert.Equal(t, &messages.Put{X: 0, Y: 0}, put)

	// Then: the fifth stone wins for black on both sides
	assert.Equal(t, match.ColorBlack, black.Winner())
	assert.Equal(t, match.ColorBlack, white.Winner())
}

func TestMatch_Draw(t *testing.T) {
	_, st := suite.New(t)

	// Given: moves that fill the board without five in a row
	black, white := seat(st, "room-draw")

	var blackMoves, whiteMoves [][2]int
	for x := 0; x < gomoku.Size; x++ {
		for y := 0; y < gomoku.Size; y++ {
			if (x/2+y)%2 == 0 {
				blackMoves = append(blackMoves, [2]int{x, y})
			} else {
				whiteMoves = append(whiteMoves, [2]int{x, y})
			}
		}
	}
	require.Len(t, blackMoves, gomoku.Cells/2)

	black.Play(blackMoves...)
	white.Play(whiteMoves...)

	// Then: the run ends with no winner
	assert.Equal(t, messages.NoWinner, black.Winner())
	assert.Equal(t, messages.NoWinner, white.Winner())
}

func TestMatch_InvalidMove(t *testing.T) {
	t.Run("Occupied cell", func(t *testing.T) {
		_, st := suite.New(t)

		// Given: white answers with black's cell
		black, white := seat(st, "room-occupied")
		black.Play([2]int{4, 4})
		white.Play([2]int{4, 4})

		// Then: white loses the run
		assert.Equal(t, match.ColorBlack, black.Winner())
		assert.Equal(t, match.ColorBlack, white.Winner())
	})

	t.Run("Out of bounds", func(t *testing.T) {
		_, st := suite.New(t)

		black, white := seat(st, "room-bounds")
		black.Play([2]int{gomoku.Size, 0})

		assert.Equal(t, match.ColorWhite, white.Winner())
		assert.True(t, white.Silent(messages.ActionPut, quiet))
	})
}

func TestMatch_ForfeitByTimeout(t *testing.T) {
	_, st := suite.New(t, suite.WithTurnTimeout(150*time.Millisecond))

	// Given: black never answers its move request
	black, white := seat(st, "room-timeout")
	black.Next(messages.ActionToPut)

	// Then: white wins once the deadline passes
	assert.Equal(t, match.ColorWhite, white.Winner())
	assert.Equal(t, match.ColorWhite, black.Winner())

	// When: the late answer finally arrives
	black.AnswerPending(0, 0)

	// Then: it is discarded
	assert.True(t, white.Silent(messages.ActionPut, quiet))
}

func TestMatch_ForfeitByMissingHandler(t *testing.T) {
	_, st := suite.New(t)

	// Given: black's connection is gone before the run starts
	black := st.Login()
	require.Equal(t, match.ColorBlack, black.Enter("room-gone"))
	black.Disconnect()

	// When: white completes the room
	white := st.Login()
	require.Equal(t, match.ColorWhite, white.Enter("room-gone"))

	// Then: the move request has no handler and white wins at once
	assert.Equal(t, match.ColorWhite, white.Winner())
}

func TestMatch_ForfeitByDeparture(t *testing.T) {
	_, st := suite.New(t)

	// Given: a run waiting on black
	black, white := seat(st, "room-leave")
	black.Next(messages.ActionToPut)

	// When: white leaves mid-run
	white.Send(leaveRoom)

	// Then: black is told its opponent is gone and wins
	gone, _ := black.Next(messages.ActionOpponentNickname).(*messages.OpponentNickname)
	assert.Nil(t, gone.Name)
	assert.Equal(t, match.ColorBlack, black.Winner())
	assert.True(t, white.Silent(messages.ActionEnd, quiet))

	// Then: the room survives while black is seated, so a newcomer takes white
	newcomer := st.Login()
	assert.Equal(t, match.ColorWhite, newcomer.Enter("room-leave"))
}

func TestMatch_RoomRecreatedWithFreshBoard(t *testing.T) {
	_, st := suite.New(t)

	// Given: a finished run that used (0, 0)
	black, white := seat(st, "room-again")
	black.Play([2]int{0, 0})
	white.Play([2]int{0, 0})
	require.Equal(t, match.ColorBlack, white.Winner())
	require.Equal(t, match.ColorBlack, black.Winner())

	// When: both leave and two new players enter the same room
	black.Send(leaveRoom)
	white.Send(leaveRoom)
	require.True(t, black.Silent(messages.ActionEnd, quiet))

	first, second := seat(st, "room-again")

	// Then: the board is empty again, so (0, 0) is playable
	first.Play([2]int{0, 0})
	put, _ := second.Next(messages.ActionPut).(*messages.Put)
	assert.Equal(t, &messages.Put{X: 0, Y: 0}, put)
}

func TestMatch_Reset(t *testing.T) {
	_, st := suite.New(t, suite.WithTurnTimeout(150*time.Millisecond))

	// Given: a run lost by timeout
	black, white := seat(st, "room-reset")
	require.Equal(t, match.ColorWhite, white.Winner())
	require.Equal(t, match.ColorWhite, black.Winner())

	// When: only black asks for another run
	black.Send(map[string]interface{}{"action": "reset"})

	// Then: nothing starts
	assert.True(t, black.Silent(messages.ActionToPut, quiet))

	// When: white asks too
	white.Send(map[string]interface{}{"action": "reset"})

	// Then: a new run starts with black to move
	black.Next(messages.ActionToPut)
	assert.Equal(t, match.ColorWhite, white.Winner())
}

func TestMatch_UpdateName(t *testing.T) {
	_, st := suite.New(t)

	// Given: two seated players
	black, white := seat(st, "room-name")
	white.Next(messages.ActionOpponentNickname)

	// When: black renames itself
	black.Send(map[string]interface{}{"action": "update nickname", "name": "alice"})

	// Then: white is told the new name
	renamed, _ := white.Next(messages.ActionOpponentNickname).(*messages.OpponentNickname)
	require.NotNil(t, renamed.Name)
	assert.Equal(t, "alice", *renamed.Name)
}
