package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEncode(t *testing.T) {
	t.Run("Action is stamped on the body", func(t *testing.T) {
		body, err := Encode(&Put{X: 3, Y: 4})

		require.NoError(t, err)
		assert.JSONEq(t, `{"action":"put","x":3,"y":4}`, string(body))
	})

	t.Run("Absent opponent nickname is null", func(t *testing.T) {
		body, err := Encode(&OpponentNickname{})

		require.NoError(t, err)
		assert.Equal(t, gjson.Null, gjson.GetBytes(body, "name").Type)
		assert.Equal(t, ActionOpponentNickname, gjson.GetBytes(body, "action").String())
	})

	t.Run("End carries the winner color", func(t *testing.T) {
		body, err := Encode(&End{Winner: NoWinner})

		require.NoError(t, err)
		assert.JSONEq(t, `{"action":"end","winner":"none"}`, string(body))
	})
}

func TestDecodePut(t *testing.T) {
	assert.Equal(t, &Put{X: 3, Y: 4}, DecodePut([]byte(`{"action":"to put","x":3,"y":4}`)))
	assert.Equal(t, &Put{X: -1, Y: -1}, DecodePut([]byte(`{"x":3}`)))
	assert.Equal(t, &Put{X: -1, Y: -1}, DecodePut([]byte(`{"x":"a","y":1}`)))
	assert.Equal(t, &Put{X: -1, Y: -1}, DecodePut([]byte(`not json`)))
}
