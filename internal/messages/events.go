package messages

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	ActionOpponentNickname = "opponent nickname"
	ActionOpponentToPut    = "opponent to put"
	ActionToPut            = "to put"
	ActionPut              = "put"
	ActionEnd              = "end"
	ActionEnterRoom        = "enter room"
	ActionNewUUID          = "new uuid"
	ActionError            = "error"

	NoWinner = "none"
)

// ClientEvent is anything a match pushes to a session's outbound address.
type ClientEvent interface {
	Action() string
}

// OpponentNickname - Name is nil when the opponent has left.
type OpponentNickname struct {
	Name *string `json:"name"`
}

type OpponentToPut struct {
	Timeout int `json:"timeout"`
}

// ToPut is a request; the client answers with *Put.
type ToPut struct {
	Timeout int `json:"timeout"`
}

type Put struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type End struct {
	Winner string `json:"winner"`
}

// EnterRoomResult - Color is "none" when the room had no free slot.
type EnterRoomResult struct {
	Color string `json:"color"`
}

type NewUUID struct {
	UUID     string `json:"uuid"`
	Nickname string `json:"nickname"`
}

type Error struct {
	Msg string `json:"msg"`
}

func (*OpponentNickname) Action() string { return ActionOpponentNickname }
func (*OpponentToPut) Action() string    { return ActionOpponentToPut }
func (*ToPut) Action() string            { return ActionToPut }
func (*Put) Action() string              { return ActionPut }
func (*End) Action() string              { return ActionEnd }
func (*EnterRoomResult) Action() string  { return ActionEnterRoom }
func (*NewUUID) Action() string          { return ActionNewUUID }
func (*Error) Action() string            { return ActionError }

// Encode - JSON body of the event with its action field.
func Encode(event ClientEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %q: %w", event.Action(), err)
	}

	body, err = sjson.SetBytes(body, "action", event.Action())
	if err != nil {
		return nil, fmt.Errorf("set action on %q: %w", event.Action(), err)
	}

	return body, nil
}

// DecodePut - reads a client's answer to ToPut. Missing or non-numeric
// coordinates decode to an off-board cell so the move is rejected.
func DecodePut(body []byte) *Put {
	x, y := gjson.GetBytes(body, "x"), gjson.GetBytes(body, "y")
	if x.Type != gjson.Number || y.Type != gjson.Number {
		return &Put{X: -1, Y: -1}
	}

	return &Put{X: int(x.Int()), Y: int(y.Int())}
}
