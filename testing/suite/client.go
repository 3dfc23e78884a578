package suite

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/tidwall/gjson"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// Client is a scripted remote player: it logs in, binds its outbound
// address and answers move requests from a queue.
type Client struct {
	suite     *Suite
	SessionID string
	Nickname  string

	events chan messages.ClientEvent

	mu      sync.Mutex
	moves   [][2]int
	pending *actor.PID
	out     *actor.PID
}

// Login - a new identity with its outbound address bound.
func (that *Suite) Login() *Client {
	that.Helper()

	reply, err := address.Ask[*messages.ClientReply](that.System.Root, address.Login,
		&messages.ClientRequest{Payload: []byte(`{"action":"new uuid"}`)}, Wait)
	if err != nil {
		that.Fatalf("login failed: %v", err)
	}

	body := gjson.ParseBytes(reply.Payload)
	if body.Get("action").String() != messages.ActionNewUUID {
		that.Fatalf("unexpected login reply: %s", reply.Payload)
	}

	client := &Client{
		suite:     that,
		SessionID: body.Get("uuid").String(),
		Nickname:  body.Get("nickname").String(),
		events:    make(chan messages.ClientEvent, 512),
	}

	client.out, err = address.SessionOut(client.SessionID).Spawn(that.System, actor.PropsFromFunc(client.receive))
	if err != nil {
		that.Fatalf("bind outbound address: %v", err)
	}

	return client
}

func (that *Client) receive(ctx actor.Context) {
	event, ok := ctx.Message().(messages.ClientEvent)
	if !ok {
		return
	}

	that.events <- event

	if _, isTurn := event.(*messages.ToPut); !isTurn || ctx.Sender() == nil {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.moves) == 0 {
		that.pending = ctx.Sender()
		return
	}

	move := that.moves[0]
	that.moves = that.moves[1:]
	that.pending = nil
	ctx.Respond(putReply(move[0], move[1]))
}

// Play - queues moves answered in order to the next move requests. A request
// already waiting is answered at once.
func (that *Client) Play(moves ...[2]int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves = append(that.moves, moves...)

	if that.pending != nil && len(that.moves) > 0 {
		move := that.moves[0]
		that.moves = that.moves[1:]
		that.suite.System.Root.Send(that.pending, putReply(move[0], move[1]))
		that.pending = nil
	}
}

// AnswerPending - answers the last unanswered move request, however late.
func (that *Client) AnswerPending(x, y int) {
	that.mu.Lock()
	pending := that.pending
	that.pending = nil
	that.mu.Unlock()

	if pending == nil {
		that.suite.Fatalf("no pending move request for %s", that.SessionID)
	}

	that.suite.System.Root.Send(pending, putReply(x, y))
}

// Disconnect - unbinds the outbound address, as a dropped connection does.
func (that *Client) Disconnect() {
	if err := that.suite.System.Root.StopFuture(that.out).Wait(); err != nil {
		that.suite.Fatalf("disconnect %s: %v", that.SessionID, err)
	}
}

// Request - sends an action and waits for the session's reply.
func (that *Client) Request(action map[string]interface{}) (gjson.Result, error) {
	reply, err := address.Ask[*messages.ClientReply](that.suite.System.Root, address.SessionIn(that.SessionID),
		&messages.ClientRequest{Payload: mustJSON(action)}, Wait)
	if err != nil {
		return gjson.Result{}, err
	}

	return gjson.ParseBytes(reply.Payload), nil
}

// Send - fire-and-forget action.
func (that *Client) Send(action map[string]interface{}) {
	address.Tell(that.suite.System.Root, address.SessionIn(that.SessionID),
		&messages.ClientRequest{Payload: mustJSON(action)})
}

// Enter - enters a room and returns the assigned color.
func (that *Client) Enter(roomID string) string {
	that.suite.Helper()

	reply, err := that.Request(map[string]interface{}{"action": "enter room", "id": roomID})
	if err != nil {
		that.suite.Fatalf("enter room %s: %v", roomID, err)
	}

	return reply.Get("color").String()
}

// Next - the next event with the given action; other events are skipped.
func (that *Client) Next(action string) messages.ClientEvent {
	that.suite.Helper()

	deadline := time.After(Wait)
	for {
		select {
		case event := <-that.events:
			if event.Action() == action {
				return event
			}
		case <-deadline:
			that.suite.Fatalf("%s: no %q event within %s", that.SessionID, action, Wait)
			return nil
		}
	}
}

// Winner - waits for the end of the run.
func (that *Client) Winner() string {
	that.suite.Helper()

	end, _ := that.Next(messages.ActionEnd).(*messages.End)
	return end.Winner
}

// Silent - reports whether no event with the action arrives within wait.
func (that *Client) Silent(action string, wait time.Duration) bool {
	deadline := time.After(wait)
	for {
		select {
		case event := <-that.events:
			if event.Action() == action {
				return false
			}
		case <-deadline:
			return true
		}
	}
}

func putReply(x, y int) *messages.ClientReply {
	return &messages.ClientReply{Payload: mustJSON(map[string]interface{}{"action": "to put", "x": x, "y": y})}
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
