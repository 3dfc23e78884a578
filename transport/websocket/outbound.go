package websocket

import (
	"log/slog"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// answer is a client reply routed back to the outbound actor that asked.
type answer struct {
	token string
	body  []byte
}

// outbound pushes match events to one connection. Events sent as requests
// carry a reply token; the pending map routes the client's answer back.
type outbound struct {
	logger  *slog.Logger
	conn    *connection
	address string
	pending map[string]*actor.PID
}

func outboundProps(logger *slog.Logger, conn *connection, name string) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return &outbound{
			logger:  logger.With("address", name),
			conn:    conn,
			address: name,
			pending: make(map[string]*actor.PID),
		}
	})
}

func (that *outbound) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *answer:
		pid, ok := that.pending[msg.token]
		if !ok {
			that.logger.Debug("answer to unknown request", "reply", msg.token)
			return
		}

		delete(that.pending, msg.token)
		ctx.Send(pid, &messages.ClientReply{Payload: msg.body})

	case messages.ClientEvent:
		body, err := messages.Encode(msg)
		if err != nil {
			that.logger.Error("failed to encode event", "error", err)
			return
		}

		out := &frame{Type: frameMessage, Address: that.address, Body: body}
		if sender := ctx.Sender(); sender != nil {
			out.Reply = uuid.NewString()
			that.pending[out.Reply] = sender
		}

		that.conn.enqueue(out)
	}
}
