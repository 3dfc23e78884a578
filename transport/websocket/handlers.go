package websocket

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// handleRegister - binds this connection as a session's outbound address.
func (that *Server) handleRegister(conn *connection, msg *frame) error {
	if !address.IsSessionOut(msg.Address) {
		return fmt.Errorf("%w: %s", errNotPermitted, msg.Address)
	}

	pid, err := address.Address(msg.Address).Spawn(that.system, outboundProps(that.logger, conn, msg.Address))
	if err != nil {
		return fmt.Errorf("register %s: %w", msg.Address, err)
	}

	conn.bind(msg.Address, pid)
	that.logger.Info("outbound address registered", "address", msg.Address)

	return nil
}

func (that *Server) handleUnregister(conn *connection, msg *frame) error {
	pid, ok := conn.unbind(msg.Address)
	if !ok {
		return fmt.Errorf("%w: %s", errNotBound, msg.Address)
	}

	that.system.Root.Stop(pid)

	return nil
}

// handleSend - fire-and-forget delivery of a client action.
func (that *Server) handleSend(_ *connection, msg *frame) error {
	if !address.Permitted(msg.Address) {
		return fmt.Errorf("%w: %s", errNotPermitted, msg.Address)
	}

	address.Tell(that.system.Root, address.Address(msg.Address), &messages.ClientRequest{Payload: msg.Body})

	return nil
}

// handleRequest - delivers a client action and relays the reply or failure.
// The request leaves from the read loop so it keeps its place among the
// connection's frames; only the wait for the reply is detached.
func (that *Server) handleRequest(conn *connection, msg *frame) error {
	if !address.Permitted(msg.Address) {
		return fmt.Errorf("%w: %s", errNotPermitted, msg.Address)
	}

	to := address.Address(msg.Address)
	future := address.Request(that.system.Root, to, &messages.ClientRequest{Payload: msg.Body}, that.conf.RequestTimeout)

	go func() {
		reply, err := address.Await[*messages.ClientReply](to, future)

		switch {
		case errors.Is(err, apperror.ErrTimeout):
			conn.enqueue(failureFrame(msg.Address, msg.Reply, failureTimeout))
		case errors.Is(err, apperror.ErrNoHandler):
			conn.enqueue(failureFrame(msg.Address, msg.Reply, failureNoHandlers))
		case err != nil:
			that.logger.Error("request failed", "address", msg.Address, "error", err)
			conn.enqueue(failureFrame(msg.Address, msg.Reply, failureRejected))
		default:
			conn.enqueue(&frame{Type: frameReply, Address: msg.Address, Reply: msg.Reply, Body: reply.Payload})
		}
	}()

	return nil
}

// handleReply - the client's answer to a request pushed on one of its
// outbound addresses.
func (that *Server) handleReply(conn *connection, msg *frame) error {
	pid, ok := conn.lookup(msg.Address)
	if !ok {
		return fmt.Errorf("%w: %s", errNotBound, msg.Address)
	}

	that.system.Root.Send(pid, &answer{token: msg.Reply, body: msg.Body})

	return nil
}

func (that *Server) handlePing(conn *connection, _ *frame) error {
	conn.enqueue(&frame{Type: framePong})
	return nil
}
