package websocket

import (
	"sync"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// connection is one client socket and the outbound addresses it registered.
type connection struct {
	server *Server
	ws     *websocket.Conn
	send   chan []byte

	mu     sync.Mutex
	closed bool
	bound  map[string]*actor.PID
}

func newConnection(server *Server, ws *websocket.Conn) *connection {
	return &connection{
		server: server,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		bound:  make(map[string]*actor.PID),
	}
}

// readPump - dispatches frames until the socket fails, then tears down.
func (that *connection) readPump() {
	log := that.server.logger.With("method", "readPump")

	defer that.close()

	pongWait := 2 * that.server.conf.HeartbeatInterval

	that.ws.SetReadLimit(maxFrameSize)
	_ = that.ws.SetReadDeadline(time.Now().Add(pongWait))
	that.ws.SetPongHandler(func(string) error {
		return that.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, raw, err := that.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("failed to read frame", "error", err)
			}
			return
		}

		_ = that.ws.SetReadDeadline(time.Now().Add(pongWait))

		if kind != websocket.TextMessage {
			continue
		}

		msg, err := parseFrame(raw)
		if err != nil {
			log.Warn("dropping frame", "error", err)
			continue
		}

		handler, ok := that.server.handlers[msg.Type]
		if !ok {
			log.Warn("dropping frame", "type", msg.Type, "error", errUnknownFrame)
			continue
		}

		if err = handler(that, msg); err != nil {
			log.Warn("frame rejected", "type", msg.Type, "address", msg.Address, "error", err)
			that.enqueue(failureFrame(msg.Address, msg.Reply, failureRejected))
		}
	}
}

// writePump - the only writer of the socket; pings on the heartbeat interval.
func (that *connection) writePump() {
	ticker := time.NewTicker(that.server.conf.HeartbeatInterval)
	defer func() {
		ticker.Stop()
		_ = that.ws.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := that.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue - never blocks; a client that cannot keep up loses frames.
func (that *connection) enqueue(msg *frame) {
	data, err := msg.encode()
	if err != nil {
		that.server.logger.Error("failed to encode frame", "type", msg.Type, "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	select {
	case that.send <- data:
	default:
		that.server.logger.Warn("send buffer full, dropping frame", "type", msg.Type, "address", msg.Address)
	}
}

func (that *connection) bind(name string, pid *actor.PID) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.bound[name] = pid
}

func (that *connection) unbind(name string) (*actor.PID, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	pid, ok := that.bound[name]
	delete(that.bound, name)

	return pid, ok
}

func (that *connection) lookup(name string) (*actor.PID, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	pid, ok := that.bound[name]
	return pid, ok
}

// close - stops the connection's outbound actors, so requests to them fail
// with no handler, and lets the write pump close the socket.
func (that *connection) close() {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return
	}

	that.closed = true
	bound := that.bound
	that.bound = make(map[string]*actor.PID)
	close(that.send)
	that.mu.Unlock()

	for _, pid := range bound {
		that.server.system.Root.Stop(pid)
	}

	that.server.untrack(that)
}
