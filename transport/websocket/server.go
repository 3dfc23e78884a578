package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/transport/rest"
)

const (
	EventBusPath = "/eventbus"

	readHeaderTimeout = 10 * time.Second
	sendBuffer        = 64
	maxFrameSize      = 64 << 10
)

var (
	errMalformedFrame = errors.New("malformed frame")
	errUnknownFrame   = errors.New("unknown frame type")
	errNotPermitted   = errors.New("address is not permitted")
	errNotBound       = errors.New("address is not registered on this connection")
)

type frameHandler func(conn *connection, msg *frame) error

// Server bridges the session namespace of the actor system to websocket
// clients.
type Server struct {
	logger   *slog.Logger
	system   *actor.ActorSystem
	conf     config.Bridge
	upgrader websocket.Upgrader

	handlers map[string]frameHandler

	mu          sync.Mutex
	server      *http.Server
	connections map[*connection]struct{}
}

func New(logger *slog.Logger, system *actor.ActorSystem, conf config.Bridge) *Server {
	server := &Server{
		logger: logger.With("component", "websocket bridge"),
		system: system,
		conf:   conf,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers:    make(map[string]frameHandler),
		connections: make(map[*connection]struct{}),
	}

	server.handlers[frameRegister] = server.handleRegister
	server.handlers[frameUnregister] = server.handleUnregister
	server.handlers[frameSend] = server.handleSend
	server.handlers[frameRequest] = server.handleRequest
	server.handlers[frameReply] = server.handleReply
	server.handlers[framePing] = server.handlePing

	return server
}

// Handler - the bridge endpoint and the health check, usable without a listener.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(EventBusPath, that.upgradeToWebSocket)
	mux.HandleFunc(rest.PingPath, rest.NewPingHandler(that.system, that.conf.RequestTimeout).PingHandler)

	return mux
}

// Start - serves the bridge on port until Stop is called.
func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	that.mu.Lock()
	that.server = srv
	that.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop - closes the listener and every open connection.
func (that *Server) Stop(ctx context.Context) error {
	that.mu.Lock()
	srv := that.server
	open := make([]*connection, 0, len(that.connections))
	for conn := range that.connections {
		open = append(open, conn)
	}
	that.mu.Unlock()

	for _, conn := range open {
		conn.close()
	}

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(that, ws)
	that.track(conn)

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	go conn.writePump()
	conn.readPump()
}

func (that *Server) track(conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[conn] = struct{}{}
}

func (that *Server) untrack(conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.connections, conn)
}
