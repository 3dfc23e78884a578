package rest

import (
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

const PingPath = "/ping"

type PingHandler interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
}

// pingHandler answers pong only while the shared actors still reply.
type pingHandler struct {
	system  *actor.ActorSystem
	timeout time.Duration
}

func NewPingHandler(system *actor.ActorSystem, timeout time.Duration) PingHandler {
	return &pingHandler{
		system:  system,
		timeout: timeout,
	}
}

func (that *pingHandler) PingHandler(w http.ResponseWriter, _ *http.Request) {
	_, err := address.Ask[*messages.Elapsed](that.system.Root, address.PresenceTracker,
		&messages.GetElapsed{}, that.timeout)
	if err != nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err = w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
