package match

import (
	"log/slog"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// Actor owns one room: its mailbox handles membership while a separate turn
// loop plays the runs.
type Actor struct {
	logger  *slog.Logger
	timing  config.Game
	roomID  string
	seats   *seats
	done    chan struct{}
	started bool
}

func NewActor(logger *slog.Logger, timing config.Game, roomID string) *Actor {
	return &Actor{
		logger: logger.With("component", "match", "roomID", roomID),
		timing: timing,
		roomID: roomID,
		seats:  newSeats(),
		done:   make(chan struct{}),
	}
}

// Props - a fresh slot table and board for every incarnation.
func Props(logger *slog.Logger, timing config.Game, roomID string) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewActor(logger, timing, roomID)
	})
}

func (that *Actor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		that.started = true
		go that.turnLoop(ctx.ActorSystem())
		that.logger.Debug("match started")

	case *actor.Stopping, *actor.Restarting:
		that.shutdown()

	case *messages.Enter:
		that.handleEnter(ctx, msg)

	case *messages.Leave:
		that.handleLeave(ctx, msg)

	case *messages.Reset:
		if that.seats.reset(msg.SessionID) {
			that.logger.Debug("player ready for next run", "sessionID", msg.SessionID)
		}

	case *messages.UpdateName:
		that.handleUpdateName(ctx, msg)
	}
}

func (that *Actor) handleEnter(ctx actor.Context, msg *messages.Enter) {
	log := that.logger.With("method", "handleEnter", "sessionID", msg.SessionID)

	color, accepted, full := that.seats.enter(msg.SessionID)
	ctx.Respond(&messages.EnterResult{Accepted: accepted, Color: color})

	if !accepted {
		log.Info("room is full")
		return
	}

	log.Info("player entered", "color", color)

	if full {
		that.introduceOpponents(ctx)
	}

	that.seats.arm()
}

// introduceOpponents - pushes each player the other's nickname.
func (that *Actor) introduceOpponents(ctx actor.Context) {
	log := that.logger.With("method", "introduceOpponents")

	occupants := that.seats.occupants()

	var names [2]string
	for i, sessionID := range occupants {
		reply, err := address.Ask[*messages.Nickname](ctx, address.NicknameDirectory,
			&messages.GetNickname{SessionID: sessionID}, that.timing.RequestTimeout)
		if err != nil {
			log.Error("failed to get nickname", "sessionID", sessionID, "error", err)
			return
		}
		names[i] = reply.Name
	}

	for i, sessionID := range occupants {
		name := names[1-i]
		address.Tell(ctx, address.SessionOut(sessionID), &messages.OpponentNickname{Name: &name})
	}
}

func (that *Actor) handleLeave(ctx actor.Context, msg *messages.Leave) {
	log := that.logger.With("method", "handleLeave", "sessionID", msg.SessionID)

	opponent, vacated, found := that.seats.leave(msg.SessionID)
	if !found {
		log.Debug("session is not seated here")
		return
	}

	log.Info("player left")

	if opponent != "" {
		address.Tell(ctx, address.SessionOut(opponent), &messages.OpponentNickname{})
	}

	if vacated {
		address.Tell(ctx, address.RoomCoordinator, &messages.RoomVacated{RoomID: that.roomID})
	}
}

func (that *Actor) handleUpdateName(ctx actor.Context, msg *messages.UpdateName) {
	opponent := that.seats.opponentOf(msg.SessionID)
	if opponent == "" {
		return
	}

	name := msg.Name
	address.Tell(ctx, address.SessionOut(opponent), &messages.OpponentNickname{Name: &name})
}

// shutdown - releases the turn loop and waits for its final broadcast.
func (that *Actor) shutdown() {
	that.seats.close()

	if !that.started {
		return
	}

	select {
	case <-that.done:
	case <-time.After(that.timing.RequestTimeout):
		that.logger.Warn("turn loop did not stop in time")
	}
}
