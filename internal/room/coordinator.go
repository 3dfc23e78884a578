package room

import (
	"log/slog"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/match"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// MatchProps - builds the match actor for a room.
type MatchProps func(roomID string) *actor.Props

// Coordinator maps sessions to rooms and owns the lifetime of match actors.
type Coordinator struct {
	logger     *slog.Logger
	timing     config.Game
	matchProps MatchProps
	membership map[string]string // sessionID -> roomID
	occupancy  map[string]int    // roomID -> seated sessions
	rooms      map[string]*actor.PID
}

func NewCoordinator(logger *slog.Logger, timing config.Game, matchProps MatchProps) *Coordinator {
	if matchProps == nil {
		matchProps = func(roomID string) *actor.Props {
			return match.Props(logger, timing, roomID)
		}
	}

	return &Coordinator{
		logger:     logger.With("component", "room coordinator"),
		timing:     timing,
		matchProps: matchProps,
		membership: make(map[string]string),
		occupancy:  make(map[string]int),
		rooms:      make(map[string]*actor.PID),
	}
}

func Props(logger *slog.Logger, timing config.Game) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewCoordinator(logger, timing, nil)
	})
}

func (that *Coordinator) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Stopping:
		for roomID, pid := range that.rooms {
			if err := ctx.StopFuture(pid).Wait(); err != nil {
				that.logger.Error("failed to stop match", "roomID", roomID, "error", err)
			}
		}

	case *messages.EnterRoom:
		ctx.Respond(that.enter(ctx, msg.SessionID, msg.RoomID))

	case *messages.LeaveRoom:
		that.leave(ctx, msg.SessionID)

	case *messages.ResetRoom:
		if roomID, ok := that.membership[msg.SessionID]; ok {
			address.Tell(ctx, address.Match(roomID), &messages.Reset{SessionID: msg.SessionID})
		}

	case *messages.RoomVacated:
		that.evict(ctx, msg.RoomID)
	}
}

func (that *Coordinator) enter(ctx actor.Context, sessionID, roomID string) *messages.EnterResult {
	log := that.logger.With("method", "enter", "sessionID", sessionID, "roomID", roomID)

	if current, ok := that.membership[sessionID]; ok && current != roomID {
		that.leave(ctx, sessionID)
	}

	if _, ok := that.rooms[roomID]; !ok {
		pid, err := address.Match(roomID).Spawn(ctx.ActorSystem(), that.matchProps(roomID))
		if err != nil {
			log.Error("failed to create match", "error", err)
			return &messages.EnterResult{Color: match.NoColor}
		}

		that.rooms[roomID] = pid
		log.Info("room created")
	}

	result, err := address.Ask[*messages.EnterResult](ctx, address.Match(roomID),
		&messages.Enter{SessionID: sessionID}, that.timing.RequestTimeout)
	if err != nil {
		log.Error("match did not answer enter", "error", err)
		that.evict(ctx, roomID)
		return &messages.EnterResult{Color: match.NoColor}
	}

	if !result.Accepted {
		that.evict(ctx, roomID)
		return result
	}

	if _, seated := that.membership[sessionID]; !seated {
		that.membership[sessionID] = roomID
		that.occupancy[roomID]++
	}

	return result
}

func (that *Coordinator) leave(ctx actor.Context, sessionID string) {
	roomID, ok := that.membership[sessionID]
	if !ok {
		return
	}

	address.Tell(ctx, address.Match(roomID), &messages.Leave{SessionID: sessionID})

	delete(that.membership, sessionID)
	that.occupancy[roomID]--

	that.logger.Info("session left room", "sessionID", sessionID, "roomID", roomID)
}

// evict - destroys the room's match unless someone is still seated in it.
// The name is free again once this returns.
func (that *Coordinator) evict(ctx actor.Context, roomID string) {
	pid, ok := that.rooms[roomID]
	if !ok || that.occupancy[roomID] > 0 {
		return
	}

	if err := ctx.StopFuture(pid).Wait(); err != nil {
		that.logger.Error("failed to stop match", "roomID", roomID, "error", err)
	}

	delete(that.rooms, roomID)
	delete(that.occupancy, roomID)

	that.logger.Info("room evicted", "roomID", roomID)
}
