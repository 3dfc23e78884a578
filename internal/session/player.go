package session

import (
	"log/slog"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/scheduler"
	"github.com/tidwall/gjson"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

const (
	ActionUpdateNickname = "update nickname"
	ActionHeartBeat      = "heart beat"
	ActionEnterRoom      = "enter room"
	ActionLeaveRoom      = "leave room"
	ActionReset          = "reset"

	defaultRoom = "default room"
	defaultName = "default name"
)

// sweep wakes the idle check.
type sweep struct{}

// Player is the inbound side of one connected identity.
type Player struct {
	logger      *slog.Logger
	timing      config.Game
	sessionID   string
	room        string
	cancelSweep scheduler.CancelFunc
}

func NewPlayer(logger *slog.Logger, timing config.Game, sessionID string) *Player {
	return &Player{
		logger:    logger.With("component", "player session", "sessionID", sessionID),
		timing:    timing,
		sessionID: sessionID,
	}
}

func PlayerProps(logger *slog.Logger, timing config.Game, sessionID string) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewPlayer(logger, timing, sessionID)
	})
}

func (that *Player) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		that.cancelSweep = scheduler.NewTimerScheduler(ctx).
			SendRepeatedly(that.timing.SweepInterval, that.timing.SweepInterval, ctx.Self(), &sweep{})

	case *actor.Restarting:
		that.stopSweep()

	case *actor.Stopping:
		that.stopSweep()
		address.Tell(ctx, address.Login, &messages.SessionClosed{SessionID: that.sessionID})

	case *sweep:
		that.sweep(ctx)

	case *messages.ClientRequest:
		address.Tell(ctx, address.PresenceTracker, &messages.Touch{SessionID: that.sessionID})

		if reply := that.handle(ctx, msg.Payload); reply != nil && ctx.Sender() != nil {
			ctx.Respond(reply)
		}
	}
}

func (that *Player) stopSweep() {
	if that.cancelSweep != nil {
		that.cancelSweep()
		that.cancelSweep = nil
	}
}

// handle - dispatches one client action; returns the reply, if any.
func (that *Player) handle(ctx actor.Context, payload []byte) *messages.ClientReply {
	action := gjson.GetBytes(payload, "action")
	if !action.Exists() {
		return errorReply(apperror.ErrNoAction.Error())
	}

	switch action.String() {
	case ActionUpdateNickname:
		that.updateNickname(ctx, stringOr(payload, "name", defaultName))

	case ActionHeartBeat:

	case ActionEnterRoom:
		return that.enterRoom(ctx, stringOr(payload, "id", defaultRoom))

	case ActionLeaveRoom:
		that.leaveRoom(ctx)

	case ActionReset:
		address.Tell(ctx, address.RoomCoordinator, &messages.ResetRoom{SessionID: that.sessionID})

	default:
		return errorReply(action.String())
	}

	return nil
}

func (that *Player) updateNickname(ctx actor.Context, name string) {
	address.Tell(ctx, address.NicknameDirectory, &messages.SetNickname{SessionID: that.sessionID, Name: name})

	if that.room != "" {
		address.Tell(ctx, address.Match(that.room), &messages.UpdateName{SessionID: that.sessionID, Name: name})
	}
}

func (that *Player) enterRoom(ctx actor.Context, roomID string) *messages.ClientReply {
	log := that.logger.With("method", "enterRoom", "roomID", roomID)

	result, err := address.Ask[*messages.EnterResult](ctx, address.RoomCoordinator,
		&messages.EnterRoom{SessionID: that.sessionID, RoomID: roomID}, that.timing.RequestTimeout)
	if err != nil {
		log.Error("room coordinator did not answer", "error", err)
		result = &messages.EnterResult{Color: messages.NoWinner}
	}

	that.room = ""
	if result.Accepted {
		that.room = roomID
	}

	return encodeReply(&messages.EnterRoomResult{Color: result.Color})
}

func (that *Player) leaveRoom(ctx actor.Context) {
	address.Tell(ctx, address.RoomCoordinator, &messages.LeaveRoom{SessionID: that.sessionID})
	that.room = ""
}

// sweep - soft threshold frees the seat, hard threshold ends the session.
func (that *Player) sweep(ctx actor.Context) {
	presence, err := address.Ask[*messages.Elapsed](ctx, address.PresenceTracker,
		&messages.GetElapsed{SessionID: that.sessionID}, that.timing.RequestTimeout)
	if err != nil {
		that.logger.Warn("presence check failed", "error", err)
		return
	}

	if presence.Elapsed > that.timing.IdleLeave && that.room != "" {
		that.logger.Info("idle player removed from room", "roomID", that.room, "idle", presence.Elapsed)
		that.leaveRoom(ctx)
	}

	if presence.Elapsed > that.timing.IdleExpire {
		that.logger.Info("idle session expired", "idle", presence.Elapsed)
		ctx.Stop(ctx.Self())
	}
}

func stringOr(payload []byte, path, fallback string) string {
	if value := gjson.GetBytes(payload, path); value.Type == gjson.String {
		return value.String()
	}
	return fallback
}
