package session

import (
	"log/slog"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/tidwall/gjson"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

const ActionNewUUID = messages.ActionNewUUID

// Login issues identities and starts a player session for each.
type Login struct {
	base     *slog.Logger
	logger   *slog.Logger
	timing   config.Game
	sessions map[string]*actor.PID
}

func NewLogin(logger *slog.Logger, timing config.Game) *Login {
	return &Login{
		base:     logger,
		logger:   logger.With("component", "login"),
		timing:   timing,
		sessions: make(map[string]*actor.PID),
	}
}

func LoginProps(logger *slog.Logger, timing config.Game) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewLogin(logger, timing)
	})
}

func (that *Login) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Stopping:
		for sessionID, pid := range that.sessions {
			if err := ctx.StopFuture(pid).Wait(); err != nil {
				that.logger.Error("failed to stop session", "sessionID", sessionID, "error", err)
			}
		}

	case *messages.SessionClosed:
		delete(that.sessions, msg.SessionID)

	case *messages.ClientRequest:
		action := gjson.GetBytes(msg.Payload, "action")

		var reply *messages.ClientReply
		switch {
		case !action.Exists():
			reply = errorReply(apperror.ErrNoAction.Error())
		case action.String() == ActionNewUUID:
			reply = that.newSession(ctx)
		default:
			reply = errorReply(action.String())
		}

		if ctx.Sender() != nil {
			ctx.Respond(reply)
		}
	}
}

// newSession - id, default nickname, then the session actor bound to the id.
func (that *Login) newSession(ctx actor.Context) *messages.ClientReply {
	log := that.logger.With("method", "newSession")

	issued, err := address.Ask[*messages.SessionIssued](ctx, address.SessionRegistry,
		&messages.IssueSessionID{}, that.timing.RequestTimeout)
	if err != nil {
		log.Error("failed to issue session id", "error", err)
		return failureReply(apperror.ErrLoginFailed)
	}

	nickname, err := address.Ask[*messages.Nickname](ctx, address.NicknameDirectory,
		&messages.AllocateNickname{SessionID: issued.SessionID}, that.timing.RequestTimeout)
	if err != nil {
		log.Error("failed to allocate nickname", "error", err)
		return failureReply(apperror.ErrLoginFailed)
	}

	address.Tell(ctx, address.PresenceTracker, &messages.Touch{SessionID: issued.SessionID})

	pid, err := address.SessionIn(issued.SessionID).Spawn(ctx.ActorSystem(),
		PlayerProps(that.base, that.timing, issued.SessionID))
	if err != nil {
		log.Error("failed to start session", "sessionID", issued.SessionID, "error", err)
		return failureReply(apperror.ErrLoginFailed)
	}

	that.sessions[issued.SessionID] = pid
	log.Info("session started", "sessionID", issued.SessionID, "nickname", nickname.Name)

	return encodeReply(&messages.NewUUID{UUID: issued.SessionID, Nickname: nickname.Name})
}
