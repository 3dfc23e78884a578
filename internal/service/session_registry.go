package service

import (
	"log/slog"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// SessionRegistry issues opaque session ids that are never reused.
type SessionRegistry struct {
	logger *slog.Logger
	newID  func() string
	issued map[string]struct{}
}

// NewSessionRegistry - newID defaults to random UUIDs.
func NewSessionRegistry(logger *slog.Logger, newID func() string) *SessionRegistry {
	if newID == nil {
		newID = uuid.NewString
	}

	return &SessionRegistry{
		logger: logger.With("component", "session registry"),
		newID:  newID,
		issued: make(map[string]struct{}),
	}
}

// Issue - generates ids until one has never been issued before.
func (that *SessionRegistry) Issue() string {
	for {
		id := that.newID()
		if _, exists := that.issued[id]; exists {
			that.logger.Warn("session id collision, retrying", "sessionID", id)
			continue
		}

		that.issued[id] = struct{}{}
		return id
	}
}

func (that *SessionRegistry) Receive(ctx actor.Context) {
	if _, ok := ctx.Message().(*messages.IssueSessionID); ok {
		ctx.Respond(&messages.SessionIssued{SessionID: that.Issue()})
	}
}

func SessionRegistryProps(logger *slog.Logger, newID func() string) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewSessionRegistry(logger, newID)
	})
}
