package service

import (
	"math"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// NeverSeen - elapsed time reported for sessions without activity.
const NeverSeen = time.Duration(math.MaxInt64)

// PresenceTracker records the last activity of every session.
type PresenceTracker struct {
	now      func() time.Time
	lastSeen map[string]time.Time
}

// NewPresenceTracker - now defaults to time.Now.
func NewPresenceTracker(now func() time.Time) *PresenceTracker {
	if now == nil {
		now = time.Now
	}

	return &PresenceTracker{
		now:      now,
		lastSeen: make(map[string]time.Time),
	}
}

func (that *PresenceTracker) Touch(sessionID string) {
	that.lastSeen[sessionID] = that.now()
}

// ElapsedSince - NeverSeen and false when the session was never touched.
func (that *PresenceTracker) ElapsedSince(sessionID string) (time.Duration, bool) {
	seen, ok := that.lastSeen[sessionID]
	if !ok {
		return NeverSeen, false
	}

	return that.now().Sub(seen), true
}

func (that *PresenceTracker) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *messages.Touch:
		that.Touch(msg.SessionID)
	case *messages.GetElapsed:
		elapsed, seen := that.ElapsedSince(msg.SessionID)
		ctx.Respond(&messages.Elapsed{SessionID: msg.SessionID, Elapsed: elapsed, Seen: seen})
	}
}

func PresenceTrackerProps(now func() time.Time) *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewPresenceTracker(now)
	})
}
