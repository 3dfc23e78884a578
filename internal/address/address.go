package address

import (
	"strings"

	"github.com/asynkron/protoactor-go/actor"
)

// Address is a logical actor name. It resolves to a PID at send time, so a
// sender never caches a handle that may have died.
type Address string

const (
	SessionRegistry   Address = "registry.session"
	NicknameDirectory Address = "registry.nickname"
	PresenceTracker   Address = "tracker.presence"
	RoomCoordinator   Address = "coordinator.room"
	Login             Address = "session.login"
)

const (
	matchPrefix   = "match."
	sessionPrefix = "session."
	inSuffix      = ".in"
	outSuffix     = ".out"
)

// Match - address of the match actor that owns the room.
func Match(roomID string) Address {
	return Address(matchPrefix + roomID)
}

// SessionIn - address of the player session actor for inbound client actions.
func SessionIn(sessionID string) Address {
	return Address(sessionPrefix + sessionID + inSuffix)
}

// SessionOut - address the transport binds for pushing events to the client.
func SessionOut(sessionID string) Address {
	return Address(sessionPrefix + sessionID + outSuffix)
}

// Permitted - reports whether a remote client may address name.
// Only the per-session namespace is exposed.
func Permitted(name string) bool {
	return strings.HasPrefix(name, sessionPrefix) && len(name) > len(sessionPrefix)
}

// IsSessionOut - reports whether name is an outbound session channel.
func IsSessionOut(name string) bool {
	return Permitted(name) && strings.HasSuffix(name, outSuffix)
}

func (that Address) String() string {
	return string(that)
}

// PID - resolves the address inside the local actor system.
func (that Address) PID(system *actor.ActorSystem) *actor.PID {
	return actor.NewPID(system.Address(), string(that))
}

// Spawn - starts props under this address at the root of the system.
func (that Address) Spawn(system *actor.ActorSystem, props *actor.Props) (*actor.PID, error) {
	return system.Root.SpawnNamed(props, string(that))
}
