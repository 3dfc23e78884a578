package service

import (
	"strconv"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

const defaultNicknamePrefix = "player "

// NicknameDirectory keeps display names for the lifetime of the process.
type NicknameDirectory struct {
	names map[string]string
	count int
}

func NewNicknameDirectory() *NicknameDirectory {
	return &NicknameDirectory{
		names: make(map[string]string),
	}
}

// Allocate - assigns the next default name.
func (that *NicknameDirectory) Allocate(sessionID string) string {
	name := defaultNicknamePrefix + strconv.Itoa(that.count)
	that.count++
	that.names[sessionID] = name

	return name
}

// Get - returns an empty name for unknown sessions.
func (that *NicknameDirectory) Get(sessionID string) string {
	return that.names[sessionID]
}

func (that *NicknameDirectory) Set(sessionID, name string) {
	that.names[sessionID] = name
}

func (that *NicknameDirectory) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *messages.AllocateNickname:
		ctx.Respond(&messages.Nickname{SessionID: msg.SessionID, Name: that.Allocate(msg.SessionID)})
	case *messages.GetNickname:
		ctx.Respond(&messages.Nickname{SessionID: msg.SessionID, Name: that.Get(msg.SessionID)})
	case *messages.SetNickname:
		that.Set(msg.SessionID, msg.Name)
	}
}

func NicknameDirectoryProps() *actor.Props {
	return actor.PropsFromProducer(func() actor.Actor {
		return NewNicknameDirectory()
	})
}
