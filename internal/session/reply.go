package session

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

// errorReply - the structured answer to an action nobody handles.
func errorReply(action string) *messages.ClientReply {
	return encodeReply(&messages.Error{Msg: fmt.Errorf("%w: %s", apperror.ErrUnknownAction, action).Error()})
}

func encodeReply(event messages.ClientEvent) *messages.ClientReply {
	payload, err := messages.Encode(event)
	if err != nil {
		// flat structs without custom marshalers always encode
		panic(err)
	}

	return &messages.ClientReply{Payload: payload}
}

func failureReply(err error) *messages.ClientReply {
	return encodeReply(&messages.Error{Msg: err.Error()})
}
