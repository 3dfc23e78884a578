package websocket

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	frameRegister   = "register"
	frameUnregister = "unregister"
	frameSend       = "send"
	frameRequest    = "request"
	frameReply      = "reply"
	frameMessage    = "message"
	frameErr        = "err"
	framePing       = "ping"
	framePong       = "pong"
)

const (
	failureTimeout    = "TIMEOUT"
	failureNoHandlers = "NO_HANDLERS"
	failureRejected   = "REJECTED"
)

// frame is one JSON text message of the bridge protocol.
type frame struct {
	Type    string
	Address string
	Reply   string
	Failure string
	Body    []byte
}

func parseFrame(raw []byte) (*frame, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errMalformedFrame
	}

	parsed := gjson.ParseBytes(raw)
	kind := parsed.Get("type")
	if kind.Type != gjson.String {
		return nil, errMalformedFrame
	}

	result := &frame{
		Type:    kind.String(),
		Address: parsed.Get("address").String(),
		Reply:   parsed.Get("reply").String(),
	}

	if body := parsed.Get("body"); body.Exists() {
		result.Body = []byte(body.Raw)
	}

	return result, nil
}

// encode - fields left empty are omitted.
func (that *frame) encode() ([]byte, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "type", that.Type)
	if err != nil {
		return nil, fmt.Errorf("set type: %w", err)
	}

	if that.Address != "" {
		if out, err = sjson.SetBytes(out, "address", that.Address); err != nil {
			return nil, fmt.Errorf("set address: %w", err)
		}
	}

	if that.Reply != "" {
		if out, err = sjson.SetBytes(out, "reply", that.Reply); err != nil {
			return nil, fmt.Errorf("set reply: %w", err)
		}
	}

	if that.Failure != "" {
		if out, err = sjson.SetBytes(out, "failure", that.Failure); err != nil {
			return nil, fmt.Errorf("set failure: %w", err)
		}
	}

	if len(that.Body) > 0 {
		if out, err = sjson.SetRawBytes(out, "body", that.Body); err != nil {
			return nil, fmt.Errorf("set body: %w", err)
		}
	}

	return out, nil
}

func failureFrame(address, reply, failure string) *frame {
	return &frame{Type: frameErr, Address: address, Reply: reply, Failure: failure}
}
