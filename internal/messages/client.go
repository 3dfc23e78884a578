package messages

// ClientRequest carries one raw JSON action from a remote client.
type ClientRequest struct {
	Payload []byte
}

// ClientReply carries the raw JSON answer to a ClientRequest.
type ClientReply struct {
	Payload []byte
}
