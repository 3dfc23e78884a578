package messages

// EnterRoom is sent to the room coordinator and answered with *EnterResult.
type EnterRoom struct {
	SessionID string
	RoomID    string
}

type LeaveRoom struct {
	SessionID string
}

type ResetRoom struct {
	SessionID string
}

// RoomVacated is sent by a match actor once both of its slots are empty.
type RoomVacated struct {
	RoomID string
}

// Enter is sent to a match actor and answered with *EnterResult.
type Enter struct {
	SessionID string
}

type Leave struct {
	SessionID string
}

type Reset struct {
	SessionID string
}

type UpdateName struct {
	SessionID string
	Name      string
}

// EnterResult - Accepted is false when the room has no free slot.
type EnterResult struct {
	Accepted bool
	Color    string
}
