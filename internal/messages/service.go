package messages

import "time"

// IssueSessionID is answered with *SessionIssued.
type IssueSessionID struct{}

type SessionIssued struct {
	SessionID string
}

// AllocateNickname is answered with *Nickname.
type AllocateNickname struct {
	SessionID string
}

// GetNickname is answered with *Nickname; Name is empty when unknown.
type GetNickname struct {
	SessionID string
}

type SetNickname struct {
	SessionID string
	Name      string
}

type Nickname struct {
	SessionID string
	Name      string
}

// SessionClosed is sent to the login actor by a session that stopped.
type SessionClosed struct {
	SessionID string
}

type Touch struct {
	SessionID string
}

// GetElapsed is answered with *Elapsed.
type GetElapsed struct {
	SessionID string
}

type Elapsed struct {
	SessionID string
	Elapsed   time.Duration
	Seen      bool
}
