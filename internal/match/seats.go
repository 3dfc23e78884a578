package match

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

const (
	ColorBlack = "black"
	ColorWhite = "white"
	NoColor    = messages.NoWinner

	noWinner = -1
)

type state int

const (
	stateWaiting state = iota
	stateRunning
	stateFinished
)

func (that state) String() string {
	switch that {
	case stateRunning:
		return "running"
	case stateFinished:
		return "finished"
	default:
		return "waiting"
	}
}

type slot struct {
	sessionID string
	color     string
	ready     bool
	opponent  int
}

// run is one play from an empty board to an outcome.
type run struct {
	ctx          context.Context
	cancel       context.CancelFunc
	participants [2]string
	winner       int
	settled      bool
}

// seats is the slot table shared by the mailbox and the turn loop. The
// condition is the readiness latch: the turn loop waits on it until both
// slots are ready, and it is re-armed when a run returns to waiting. The
// mutex is never held across a request.
type seats struct {
	mu     sync.Mutex
	latch  *sync.Cond
	slots  [2]slot
	state  state
	run    *run
	closed bool
}

func newSeats() *seats {
	table := &seats{
		slots: [2]slot{
			{color: ColorBlack, opponent: 1},
			{color: ColorWhite, opponent: 0},
		},
	}
	table.latch = sync.NewCond(&table.mu)

	return table
}

func (that *seats) indexOf(sessionID string) int {
	for i := range that.slots {
		if that.slots[i].sessionID == sessionID {
			return i
		}
	}
	return noWinner
}

// enter - seats the session in the first empty slot. full reports that both
// slots are now occupied. The latch is not released here; the caller arms it
// once the opponents know each other.
func (that *seats) enter(sessionID string) (color string, accepted, full bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if i := that.indexOf(sessionID); i != noWinner {
		return that.slots[i].color, true, false
	}

	i := that.indexOf("")
	if i == noWinner {
		return NoColor, false, false
	}

	that.slots[i].sessionID = sessionID
	that.slots[i].ready = true

	return that.slots[i].color, true, that.slots[that.slots[i].opponent].sessionID != ""
}

// leave - frees the session's slot. A run still in play is settled in favour
// of whoever remains and its context is cancelled.
func (that *seats) leave(sessionID string) (opponent string, vacated, found bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	i := that.indexOf(sessionID)
	if sessionID == "" || i == noWinner {
		return "", false, false
	}

	that.slots[i].sessionID = ""
	that.slots[i].ready = false
	opponent = that.slots[that.slots[i].opponent].sessionID

	if that.state == stateRunning && that.run != nil && !that.run.settled {
		that.run.winner = noWinner
		if opponent != "" {
			that.run.winner = that.slots[i].opponent
		}
		that.run.settled = true
		that.run.cancel()
	}

	return opponent, opponent == "", true
}

// reset - marks the session ready for the next run. Ignored mid-run.
func (that *seats) reset(sessionID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	i := that.indexOf(sessionID)
	if sessionID == "" || i == noWinner || that.state == stateRunning {
		return false
	}

	that.slots[i].ready = true
	that.latch.Broadcast()

	return true
}

// arm - wakes the turn loop to re-check readiness.
func (that *seats) arm() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.latch.Broadcast()
}

func (that *seats) occupant(i int) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.slots[i].sessionID
}

func (that *seats) occupants() [2]string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return [2]string{that.slots[0].sessionID, that.slots[1].sessionID}
}

func (that *seats) opponentOf(sessionID string) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	i := that.indexOf(sessionID)
	if sessionID == "" || i == noWinner {
		return ""
	}

	return that.slots[that.slots[i].opponent].sessionID
}

func (that *seats) current() state {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *seats) startable() bool {
	return that.state == stateWaiting &&
		that.slots[0].sessionID != "" && that.slots[0].ready &&
		that.slots[1].sessionID != "" && that.slots[1].ready
}

// awaitRun - blocks until both slots are ready, then opens a run. Returns
// false once the table is closed.
func (that *seats) awaitRun() (*run, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for !that.closed && !that.startable() {
		that.latch.Wait()
	}

	if that.closed {
		return nil, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	that.run = &run{
		ctx:          ctx,
		cancel:       cancel,
		participants: [2]string{that.slots[0].sessionID, that.slots[1].sessionID},
		winner:       noWinner,
	}
	that.state = stateRunning

	return that.run, true
}

// settle - records the board outcome unless a departure decided it first.
func (that *seats) settle(r *run, winner int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !r.settled {
		r.winner = winner
		r.settled = true
	}
}

// finish - enters FINISHED: returns the winner color and the live occupants
// to notify, and clears the ready flags of the run's participants. A winner
// who has since left reports no color, even if a newcomer holds the slot.
func (that *seats) finish(r *run) (string, []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	r.cancel()
	that.state = stateFinished

	color := NoColor
	if r.winner != noWinner && that.slots[r.winner].sessionID == r.participants[r.winner] {
		color = that.slots[r.winner].color
	}

	recipients := make([]string, 0, len(that.slots))
	for i := range that.slots {
		if that.slots[i].sessionID == "" {
			continue
		}
		recipients = append(recipients, that.slots[i].sessionID)
		if that.slots[i].sessionID == r.participants[i] {
			that.slots[i].ready = false
		}
	}

	return color, recipients
}

// rearm - FINISHED back to WAITING.
func (that *seats) rearm() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state = stateWaiting
	that.run = nil
	that.latch.Broadcast()
}

// close - releases the turn loop for good and aborts any run in play.
func (that *seats) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	if that.run != nil {
		that.run.cancel()
	}
	that.latch.Broadcast()
}
