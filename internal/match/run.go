package match

import (
	"fmt"
	"log/slog"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/messages"
)

var marks = [2]gomoku.Mark{gomoku.First, gomoku.Second}

// turnLoop - plays one run each time the latch opens, until the table closes.
func (that *Actor) turnLoop(system *actor.ActorSystem) {
	defer close(that.done)

	for {
		r, ok := that.seats.awaitRun()
		if !ok {
			return
		}

		that.play(system.Root, r)
	}
}

// play - one run. The deferred block is the FINISHED exit: it runs exactly
// once per run whichever way the body ends.
func (that *Actor) play(sender actor.SenderContext, r *run) {
	log := that.logger.With("method", "play")
	log.Info("run started", "black", r.participants[0], "white", r.participants[1])

	defer func() {
		if p := recover(); p != nil {
			log.Error("run panicked", "panic", fmt.Sprint(p))
			that.seats.settle(r, noWinner)
		}

		winner, recipients := that.seats.finish(r)
		for _, sessionID := range recipients {
			address.Tell(sender, address.SessionOut(sessionID), &messages.End{Winner: winner})
		}
		that.seats.rearm()

		log.Info("run finished", "winner", winner)
	}()

	that.seats.settle(r, that.turns(sender, r, log))
}

// turns - alternates moves until the board decides or a player forfeits.
// Returns the winning slot index or noWinner for a draw.
func (that *Actor) turns(sender actor.SenderContext, r *run, log *slog.Logger) int {
	board := gomoku.NewBoard()
	timeout := int(that.timing.TurnTimeout.Seconds())

	for active := 0; ; active = 1 - active {
		opponent := 1 - active
		mover, waiting := r.participants[active], r.participants[opponent]

		address.Tell(sender, address.SessionOut(waiting), &messages.OpponentToPut{Timeout: timeout})

		reply, err := address.AskContext[*messages.ClientReply](r.ctx, sender, address.SessionOut(mover),
			&messages.ToPut{Timeout: timeout}, that.timing.TurnTimeout)
		if err != nil {
			log.Info("player forfeits", "sessionID", mover, "error", err)
			return opponent
		}

		put := messages.DecodePut(reply.Payload)
		if err = board.Place(put.X, put.Y, marks[active]); err != nil {
			log.Warn("invalid move ends the run", "sessionID", mover, "error", err)
			return opponent
		}

		address.Tell(sender, address.SessionOut(waiting), put)

		switch {
		case gomoku.Wins(board, put.X, put.Y):
			return active
		case board.Full():
			return noWinner
		}
	}
}
