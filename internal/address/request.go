package address

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// Tell - fire-and-forget send resolved at send time.
func Tell(sender actor.SenderContext, to Address, msg interface{}) {
	sender.Send(to.PID(sender.ActorSystem()), msg)
}

// Ask - deadline-bounded request expecting a reply of type T.
func Ask[T any](sender actor.SenderContext, to Address, msg interface{}, timeout time.Duration) (T, error) {
	return AskContext[T](context.Background(), sender, to, msg, timeout)
}

// AskContext - like Ask, but gives up as soon as ctx is done. A reply that
// arrives after that is discarded.
func AskContext[T any](ctx context.Context, sender actor.SenderContext, to Address, msg interface{}, timeout time.Duration) (T, error) {
	return awaitContext[T](ctx, to, Request(sender, to, msg, timeout))
}

// Request - sends msg now and returns the pending reply. Requests and Tells
// issued in order from one goroutine reach the target in that order, however
// the replies are awaited.
func Request(sender actor.SenderContext, to Address, msg interface{}, timeout time.Duration) *actor.Future {
	return sender.RequestFuture(to.PID(sender.ActorSystem()), msg, timeout)
}

// Await - the reply to a Request, with the same error mapping as Ask.
func Await[T any](to Address, future *actor.Future) (T, error) {
	return awaitContext[T](context.Background(), to, future)
}

func awaitContext[T any](ctx context.Context, to Address, future *actor.Future) (T, error) {
	var zero T

	var (
		res interface{}
		err error
	)
	if ctx.Done() == nil {
		res, err = future.Result()
	} else {
		done := make(chan struct{})
		go func() {
			res, err = future.Result()
			close(done)
		}()

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("request %s: %w", to, ctx.Err())
		case <-done:
		}
	}

	switch {
	case errors.Is(err, actor.ErrTimeout):
		return zero, fmt.Errorf("%w: %s", apperror.ErrTimeout, to)
	case errors.Is(err, actor.ErrDeadLetter):
		return zero, fmt.Errorf("%w: %s", apperror.ErrNoHandler, to)
	case err != nil:
		return zero, fmt.Errorf("request %s: %w", to, err)
	}

	reply, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T from %s", apperror.ErrUnexpectedReply, res, to)
	}

	return reply, nil
}
