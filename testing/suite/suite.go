package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	app "github.com/rocketscienceinc/gomoku-backend/internal"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
)

const (
	maxWaitDuration = 30 * time.Second

	// Wait bounds every expectation on an asynchronous outcome.
	Wait = 3 * time.Second
)

type Suite struct {
	*testing.T
	Logger *slog.Logger
	Conf   *config.Config
	System *actor.ActorSystem
}

// Option adjusts the timings before the runtime is deployed.
type Option func(conf *config.Config)

func WithTurnTimeout(timeout time.Duration) Option {
	return func(conf *config.Config) {
		conf.Game.TurnTimeout = timeout
	}
}

func WithIdle(leave, expire time.Duration) Option {
	return func(conf *config.Config) {
		conf.Game.IdleLeave = leave
		conf.Game.IdleExpire = expire
	}
}

// New - deploys every shared actor on a fresh actor system.
func New(t *testing.T, opts ...Option) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	conf := &config.Config{
		LogLevel:   "warn",
		SocketPort: "0",
		Game: config.Game{
			TurnTimeout:    2 * time.Second,
			RequestTimeout: time.Second,
			IdleLeave:      time.Minute,
			IdleExpire:     2 * time.Minute,
			SweepInterval:  20 * time.Millisecond,
		},
		Bridge: config.Bridge{
			HeartbeatInterval: time.Second,
			RequestTimeout:    time.Second,
		},
	}
	for _, opt := range opts {
		opt(conf)
	}

	if err := conf.Validate(); err != nil {
		t.Fatalf("invalid suite config: %v", err)
	}

	runtime, err := app.Deploy(logger, conf)
	if err != nil {
		t.Fatalf("could not deploy actors: %v", err)
	}

	t.Cleanup(runtime.Stop)

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Conf:   conf,
		System: runtime.System,
	}
}
