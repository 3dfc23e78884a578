package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/rocketscienceinc/gomoku-backend/internal/address"
	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/room"
	"github.com/rocketscienceinc/gomoku-backend/internal/service"
	"github.com/rocketscienceinc/gomoku-backend/internal/session"
	"github.com/rocketscienceinc/gomoku-backend/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

// deployment - one shared actor and the address it answers on.
type deployment struct {
	name  address.Address
	props *actor.Props
}

// Runtime is the deployed actor system.
type Runtime struct {
	logger *slog.Logger
	System *actor.ActorSystem
	pids   []*actor.PID
}

// Deploy - starts every shared actor in dependency order.
func Deploy(logger *slog.Logger, conf *config.Config) (*Runtime, error) {
	system := actor.NewActorSystem(actor.WithLoggerFactory(func(*actor.ActorSystem) *slog.Logger {
		return logger.With("component", "actor system")
	}))

	runtime := &Runtime{
		logger: logger.With("component", "runtime"),
		System: system,
	}

	deployments := []deployment{
		{address.SessionRegistry, service.SessionRegistryProps(logger, nil)},
		{address.NicknameDirectory, service.NicknameDirectoryProps()},
		{address.PresenceTracker, service.PresenceTrackerProps(nil)},
		{address.RoomCoordinator, room.Props(logger, conf.Game)},
		{address.Login, session.LoginProps(logger, conf.Game)},
	}

	for _, d := range deployments {
		pid, err := d.name.Spawn(system, d.props)
		if err != nil {
			runtime.Stop()
			return nil, fmt.Errorf("deploy %s: %w", d.name, err)
		}

		runtime.pids = append(runtime.pids, pid)
	}

	return runtime, nil
}

// Stop - unwinds the actors in reverse dependency order, then the system.
func (that *Runtime) Stop() {
	for i := len(that.pids) - 1; i >= 0; i-- {
		if err := that.System.Root.StopFuture(that.pids[i]).Wait(); err != nil {
			that.logger.Error("failed to stop actor", "pid", that.pids[i].Id, "error", err)
		}
	}

	that.System.Shutdown()
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runtime, err := Deploy(logger, conf)
	if err != nil {
		return fmt.Errorf("could not deploy actors: %w", err)
	}

	bridge := websocket.New(logger, runtime.System, conf.Bridge)

	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := bridge.Start(conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-wsErrCh:
		runtime.Stop()
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	runtime.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = bridge.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("could not stop WebSocket server: %w", err)
	}

	log.Info("Application stopped")

	return nil
}
