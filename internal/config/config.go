package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrNonPositiveDuration = errors.New("duration must be positive")
	ErrIdleThresholds      = errors.New("idle-leave must be shorter than idle-expire")
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game       Game   `yaml:"game"`
	Bridge     Bridge `yaml:"bridge"`
}

// Game - timing of the actor runtime.
type Game struct {
	TurnTimeout    time.Duration `yaml:"turn-timeout" env:"GAME_TURN_TIMEOUT" env-default:"30s"`
	RequestTimeout time.Duration `yaml:"request-timeout" env:"GAME_REQUEST_TIMEOUT" env-default:"5s"`
	IdleLeave      time.Duration `yaml:"idle-leave" env:"GAME_IDLE_LEAVE" env-default:"45s"`
	IdleExpire     time.Duration `yaml:"idle-expire" env:"GAME_IDLE_EXPIRE" env-default:"60s"`
	SweepInterval  time.Duration `yaml:"sweep-interval" env:"GAME_SWEEP_INTERVAL" env-default:"1s"`
}

// Bridge - timing of the websocket transport.
type Bridge struct {
	HeartbeatInterval time.Duration `yaml:"heartbeat-interval" env:"BRIDGE_HEARTBEAT_INTERVAL" env-default:"10s"`
	RequestTimeout    time.Duration `yaml:"request-timeout" env:"BRIDGE_REQUEST_TIMEOUT" env-default:"10s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads path when it exists, otherwise the environment and defaults only.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	durations := map[string]time.Duration{
		"game.turn-timeout":         that.Game.TurnTimeout,
		"game.request-timeout":      that.Game.RequestTimeout,
		"game.idle-leave":           that.Game.IdleLeave,
		"game.idle-expire":          that.Game.IdleExpire,
		"game.sweep-interval":       that.Game.SweepInterval,
		"bridge.heartbeat-interval": that.Bridge.HeartbeatInterval,
		"bridge.request-timeout":    that.Bridge.RequestTimeout,
	}
	for key, value := range durations {
		if value <= 0 {
			return fmt.Errorf("%w: %s", ErrNonPositiveDuration, key)
		}
	}

	if that.Game.IdleLeave >= that.Game.IdleExpire {
		return ErrIdleThresholds
	}

	return nil
}
