package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Game    GameConfig    `toml:"game"`
	SSH     SSHConfig     `toml:"ssh"`
	Metrics MetricsConfig `toml:"metrics"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type GameConfig struct {
	LevelsDir     string        `toml:"levels_dir"`
	Level         string        `toml:"level"` // level name inside levels_dir
	TickRate      time.Duration `toml:"tick_rate"`
	ScriptsDir    string        `toml:"scripts_dir"`
	Seed          int64         `toml:"seed"`           // 0 = seeded from the clock at boot
	TeleportDelay int           `toml:"teleport_delay"` // ticks
}

type SSHConfig struct {
	BindAddress   string        `toml:"bind_address"`
	HostKey       string        `toml:"host_key"` // generated on first start when missing
	PollInterval  time.Duration `toml:"poll_interval"`
	WriteTimeout  time.Duration `toml:"write_timeout"`
	KeysPerSecond int           `toml:"keys_per_second"` // 0 = unlimited
	MaxSessions   int           `toml:"max_sessions"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	BindAddress string `toml:"bind_address"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Game.TickRate <= 0:
		return errors.New("game.tick_rate must be positive")
	case c.Game.Level == "":
		return errors.New("game.level is required")
	case c.Game.TeleportDelay < 0:
		return errors.New("game.teleport_delay must not be negative")
	case c.SSH.PollInterval <= 0:
		return errors.New("ssh.poll_interval must be positive")
	case c.SSH.KeysPerSecond < 0:
		return errors.New("ssh.keys_per_second must not be negative")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q: want json or console", c.Logging.Format)
	}
	return nil
}

// Defaults returns the built-in configuration every file overrides.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "hilo",
		},
		Game: GameConfig{
			LevelsDir:     "levels",
			Level:         "map01",
			TickRate:      70 * time.Millisecond,
			ScriptsDir:    "scripts",
			TeleportDelay: 150,
		},
		SSH: SSHConfig{
			BindAddress:   "0.0.0.0:2222",
			HostKey:       "hilo_host_key.pem",
			PollInterval:  100 * time.Millisecond,
			WriteTimeout:  10 * time.Second,
			KeysPerSecond: 30,
			MaxSessions:   64,
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "127.0.0.1:9102",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
