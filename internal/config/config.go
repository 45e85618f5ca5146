// Package config loads a rover daemon's per-rover configuration: its name,
// map file, watched command file, log level, and file-watch backoff,
// layering a YAML file under command-line flag overrides via koanf.
package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Rover is one rover's resolved configuration.
type Rover struct {
	Name          string        `koanf:"name"`
	MapPath       string        `koanf:"map_path"`
	CommandFile   string        `koanf:"command_file"`
	LogLevel      string        `koanf:"log_level"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// Config is the top-level daemon configuration: one or more rovers.
type Config struct {
	Rovers []Rover `koanf:"rovers"`
}

// Load reads configPath (YAML) and layers flags on top (flags win), using
// koanf's file provider + yaml parser for the file layer and the posflag
// provider for the flag layer, seeded with a confmap default layer. The
// top-level log_level and watch_debounce fill any rover that leaves them unset.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]any{
		"log_level":      "info",
		"watch_debounce": "250ms",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %q: %w", configPath, err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("config: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if len(cfg.Rovers) == 0 {
		return nil, fmt.Errorf("config: no rovers configured")
	}
	for i := range cfg.Rovers {
		if cfg.Rovers[i].LogLevel == "" {
			cfg.Rovers[i].LogLevel = k.String("log_level")
		}
		if cfg.Rovers[i].WatchDebounce == 0 {
			cfg.Rovers[i].WatchDebounce = k.Duration("watch_debounce")
		}
	}
	for i, r := range cfg.Rovers {
		if r.Name == "" {
			return nil, fmt.Errorf("config: rovers[%d] missing name", i)
		}
		if r.MapPath == "" {
			return nil, fmt.Errorf("config: rover %q missing map_path", r.Name)
		}
		if r.CommandFile == "" {
			return nil, fmt.Errorf("config: rover %q missing command_file", r.Name)
		}
	}
	return &cfg, nil
}
