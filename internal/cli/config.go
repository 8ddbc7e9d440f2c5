package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/natevvv/road-spt/pkg/graph/path"
	"github.com/natevvv/road-spt/pkg/server/openapi_server"
)

var ErrUnknownConfigKey = errors.New("cli: unknown config key")

// Config is read from a TOML file. Command line flags take precedence over it.
//
//	[search]
//	algorithm = "astar"
//	file = "bavaria.txt"
//
//	[server]
//	addr = ":8080"
//	max_routes = 500
//	navigator = "dijkstra"
//
//	[replay]
//	interval = "50ms"
//	map = true
type Config struct {
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
	Replay ReplayConfig `toml:"replay"`
}

type SearchConfig struct {
	Algorithm string `toml:"algorithm"`
	File      string `toml:"file"` // network used by search, replay, bench and serve
}

type ServerConfig struct {
	Addr      string `toml:"addr"`
	MaxRoutes int    `toml:"max_routes"`
	Navigator string `toml:"navigator"`
}

type ReplayConfig struct {
	Interval duration `toml:"interval"`
	Map      bool     `toml:"map"` // draw all vertices below the search
}

// duration decodes strings like "50ms"
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{Algorithm: path.Dijkstra.String()},
		Server: ServerConfig{Addr: ":8080", MaxRoutes: openapi_server.DefaultMaxRoutes},
		Replay: ReplayConfig{Interval: duration{100 * time.Millisecond}},
	}
}

// LoadConfig reads filename over the defaults. Unknown keys are an error.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(filename, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("%w in %s: %s", ErrUnknownConfigKey, filename, strings.Join(keys, ", "))
	}
	if _, err := path.ParseAlgorithm(cfg.Search.Algorithm); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", filename, err)
	}
	return cfg, nil
}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns the config of ctx, or the defaults if there is none
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return DefaultConfig()
}
