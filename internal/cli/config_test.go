package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/road-spt/pkg/graph/path"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestLoadConfig(t *testing.T) {
	filename := writeFile(t, "roadspt.toml", `
[search]
algorithm = "astar"
file = "bavaria.txt"

[server]
max_routes = 10

[replay]
interval = "25ms"
map = true
`)

	cfg, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, "astar", cfg.Search.Algorithm)
	assert.Equal(t, "bavaria.txt", cfg.Search.File)
	assert.Equal(t, 10, cfg.Server.MaxRoutes)
	assert.Equal(t, ":8080", cfg.Server.Addr, "unset keys keep their default")
	assert.Equal(t, 25*time.Millisecond, cfg.Replay.Interval.Duration)
	assert.True(t, cfg.Replay.Map)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown key", "[search]\nalgo = \"astar\"\n", ErrUnknownConfigKey},
		{"unknown algorithm", "[search]\nalgorithm = \"bfs\"\n", path.ErrUnknownAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "roadspt.toml", tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := LoadConfig(writeFile(t, "roadspt.toml", "[replay]\ninterval = \"soon\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigFromContext(t *testing.T) {
	assert.Equal(t, DefaultConfig(), configFromContext(context.Background()))

	cfg := DefaultConfig()
	cfg.Search.File = "bavaria.txt"
	assert.Equal(t, cfg, configFromContext(withConfig(context.Background(), cfg)))
}
