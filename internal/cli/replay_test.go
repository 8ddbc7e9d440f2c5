package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
)

func newTestReplayModel(t *testing.T, opts ...path.Option) replayModel {
	t.Helper()
	n, err := graph.ReadNetwork(strings.NewReader(network))
	require.NoError(t, err)
	spt, err := path.NewShortestPathTree(n.Digraph, 0, append([]path.Option{path.WithPositions(n.Positions)}, opts...)...)
	require.NoError(t, err)
	m := newReplayModel(spt, n.Positions, time.Millisecond, true)
	t.Cleanup(m.stop)
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// tickUntilDone sends ticks until the model stops asking for more and returns the number of ticks
func tickUntilDone(t *testing.T, m replayModel) (replayModel, int) {
	t.Helper()
	ticks := 0
	for cmd := m.Init(); cmd != nil; ticks++ {
		require.Less(t, ticks, 10, "replay does not end")
		var model tea.Model
		model, cmd = m.Update(tickMsg(time.Now()))
		m = model.(replayModel)
	}
	return m, ticks
}

func TestReplayModelRunsToTarget(t *testing.T) {
	m := newTestReplayModel(t, path.WithTarget(2), path.WithAlgorithm(path.AStar))
	assert.Contains(t, m.View(), "running")

	m, ticks := tickUntilDone(t, m)
	assert.True(t, m.done)
	assert.Equal(t, ticks, m.frame.Step+1)
	assert.Equal(t, 2, m.frame.Vertex)
	assert.Equal(t, []graph.Vertex{0, 2}, m.frame.Path)

	view := m.View()
	assert.Contains(t, view, "astar 0 → 2")
	assert.Contains(t, view, "found")
	assert.Contains(t, view, "@")
	assert.Contains(t, view, "#")
}

func TestReplayModelFullTree(t *testing.T) {
	m, ticks := tickUntilDone(t, newTestReplayModel(t))
	assert.Equal(t, 4, ticks)
	assert.Contains(t, m.View(), "exhausted")
}

func TestReplayModelPause(t *testing.T) {
	m := newTestReplayModel(t, path.WithTarget(3))

	model, _ := m.Update(key(" "))
	m = model.(replayModel)
	require.True(t, m.paused)
	assert.Contains(t, m.View(), "paused")

	model, cmd := m.Update(tickMsg(time.Now()))
	m = model.(replayModel)
	assert.Nil(t, cmd)
	assert.False(t, m.started)

	model, _ = m.Update(key("n"))
	m = model.(replayModel)
	assert.True(t, m.started)
	assert.Equal(t, 0, m.frame.Vertex)

	model, cmd = m.Update(key(" "))
	m = model.(replayModel)
	assert.False(t, m.paused)
	assert.NotNil(t, cmd, "resuming schedules the next tick")
}

func TestReplayModelQuit(t *testing.T) {
	m := newTestReplayModel(t, path.WithTarget(3))
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReplayModelResize(t *testing.T) {
	m := newTestReplayModel(t, path.WithTarget(3))
	model, _ := m.Update(tea.WindowSizeMsg{Width: 32, Height: 16})
	m = model.(replayModel)

	grid := m.grid()
	require.Len(t, grid, 10)
	assert.Len(t, grid[0], 30)

	// north is up: vertex 4 at (50, 50) is the top right corner
	row, col := m.project(m.pos[4])
	assert.Equal(t, 0, row)
	assert.Equal(t, 29, col)
	assert.Equal(t, cellVertex, grid[row][col])
	row, col = m.project(m.pos[0])
	assert.Equal(t, 9, row)
	assert.Equal(t, 0, col)
	assert.Equal(t, cellEndpoint, grid[row][col])
}
