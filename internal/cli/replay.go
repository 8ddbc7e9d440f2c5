package cli

import (
	"fmt"
	"iter"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/natevvv/road-spt/pkg/geometry"
	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
	"github.com/natevvv/road-spt/pkg/replay"
)

type replayOpts struct {
	network  networkFlags
	source   int
	target   int
	interval time.Duration
	showMap  bool
}

func newReplayCmd() *cobra.Command {
	opts := replayOpts{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Watch a search settle vertices step by step",
		Long: `Run a search and draw it in the terminal: every tick settles one vertex and shows the best path to it.

Keys: space pauses, n steps while paused, q quits.`,
		Example: `  roadspt replay -f grid.txt -s 0 -t 99 --algorithm astar --interval 50ms --map`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.network.resolve(cmd); err != nil {
				return err
			}
			cfg := configFromContext(cmd.Context())
			if !cmd.Flags().Changed("interval") {
				opts.interval = cfg.Replay.Interval.Duration
			}
			if !cmd.Flags().Changed("map") {
				opts.showMap = cfg.Replay.Map
			}
			return runReplay(cmd, opts)
		},
	}

	opts.network.register(cmd)
	cmd.Flags().IntVarP(&opts.source, "source", "s", 0, "source vertex")
	cmd.Flags().IntVarP(&opts.target, "target", "t", -1, "target vertex, none replays the full tree")
	cmd.Flags().DurationVar(&opts.interval, "interval", 100*time.Millisecond, "time between two steps")
	cmd.Flags().BoolVar(&opts.showMap, "map", false, "draw all vertices of the network")

	return cmd
}

func runReplay(cmd *cobra.Command, opts replayOpts) error {
	ctx := cmd.Context()
	n, err := loadNetwork(ctx, opts.network.file)
	if err != nil {
		return err
	}

	options := []path.Option{
		path.WithAlgorithm(opts.network.algorithm),
		path.WithPositions(n.Positions),
	}
	if opts.target >= 0 {
		options = append(options, path.WithTarget(opts.target))
	}
	spt, err := path.NewShortestPathTree(n.Digraph, opts.source, options...)
	if err != nil {
		return err
	}

	m := newReplayModel(spt, n.Positions, opts.interval, opts.showMap)
	defer m.stop()

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(replayModel); ok && fm.done {
		printSearchResult(cmd, spt)
	}
	return nil
}

// =============================================================================
// replayModel - animation of a running search
// =============================================================================

type tickMsg time.Time

// cell kinds, later kinds are drawn over earlier ones
const (
	cellEmpty = iota
	cellVertex
	cellSettled
	cellPath
	cellEndpoint
	cellCurrent
)

var cellRunes = [...]string{" ", "·", "o", "*", "#", "@"}

var cellStyles = [...]lipgloss.Style{
	lipgloss.NewStyle(),
	lipgloss.NewStyle().Foreground(colorDim),
	lipgloss.NewStyle().Foreground(colorCyan),
	lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	lipgloss.NewStyle().Foreground(colorWhite).Bold(true),
	lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
}

type replayModel struct {
	spt      *path.ShortestPathTree
	pos      []geometry.Point
	bound    orb.Bound
	next     func() (replay.Frame, bool)
	stop     func()
	interval time.Duration
	showMap  bool

	frame   replay.Frame
	started bool
	done    bool
	paused  bool
	width   int
	height  int
}

func newReplayModel(spt *path.ShortestPathTree, pos []geometry.Point, interval time.Duration, showMap bool) replayModel {
	next, stop := iter.Pull(replay.Frames(spt, pos))
	return replayModel{
		spt:      spt,
		pos:      pos,
		bound:    geometry.Bound(pos),
		next:     next,
		stop:     stop,
		interval: interval,
		showMap:  showMap,
		width:    60,
		height:   20,
	}
}

func (m replayModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m replayModel) Init() tea.Cmd {
	return m.tick()
}

// advance pulls the next frame, it marks the model done after the final one
func (m replayModel) advance() replayModel {
	frame, ok := m.next()
	if !ok {
		m.done = true
		return m
	}
	m.frame = frame
	m.started = true
	m.done = frame.Final
	return m
}

func (m replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			if !m.paused && !m.done {
				return m, m.tick()
			}
		case "n", "right":
			if m.paused && !m.done {
				m = m.advance()
			}
		}
	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		m = m.advance()
		if m.done {
			return m, nil
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-2, 10)
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

// project maps a position to a grid cell, north is up
func (m replayModel) project(p geometry.Point) (row, col int) {
	dx := m.bound.Max.X() - m.bound.Min.X()
	dy := m.bound.Max.Y() - m.bound.Min.Y()
	if dx > 0 {
		col = int((p.X() - m.bound.Min.X()) / dx * float64(m.width-1))
	}
	if dy > 0 {
		row = int((m.bound.Max.Y() - p.Y()) / dy * float64(m.height-1))
	}
	return row, col
}

func (m replayModel) grid() [][]int {
	cells := make([][]int, m.height)
	for i := range cells {
		cells[i] = make([]int, m.width)
	}
	mark := func(v graph.Vertex, kind int) {
		row, col := m.project(m.pos[v])
		cells[row][col] = max(cells[row][col], kind)
	}

	if m.showMap {
		for v := range m.pos {
			mark(v, cellVertex)
		}
	}
	if m.started {
		for _, v := range m.frame.Settled {
			mark(v, cellSettled)
		}
		for _, v := range m.frame.Path {
			mark(v, cellPath)
		}
		mark(m.frame.Vertex, cellCurrent)
	}
	mark(m.spt.Source(), cellEndpoint)
	if t, ok := m.spt.Target(); ok {
		mark(t, cellEndpoint)
	}
	return cells
}

func (m replayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s %d %s", m.spt.Algorithm(), m.spt.Source(), iconArrow)))
	if t, ok := m.spt.Target(); ok {
		b.WriteString(StyleTitle.Render(fmt.Sprintf(" %d", t)))
	}
	b.WriteString("\n")

	for _, row := range m.grid() {
		for _, kind := range row {
			b.WriteString(cellStyles[kind].Render(cellRunes[kind]))
		}
		b.WriteString("\n")
	}

	status := "running"
	switch {
	case m.done:
		status = m.spt.State().String()
	case m.paused:
		status = "paused"
	}
	if m.started {
		b.WriteString(StyleDim.Render(fmt.Sprintf("step %d  vertex %d  distance %.2f  ", m.frame.Step, m.frame.Vertex, m.frame.Distance)))
	}
	b.WriteString(StyleValue.Render(status))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space pause  n step  q quit"))
	return b.String()
}
