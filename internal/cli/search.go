package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/natevvv/road-spt/pkg/graph/path"
)

type searchOpts struct {
	network    networkFlags
	source     int
	target     int
	trace      bool
	dot        string
	maxSettled int
}

func newSearchCmd() *cobra.Command {
	opts := searchOpts{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Compute the shortest path between two vertices",
		Long: `Compute the shortest path from the source to the target and print its length, its vertices and the number of visited vertices.

Without a target, Dijkstra computes the full shortest path tree of the source.`,
		Example: `  roadspt search -f bavaria.txt -s 12 -t 4711 --algorithm astar
  roadspt search -f bavaria.txt -s 12 --dot tree.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.network.resolve(cmd); err != nil {
				return err
			}
			return runSearch(cmd, opts)
		},
	}

	opts.network.register(cmd)
	cmd.Flags().IntVarP(&opts.source, "source", "s", 0, "source vertex")
	cmd.Flags().IntVarP(&opts.target, "target", "t", -1, "target vertex, none computes the full tree")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print every settled vertex")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the shortest path tree in DOT format to this file")
	cmd.Flags().IntVar(&opts.maxSettled, "max-settled", 0, "stop after this many settled vertices, 0 is unlimited")

	return cmd
}

func runSearch(cmd *cobra.Command, opts searchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	w := cmd.OutOrStdout()

	n, err := loadNetwork(ctx, opts.network.file)
	if err != nil {
		return err
	}

	options := []path.Option{
		path.WithAlgorithm(opts.network.algorithm),
		path.WithPositions(n.Positions),
		path.WithMaxSettled(opts.maxSettled),
		path.WithLogger(logger),
	}
	if opts.target >= 0 {
		options = append(options, path.WithTarget(opts.target))
	}
	spt, err := path.NewShortestPathTree(n.Digraph, opts.source, options...)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	for event := range spt.Steps() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.trace {
			printDetail(w, "%5d  vertex %-8d distance %.2f  priority %.2f", event.Step, event.Vertex, event.Distance, event.Priority)
		}
	}
	prog.done("Search finished", "algorithm", spt.Algorithm(), "state", spt.State())

	printSearchResult(cmd, spt)

	if opts.dot != "" {
		dot, err := spt.DOT()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return err
		}
		printFile(w, opts.dot)
	}
	return nil
}

func printSearchResult(cmd *cobra.Command, spt *path.ShortestPathTree) {
	w := cmd.OutOrStdout()
	kpis := spt.KPIs()

	target, ok := spt.Target()
	switch {
	case !ok:
		reached := 0
		for v := range spt.Graph().VertexCount() {
			if spt.HasPathTo(v) {
				reached++
			}
		}
		printSuccess(w, "Shortest path tree of %s", StyleNumber.Render(fmt.Sprint(spt.Source())))
		printKeyValue(w, "reached", fmt.Sprintf("%d/%d", reached, spt.Graph().VertexCount()))
	case spt.State() == path.DoneLimitReached:
		printWarning(w, "Search stopped after %d settled vertices", spt.NumberOfVisitedVertices())
	case spt.HasPathTo(target):
		printSuccess(w, "Path %d %s %d", spt.Source(), iconArrow, target)
		printKeyValue(w, "distance", fmt.Sprintf("%.2f", spt.DistTo(target)))
		printKeyValue(w, "path", formatPath(spt.PathVertices(target), 20))
		printKeyValue(w, "hops", fmt.Sprint(len(spt.PathTo(target))))
	default:
		printError(w, "No path %d %s %d", spt.Source(), iconArrow, target)
	}

	printKeyValue(w, "algorithm", spt.Algorithm().String())
	printKeyValue(w, "visited", fmt.Sprintf("%d (%.1f%%)", spt.NumberOfVisitedVertices(), 100*spt.SettledRatio()))
	printKeyValue(w, "pq", fmt.Sprintf("%d pops, %d updates", kpis.PqPops, kpis.PqUpdates))
	printKeyValue(w, "relaxations", fmt.Sprintf("%d of %d edges", kpis.RelaxedEdges, kpis.RelaxationAttempts))
}
