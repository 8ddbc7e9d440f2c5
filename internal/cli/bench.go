package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
)

var ErrBenchMismatch = errors.New("cli: navigators disagree on path lengths")

// lengths closer than this are equal
const lengthTolerance = 1e-6

// benchTarget is one query with its reference result.
// Length is -1 and Hops 0 if the destination is unreachable.
type benchTarget struct {
	Origin      graph.Vertex
	Destination graph.Vertex
	Length      float64
	Hops        int // vertices on the path, origin and destination included
}

// benchResult sums up the KPIs of one navigator over all targets
type benchResult struct {
	algorithm          path.Algorithm
	runtime            time.Duration
	runtimeWithPath    time.Duration
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
	edgeRelaxations    int
	settledRatio       float64
	lengths            []float64
	hops               []int
}

type benchOpts struct {
	network    networkFlags
	n          int
	seed       int64
	targets    string
	store      string
	cpuProfile string
}

func newBenchCmd() *cobra.Command {
	opts := benchOpts{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare Dijkstra and A* on random queries",
		Long: `Run the same queries with Dijkstra and A* concurrently and compare their search spaces.

The queries are random vertex pairs, or read from a targets file with lines "origin destination length hops".
Every result is checked against the reference length.`,
		Example: `  roadspt bench -f bavaria.txt -n 500 --seed 42 --store targets.txt
  roadspt bench -f bavaria.txt --targets targets.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.network.resolve(cmd); err != nil {
				return err
			}
			return runBench(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.network.file, "file", "f", "", "network file")
	cmd.Flags().IntVarP(&opts.n, "count", "n", 100, "number of queries")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for random queries, 0 picks one")
	cmd.Flags().StringVar(&opts.targets, "targets", "", "read the queries from this file instead of creating random ones")
	cmd.Flags().StringVar(&opts.store, "store", "", "write the created queries to this file")
	cmd.Flags().StringVar(&opts.cpuProfile, "cpu", "", "write a cpu profile to this file")

	return cmd
}

func runBench(cmd *cobra.Command, opts benchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	n, err := loadNetwork(ctx, opts.network.file)
	if err != nil {
		return err
	}

	static := n.Static()
	var targets []benchTarget
	if opts.targets != "" {
		if targets, err = readTargetsFile(opts.targets); err != nil {
			return err
		}
		if opts.n < len(targets) {
			targets = targets[:opts.n]
		}
		logger.Info("Read targets", "file", opts.targets, "count", len(targets))
	} else {
		prog := newProgress(logger)
		if targets, err = createTargets(ctx, static, opts.n, opts.seed); err != nil {
			return err
		}
		prog.done("Created targets", "count", len(targets))
		if opts.store != "" {
			if err := writeTargetsFile(targets, opts.store); err != nil {
				return err
			}
			printFile(cmd.OutOrStdout(), opts.store)
		}
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	algorithms := []path.Algorithm{path.Dijkstra, path.AStar}
	results := make([]benchResult, len(algorithms))

	// the network is only read, every goroutine gets its own navigator
	g, gctx := errgroup.WithContext(ctx)
	for i, algorithm := range algorithms {
		g.Go(func() error {
			navigator := path.NewNavigator(static, algorithm, n.Positions)
			result, err := benchmark(gctx, navigator, targets)
			results[i] = result
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	mismatches := 0
	for _, result := range results {
		mismatches += showResults(w, result, targets)
	}
	if mismatches > 0 {
		return fmt.Errorf("%w: %d results", ErrBenchMismatch, mismatches)
	}
	printSuccess(w, "All %d queries agree", len(targets))
	return nil
}

// Create n random queries and solve them with a reference Dijkstra
func createTargets(ctx context.Context, g graph.Graph, n int, seed int64) ([]benchTarget, error) {
	gofakeit.Seed(seed)
	reference := path.NewNavigator(g, path.Dijkstra, nil)

	targets := make([]benchTarget, n)
	for i := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		origin := gofakeit.Number(0, g.VertexCount()-1)
		destination := gofakeit.Number(0, g.VertexCount()-1)
		length := reference.ComputeShortestPath(origin, destination)
		if err := reference.Err(); err != nil {
			return nil, err
		}
		targets[i] = benchTarget{
			Origin:      origin,
			Destination: destination,
			Length:      length,
			Hops:        len(reference.GetPath(origin, destination)),
		}
	}
	return targets, nil
}

func readTargets(r io.Reader) ([]benchTarget, error) {
	scanner := bufio.NewScanner(r)
	targets := make([]benchTarget, 0)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 || line[0] == '#' {
			// skip empty lines and comments
			continue
		}
		var t benchTarget
		if _, err := fmt.Sscanf(line, "%d %d %g %d", &t.Origin, &t.Destination, &t.Length, &t.Hops); err != nil {
			return nil, fmt.Errorf("targets line %d: %w", lineNumber, err)
		}
		targets = append(targets, t)
	}
	return targets, scanner.Err()
}

func readTargetsFile(filename string) ([]benchTarget, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readTargets(file)
}

func writeTargets(w io.Writer, targets []benchTarget) error {
	writer := bufio.NewWriter(w)
	for _, t := range targets {
		fmt.Fprintf(writer, "%d %d %g %d\n", t.Origin, t.Destination, t.Length, t.Hops)
	}
	return writer.Flush()
}

func writeTargetsFile(targets []benchTarget, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writeTargets(file, targets); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Run all targets with the navigator
func benchmark(ctx context.Context, navigator *path.SearchNavigator, targets []benchTarget) (benchResult, error) {
	result := benchResult{
		algorithm: navigator.Algorithm(),
		lengths:   make([]float64, len(targets)),
		hops:      make([]int, len(targets)),
	}

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		start := time.Now()
		length := navigator.ComputeShortestPath(target.Origin, target.Destination)
		elapsed := time.Since(start)
		if err := navigator.Err(); err != nil {
			return result, fmt.Errorf("query %d (%d -> %d): %w", i, target.Origin, target.Destination, err)
		}
		vertices := navigator.GetPath(target.Origin, target.Destination)
		elapsedPath := time.Since(start)

		result.runtime += elapsed
		result.runtimeWithPath += elapsedPath
		result.pqPops += navigator.GetPqPops()
		result.pqUpdates += navigator.GetPqUpdates()
		result.relaxationAttempts += navigator.GetRelaxationAttempts()
		result.edgeRelaxations += navigator.GetEdgeRelaxations()
		result.settledRatio += navigator.Tree().SettledRatio()
		result.lengths[i] = length
		result.hops[i] = len(vertices)
	}
	return result, nil
}

func sameLength(a, b float64) bool {
	return math.Abs(a-b) <= lengthTolerance*math.Max(1, math.Abs(b))
}

// Print the averages of the result and every query which does not match its reference.
// It returns the number of mismatching queries.
func showResults(w io.Writer, result benchResult, targets []benchTarget) int {
	completed := len(targets)
	fmt.Fprintln(w, StyleTitle.Render(result.algorithm.String()))
	if completed == 0 {
		printDetail(w, "no queries")
		return 0
	}

	avg := func(sum int) string { return fmt.Sprint(sum / completed) }
	printKeyValue(w, "runtime", fmt.Sprintf("%s, %s with path", result.runtime/time.Duration(completed), result.runtimeWithPath/time.Duration(completed)))
	printKeyValue(w, "pq pops", avg(result.pqPops))
	printKeyValue(w, "pq updates", avg(result.pqUpdates))
	printKeyValue(w, "attempts", avg(result.relaxationAttempts))
	printKeyValue(w, "relaxations", avg(result.edgeRelaxations))
	printKeyValue(w, "settled", fmt.Sprintf("%.2f%%", 100*result.settledRatio/float64(completed)))

	mismatches := 0
	for i, target := range targets {
		length, hops := result.lengths[i], result.hops[i]
		if !sameLength(length, target.Length) {
			printError(w, "Case %d (%d -> %d) has invalid length. Has: %g, Reference: %g, Difference: %g",
				i, target.Origin, target.Destination, length, target.Length, length-target.Length)
			mismatches++
		} else if length >= 0 && hops == 0 {
			printError(w, "Case %d (%d -> %d) has no path", i, target.Origin, target.Destination)
			mismatches++
		} else if hops != target.Hops {
			// equally short paths may differ in their number of vertices
			printWarning(w, "Case %d (%d -> %d) has %d hops, reference: %d", i, target.Origin, target.Destination, hops, target.Hops)
		}
	}
	return mismatches
}
