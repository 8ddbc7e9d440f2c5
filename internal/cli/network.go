package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/graph/path"
)

var ErrMissingNetwork = errors.New("cli: no network file given, use -f or [search] file")

// networkFlags are shared by every command which reads a network
type networkFlags struct {
	file      string
	algorithm path.Algorithm
}

func (f *networkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "network file")
	cmd.Flags().VarP(&f.algorithm, "algorithm", "a", "search algorithm (dijkstra, astar)")
}

// resolve fills the flags the user did not set from the config
func (f *networkFlags) resolve(cmd *cobra.Command) error {
	cfg := configFromContext(cmd.Context())
	if !cmd.Flags().Changed("file") {
		f.file = cfg.Search.File
	}
	if f.file == "" {
		return ErrMissingNetwork
	}
	if !cmd.Flags().Changed("algorithm") {
		return f.algorithm.Set(cfg.Search.Algorithm)
	}
	return nil
}

func loadNetwork(ctx context.Context, filename string) (*graph.Network, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	n, err := graph.ReadNetworkFile(filename)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded network", "file", filename, "vertices", n.VertexCount(), "edges", n.Digraph.EdgeCount())
	return n, nil
}
