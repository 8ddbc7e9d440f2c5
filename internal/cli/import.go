package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/natevvv/road-spt/internal/osmimport"
	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/road"
)

var ErrMissingInput = errors.New("cli: no input file given, use -i")

type importOpts struct {
	input    string
	output   string
	merge    bool
	segments string
}

func newImportCmd() *cobra.Command {
	opts := importOpts{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a road network from an OpenStreetMap extract",
		Long: `Read the drivable roads of an .osm.pbf or .osm extract and write them as network file.

Every OSM node on a road becomes a vertex, edge weights are the distances in web mercator metres.`,
		Example: `  roadspt import -i bavaria.osm.pbf -o bavaria.txt --merge
  roadspt import -i town.osm -o town.txt --segments town.geojson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.input == "" {
				return ErrMissingInput
			}
			return runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "OSM extract (.osm.pbf, .osm)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "network.txt", "network file to write")
	cmd.Flags().BoolVar(&opts.merge, "merge", false, "merge segments which continue each other")
	cmd.Flags().StringVar(&opts.segments, "segments", "", "also write the road segments as GeoJSON to this file")

	return cmd
}

func runImport(cmd *cobra.Command, opts importOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	w := cmd.OutOrStdout()

	importer, err := osmimport.NewImporter(opts.input, logger)
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	if err := importer.Import(ctx); err != nil {
		return err
	}
	segments := importer.Roads()
	prog.done("Imported roads", "file", opts.input, "segments", len(segments))

	if opts.merge {
		prog = newProgress(logger)
		merger := road.NewMerger(segments)
		merger.Merge()
		segments = merger.Roads()
		prog.done("Merged roads", "segments", len(segments), "merges", merger.MergeCount(), "unmergable", merger.UnmergableRoadCount())
	}

	if opts.segments != "" {
		if err := osmimport.ExportSegmentsFile(segments, opts.segments); err != nil {
			return err
		}
		printFile(w, opts.segments)
	}

	n, err := road.BuildNetwork(segments)
	if err != nil {
		return err
	}
	if err := graph.WriteNetworkFile(n, opts.output); err != nil {
		return err
	}

	printSuccess(w, "Built network with %s vertices and %s roads",
		StyleNumber.Render(fmt.Sprint(n.VertexCount())), StyleNumber.Render(fmt.Sprint(n.Graph.EdgeCount())))
	printFile(w, opts.output)
	return nil
}
