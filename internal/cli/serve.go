package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/natevvv/road-spt/pkg/graph"
	"github.com/natevvv/road-spt/pkg/server/openapi_server"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	file      string
	addr      string
	maxRoutes int
	navigator string
}

func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing API",
		Long: `Serve the routing API over HTTP. The network is loaded in the background, until then every endpoint but /healthz answers with 503.

Computed routes are kept in memory for replays, the oldest route is dropped once --max-routes is reached.`,
		Example: `  roadspt serve -f bavaria.txt --addr :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if !cmd.Flags().Changed("file") {
				opts.file = cfg.Search.File
			}
			if opts.file == "" {
				return ErrMissingNetwork
			}
			if !cmd.Flags().Changed("addr") {
				opts.addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("max-routes") {
				opts.maxRoutes = cfg.Server.MaxRoutes
			}
			if !cmd.Flags().Changed("navigator") {
				opts.navigator = cfg.Server.Navigator
			}
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "network file")
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&opts.maxRoutes, "max-routes", openapi_server.DefaultMaxRoutes, "number of routes kept for replays")
	cmd.Flags().StringVar(&opts.navigator, "navigator", "", "initial navigator (dijkstra, astar)")

	return cmd
}

func runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	var navigator *string
	if opts.navigator != "" {
		navigator = &opts.navigator
	}

	load := func() (*graph.Network, error) { return loadNetwork(ctx, opts.file) }
	service := openapi_server.NewDefaultApiService(load, navigator, opts.maxRoutes, logger)
	controller := openapi_server.NewDefaultApiController(service)

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           openapi_server.NewRouter(logger, controller),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Listening", "addr", opts.addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
