package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lintang/begraphes/docs"
	"lintang/begraphes/pkg/config"
	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/engine/routingalgorithm"
	"lintang/begraphes/pkg/guidance"
	"lintang/begraphes/pkg/kv"
	"lintang/begraphes/pkg/osmparser"
	"lintang/begraphes/pkg/server/rest"
	"lintang/begraphes/pkg/server/rest/service"
	"lintang/begraphes/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "begraphes",
		Short: "Shortest path engine for openstreetmap road networks",
		Long: `begraphes turns an openstreetmap .osm.pbf extract into a road network graph,
stores it in a pebble db and answers shortest path queries over http or from the command line.`,
		SilenceUsage: true,
	}
	preprocessCmd = &cobra.Command{
		Use:   "preprocess",
		Short: "Parse the .osm.pbf map file and save the road network graph",
		RunE:  runPreprocessCommand,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Load the saved graph and serve the navigation api",
		RunE:  runServeCommand,
	}
	routeCmd = &cobra.Command{
		Use:   "route",
		Short: "Run one shortest path query between two node ids",
		RunE:  runRouteCommand,
	}

	configPath string
	mapFile    string
	listenAddr string
	routeFrom  int32
	routeTo    int32
	routeMode  string
	routeAlg   string
	routeFilt  string
	routeTrace bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "begraphes.yaml", "path to the yaml config file")

	rootCmd.AddCommand(preprocessCmd)
	preprocessCmd.Flags().StringVarP(&mapFile, "file", "f", "", "openstreetmap file buat road network graphnya (overrides map_file)")

	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listenaddr", "", "server listen address (overrides listen_addr)")

	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().Int32Var(&routeFrom, "from", 0, "origin node id")
	routeCmd.Flags().Int32Var(&routeTo, "to", 0, "destination node id")
	routeCmd.Flags().StringVar(&routeMode, "mode", "length", "cost mode: length or time")
	routeCmd.Flags().StringVar(&routeAlg, "algorithm", "dijkstra", "dijkstra, astar or bellman-ford")
	routeCmd.Flags().StringVar(&routeFilt, "filter", "all", "arc filter: all, car or pedestrian")
	routeCmd.Flags().BoolVar(&routeTrace, "trace", false, "log every search event at debug level")
	_ = routeCmd.MarkFlagRequired("from")
	_ = routeCmd.MarkFlagRequired("to")
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	log := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	return cfg, log, nil
}

func openGraphStore(cfg config.Config, log *slog.Logger) (*kv.KVDB, error) {
	db, err := kv.OpenDB(cfg.DBPath, nil)
	if err != nil {
		return nil, err
	}
	return kv.NewKVDB(db, kv.WithWorkers(cfg.Workers), kv.WithProgress(true), kv.WithLogger(log)), nil
}

func runPreprocessCommand(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if mapFile != "" {
		cfg.MapFile = mapFile
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := osmparser.NewOSMParser(osmparser.WithProgress(true), osmparser.WithLogger(log))
	g, err := parser.Parse(ctx, cfg.MapFile)
	if err != nil {
		return err
	}

	store, err := openGraphStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.SaveGraph(g); err != nil {
		return err
	}
	fmt.Printf("\nroad network graph saved to %s\n", cfg.DBPath)
	return nil
}

func loadRouteAlgorithm(cfg config.Config, log *slog.Logger) (*routingalgorithm.RouteAlgorithm, *datastructure.Graph, error) {
	store, err := openGraphStore(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	g, err := store.LoadGraph()
	if err != nil {
		return nil, nil, fmt.Errorf("load graph from %s (run preprocess first?): %w", cfg.DBPath, err)
	}
	rt, err := routingalgorithm.NewRouteAlgorithm(g, routingalgorithm.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return rt, g, nil
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	rt, g, err := loadRouteAlgorithm(cfg, log)
	if err != nil {
		return err
	}
	snapper := snap.NewRoadSnapper(g, cfg.SnapCandidates)
	navigatorSvc := service.NewNavigationService(rt, snapper)

	docs.SwaggerInfo.Host = "localhost" + cfg.ListenAddr
	reg := prometheus.NewRegistry()
	r := rest.NewRouter(navigatorSvc, reg, log, "/swagger/doc.json")

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", cfg.ListenAddr), slog.Int("nodes", g.NumNodes()), slog.Int("arcs", g.NumArcs()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runRouteCommand(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := datastructure.ParseMode(routeMode)
	if err != nil {
		return err
	}
	filter, err := routingalgorithm.ParseArcFilter(routeFilt)
	if err != nil {
		return err
	}

	rt, g, err := loadRouteAlgorithm(cfg, log)
	if err != nil {
		return err
	}

	data := routingalgorithm.ShortestPathData{Origin: routeFrom, Destination: routeTo, Mode: mode, Filter: filter}
	if routeTrace {
		data.Observers = []routingalgorithm.Observer{routingalgorithm.NewLoggingObserver(log)}
	}

	var sol routingalgorithm.Solution
	switch routeAlg {
	case "dijkstra":
		sol, err = rt.ShortestPathDijkstra(cmd.Context(), data)
	case "astar":
		sol, err = rt.ShortestPathAStar(cmd.Context(), data)
	case "bellman-ford":
		sol, err = rt.ShortestPathBellmanFord(cmd.Context(), data)
	default:
		return fmt.Errorf("unknown algorithm %q", routeAlg)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sol.String())
	if sol.IsFeasible() {
		nodes := make([]datastructure.Node, 0, len(sol.Path))
		for _, id := range sol.Path {
			nodes = append(nodes, g.GetNode(id))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "polyline: %s\n", datastructure.RenderPath(nodes))
		fmt.Fprintf(cmd.OutOrStdout(), "settled %d nodes in %s\n", sol.SettledNodes, sol.SolvingTime)
		if len(sol.Arcs) > 0 {
			instructions, err := guidance.NewInstructionsFromArcs(g).GetDrivingInstructions(sol.Arcs)
			if err != nil {
				return err
			}
			for i, ins := range instructions {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s (%.0f m, %.0f s)\n", i+1, ins.Instruction, ins.Distance, ins.ETA)
			}
		}
	}
	return nil
}
