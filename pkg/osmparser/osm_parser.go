package osmparser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/server"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

type OSMParser struct {
	log          *slog.Logger
	showProgress bool
}

type Option func(*OSMParser)

func WithProgress(show bool) Option {
	return func(p *OSMParser) {
		p.showProgress = show
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(p *OSMParser) {
		p.log = log
	}
}

func NewOSMParser(opts ...Option) *OSMParser {
	p := &OSMParser{log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads an .osm.pbf file and builds the road network graph.
func (p *OSMParser) Parse(ctx context.Context, path string) (*datastructure.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrNotFound, "osmparser: open map file %s: %v", path, err)
	}
	defer f.Close()
	return p.ParseReader(ctx, f)
}

// ParseReader scans r twice: first for the routable ways, then for the coordinates
// of the nodes those ways reference.
func (p *OSMParser) ParseReader(ctx context.Context, r io.ReadSeeker) (*datastructure.Graph, error) {
	ways := []*osm.Way{}
	wayNodesMap := make(map[osm.NodeID]bool)

	scanner := osmpbf.New(ctx, r, runtime.GOMAXPROCS(0))
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		tags := way.TagMap()
		if !isOsmWayUsedByCars(tags) && !isOsmWayUsedByPedestrians(tags) {
			continue
		}
		ways = append(ways, way)
		for _, n := range way.Nodes {
			wayNodesMap[n.ID] = true
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("osmparser: scan ways: %w", err)
	}
	scanner.Close()
	p.log.Info("osm ways scanned", slog.Int("ways", len(ways)), slog.Int("way_nodes", len(wayNodesMap)))

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("osmparser: rewind map file: %w", err)
	}

	coords := make(map[osm.NodeID][2]float64, len(wayNodesMap))
	scanner = osmpbf.New(ctx, r, runtime.GOMAXPROCS(0))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if wayNodesMap[node.ID] {
			coords[node.ID] = [2]float64{node.Lat, node.Lon}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("osmparser: scan nodes: %w", err)
	}
	scanner.Close()

	complete := ways[:0]
	skipped := 0
	for _, way := range ways {
		ok := true
		for i := range way.Nodes {
			c, found := coords[way.Nodes[i].ID]
			if !found {
				ok = false
				break
			}
			way.Nodes[i].Lat = c[0]
			way.Nodes[i].Lon = c[1]
		}
		if !ok {
			skipped++
			continue
		}
		complete = append(complete, way)
	}
	if skipped > 0 {
		p.log.Warn("ways referencing missing nodes skipped", slog.Int("skipped", skipped))
	}

	g, err := p.BuildGraph(complete)
	if err != nil {
		return nil, err
	}
	p.log.Info("road network graph built", slog.Int("nodes", g.NumNodes()), slog.Int("arcs", g.NumArcs()))
	return g, nil
}
