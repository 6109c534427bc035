package kv

import (
	"errors"
	"fmt"
	"log/slog"

	"lintang/begraphes/pkg/concurrent"
	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/server"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

const (
	defaultChunkSize = 4096
	metaKey          = "graph/meta"
)

type graphMeta struct {
	NumNodes  int64
	NumArcs   int64
	ChunkSize int64
}

type saveChunkJob struct {
	key   []byte
	value interface{}
}

type KVDB struct {
	db           *pebble.DB
	chunkSize    int
	workers      int
	showProgress bool
	log          *slog.Logger
}

type Option func(*KVDB)

func WithChunkSize(n int) Option {
	return func(k *KVDB) {
		if n > 0 {
			k.chunkSize = n
		}
	}
}

func WithWorkers(n int) Option {
	return func(k *KVDB) {
		k.workers = n
	}
}

// WithProgress show a progress bar on stdout while saving.
func WithProgress(show bool) Option {
	return func(k *KVDB) {
		k.showProgress = show
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(k *KVDB) {
		k.log = log
	}
}

// OpenDB opens (or creates) the pebble store at path. fs may be nil for the OS filesystem.
func OpenDB(path string, fs vfs.FS) (*pebble.DB, error) {
	opts := &pebble.Options{}
	if fs != nil {
		opts.FS = fs
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("kv: open pebble db %s: %w", path, err)
	}
	return db, nil
}

func NewKVDB(db *pebble.DB, opts ...Option) *KVDB {
	k := &KVDB{
		db:        db,
		chunkSize: defaultChunkSize,
		workers:   4,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func nodeChunkKey(i int) []byte {
	return []byte(fmt.Sprintf("graph/nodes/%08d", i))
}

func arcChunkKey(i int) []byte {
	return []byte(fmt.Sprintf("graph/arcs/%08d", i))
}

func numChunks(n, chunkSize int) int {
	return (n + chunkSize - 1) / chunkSize
}

// SaveGraph writes the graph as fixed size chunks of nodes and arcs. Chunks are
// compressed and written by a worker pool, the meta record is written last so a
// partially written graph is never loaded.
func (k *KVDB) SaveGraph(g *datastructure.Graph) error {
	jobs := make([]saveChunkJob, 0, numChunks(g.NumNodes(), k.chunkSize)+numChunks(g.NumArcs(), k.chunkSize))
	for i := 0; i*k.chunkSize < g.NumNodes(); i++ {
		end := min((i+1)*k.chunkSize, g.NumNodes())
		jobs = append(jobs, saveChunkJob{key: nodeChunkKey(i), value: g.Nodes[i*k.chunkSize : end]})
	}
	for i := 0; i*k.chunkSize < g.NumArcs(); i++ {
		end := min((i+1)*k.chunkSize, g.NumArcs())
		jobs = append(jobs, saveChunkJob{key: arcChunkKey(i), value: g.Arcs[i*k.chunkSize : end]})
	}

	bar := progressbar.NewOptions(len(jobs),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionSetVisibility(k.showProgress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][3/3][reset] saving graph to pebble db..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	workers := concurrent.NewWorkerPool[saveChunkJob, error](k.workers, len(jobs))
	workers.Start(func(job saveChunkJob) error {
		return k.saveChunk(job, bar)
	})
	for _, job := range jobs {
		workers.AddJob(job)
	}
	workers.Close()
	workers.Wait()

	var errs []error
	for err := range workers.CollectResults() {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "kv: save graph: %v", err)
	}

	meta, err := encodeChunk(graphMeta{
		NumNodes:  int64(g.NumNodes()),
		NumArcs:   int64(g.NumArcs()),
		ChunkSize: int64(k.chunkSize),
	})
	if err != nil {
		return err
	}
	if err := k.db.Set([]byte(metaKey), meta, pebble.Sync); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "kv: save graph meta: %v", err)
	}
	k.log.Info("graph saved", slog.Int("nodes", g.NumNodes()), slog.Int("arcs", g.NumArcs()), slog.Int("chunks", len(jobs)))
	return nil
}

type progress interface {
	Add(num int) error
}

// saveChunk runs on a worker and ticks the progress bar once the chunk is written or has failed.
func (k *KVDB) saveChunk(job saveChunkJob, bar progress) error {
	defer bar.Add(1)
	val, err := encodeChunk(job.value)
	if err != nil {
		return err
	}
	if err := k.db.Set(job.key, val, pebble.NoSync); err != nil {
		return fmt.Errorf("kv: set %s: %w", job.key, err)
	}
	return nil
}

func (k *KVDB) get(key []byte, v interface{}) error {
	val, closer, err := k.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return server.WrapErrorf(err, server.ErrNotFound, "kv: key %s not found", key)
	}
	if err != nil {
		return fmt.Errorf("kv: get %s: %w", key, err)
	}
	defer closer.Close()
	return decodeChunk(val, v)
}

// LoadGraph rebuilds the graph saved by SaveGraph. Arcs are re-added through
// Graph.AddArc so a corrupted store cannot produce an invalid graph.
func (k *KVDB) LoadGraph() (*datastructure.Graph, error) {
	var meta graphMeta
	if err := k.get([]byte(metaKey), &meta); err != nil {
		return nil, err
	}
	chunkSize := int(meta.ChunkSize)
	if chunkSize <= 0 {
		return nil, server.WrapErrorf(fmt.Errorf("kv: bad chunk size %d", chunkSize), server.ErrInternalServerError, "kv: corrupted graph meta")
	}

	g := datastructure.NewGraph()
	for i := 0; i < numChunks(int(meta.NumNodes), chunkSize); i++ {
		var nodes []datastructure.Node
		if err := k.get(nodeChunkKey(i), &nodes); err != nil {
			return nil, err
		}
		for _, n := range nodes {
			g.AddNode(n.Lat, n.Lon, n.OsmID)
		}
	}
	for i := 0; i < numChunks(int(meta.NumArcs), chunkSize); i++ {
		var arcs []datastructure.Arc
		if err := k.get(arcChunkKey(i), &arcs); err != nil {
			return nil, err
		}
		for _, arc := range arcs {
			if _, err := g.AddArc(arc); err != nil {
				return nil, server.WrapErrorf(err, server.ErrInternalServerError, "kv: corrupted arc %d: %v", arc.ID, err)
			}
		}
	}

	if g.NumNodes() != int(meta.NumNodes) || g.NumArcs() != int(meta.NumArcs) {
		return nil, server.WrapErrorf(fmt.Errorf("kv: loaded %d/%d nodes, %d/%d arcs", g.NumNodes(), meta.NumNodes, g.NumArcs(), meta.NumArcs),
			server.ErrInternalServerError, "kv: graph store is incomplete")
	}
	k.log.Info("graph loaded", slog.Int("nodes", g.NumNodes()), slog.Int("arcs", g.NumArcs()))
	return g, nil
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
