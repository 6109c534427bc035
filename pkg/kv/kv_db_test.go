package kv_test

import (
	"testing"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/kv"
	"lintang/begraphes/pkg/server"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph(t *testing.T, numNodes int) *datastructure.Graph {
	t.Helper()
	g := datastructure.NewGraph()
	for i := 0; i < numNodes; i++ {
		g.AddNode(-7.55+float64(i)*1e-4, 110.8, int64(1000+i))
	}
	for i := 0; i+1 < numNodes; i++ {
		_, err := g.AddArc(datastructure.Arc{
			From: int32(i), To: int32(i + 1), Length: float64(10 + i), MaxSpeed: 30,
			RoadClass: "residential", StreetName: "Jalan Slamet Riyadi", Roundabout: i%7 == 0,
			Access: datastructure.Access(1 + i%3),
		})
		require.NoError(t, err)
	}
	return g
}

func TestSaveLoadGraph(t *testing.T) {
	db, err := kv.OpenDB("begraphesDB", vfs.NewMem())
	require.NoError(t, err)
	store := kv.NewKVDB(db, kv.WithChunkSize(16), kv.WithWorkers(3))
	defer store.Close()

	// several chunks plus a partial last one
	g := sampleGraph(t, 50)
	require.NoError(t, store.SaveGraph(g))

	loaded, err := store.LoadGraph()
	require.NoError(t, err)
	assert.Equal(t, g.Nodes, loaded.Nodes)
	assert.Equal(t, g.Arcs, loaded.Arcs)
	assert.Equal(t, g.OutArcs, loaded.OutArcs)
}

func TestLoadGraphMissing(t *testing.T) {
	db, err := kv.OpenDB("empty", vfs.NewMem())
	require.NoError(t, err)
	store := kv.NewKVDB(db)
	defer store.Close()

	_, err = store.LoadGraph()
	assert.ErrorIs(t, err, server.ErrNotFound)
}

func TestCompress(t *testing.T) {
	in := []byte("jalan jalan jalan jalan jalan jalan")
	c, err := kv.Compress(in)
	require.NoError(t, err)
	out, err := kv.Decompress(c)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
