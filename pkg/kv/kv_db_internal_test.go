package kv

import (
	"sync/atomic"
	"testing"

	"lintang/begraphes/pkg/datastructure"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProgress struct {
	n atomic.Int64
}

func (c *countingProgress) Add(num int) error {
	c.n.Add(int64(num))
	return nil
}

func TestSaveChunkAdvancesProgress(t *testing.T) {
	db, err := OpenDB("progress", vfs.NewMem())
	require.NoError(t, err)
	store := NewKVDB(db)
	defer store.Close()

	bar := &countingProgress{}
	nodes := []datastructure.Node{{ID: 0, Lat: -7.55, Lon: 110.8}}
	require.NoError(t, store.saveChunk(saveChunkJob{key: nodeChunkKey(0), value: nodes}, bar))
	assert.Equal(t, int64(1), bar.n.Load(), "each written chunk moves the bar")

	require.NoError(t, store.saveChunk(saveChunkJob{key: nodeChunkKey(1), value: nodes}, bar))
	assert.Equal(t, int64(2), bar.n.Load())

	var got []datastructure.Node
	require.NoError(t, store.get(nodeChunkKey(1), &got))
	assert.Equal(t, nodes, got)
}
