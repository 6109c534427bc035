package kv

import (
	"fmt"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// encodeChunk binary encode lalu zstd compress satu chunk nodes/arcs.
func encodeChunk(v interface{}) ([]byte, error) {
	encoded, err := binary.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("kv: encode chunk: %w", err)
	}
	return Compress(encoded)
}

func decodeChunk(bbCompressed []byte, v interface{}) error {
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return fmt.Errorf("kv: decompress chunk: %w", err)
	}
	if err := binary.Unmarshal(bb, v); err != nil {
		return fmt.Errorf("kv: decode chunk: %w", err)
	}
	return nil
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
