package bvh

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot layout:
//
//	magic    [4]byte  "BVH1"
//	checksum uint64   little-endian xxhash64 of the uncompressed payload
//	payload  zstd stream of the msgpack-encoded snapshot struct
var snapshotMagic = [4]byte{'B', 'V', 'H', '1'}

const snapshotVersion = 1

type snapshot struct {
	Version    int        `msgpack:"version"`
	Dims       int        `msgpack:"dims"`
	N          int        `msgpack:"n"`
	LeafSize   int        `msgpack:"leaf_size"`
	Metric     string     `msgpack:"metric"`
	MinkowskiP float64    `msgpack:"minkowski_p,omitempty"`
	Depth      int        `msgpack:"depth"`
	Data       []float64  `msgpack:"data"`
	IdxArray   []int      `msgpack:"idx"`
	Nodes      []NodeData `msgpack:"nodes"`
	Centers    []float64  `msgpack:"centers"`
}

// WriteTo writes a snapshot of the index to w. Only indexes built with one of
// the package's metrics can be written. It implements io.WriterTo.
func (x *Index) WriteTo(w io.Writer) (int64, error) {
	name, p, err := metricName(x.metric)
	if err != nil {
		return 0, err
	}
	payload, err := msgpack.Marshal(&snapshot{
		Version:    snapshotVersion,
		Dims:       x.store.dims,
		N:          x.store.n,
		LeafSize:   x.leafSize,
		Metric:     name,
		MinkowskiP: p,
		Depth:      x.depth,
		Data:       x.store.data,
		IdxArray:   x.idxArray,
		Nodes:      x.nodes,
		Centers:    x.centers,
	})
	if err != nil {
		return 0, fmt.Errorf("bvh: encode snapshot: %w", err)
	}

	cw := &countingWriter{w: w}
	var header [12]byte
	copy(header[:4], snapshotMagic[:])
	binary.LittleEndian.PutUint64(header[4:], xxhash.Sum64(payload))
	if _, err := cw.Write(header[:]); err != nil {
		return cw.n, fmt.Errorf("bvh: write snapshot header: %w", err)
	}

	enc, err := zstd.NewWriter(cw)
	if err != nil {
		return cw.n, fmt.Errorf("bvh: create zstd writer: %w", err)
	}
	if _, err := enc.Write(payload); err != nil {
		_ = enc.Close()
		return cw.n, fmt.Errorf("bvh: write snapshot payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return cw.n, fmt.Errorf("bvh: write snapshot payload: %w", err)
	}
	x.logSnapshot("write", cw.n)
	return cw.n, nil
}

// ReadIndex reads an index snapshot written by Index.WriteTo. The snapshot's
// metric and leaf size are restored; cfg supplies Workers and Logger, and its
// LeafSize and Metric are ignored. Malformed input yields ErrCorruptSnapshot.
func ReadIndex(r io.Reader, cfg Config) (*Index, error) {
	applyDefaults(&cfg)
	if cfg.Workers < 0 {
		return nil, invalidf("Workers must be >= 0, got %d", cfg.Workers)
	}

	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, corruptf("read header: %v", err)
	}
	if [4]byte(header[:4]) != snapshotMagic {
		return nil, corruptf("bad magic %q", header[:4])
	}
	sum := binary.LittleEndian.Uint64(header[4:])

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, corruptf("open zstd stream: %v", err)
	}
	defer dec.Close()
	payload, err := io.ReadAll(dec)
	if err != nil {
		return nil, corruptf("decompress payload: %v", err)
	}
	if xxhash.Sum64(payload) != sum {
		return nil, corruptf("checksum mismatch")
	}

	var snap snapshot
	if err := msgpack.Unmarshal(payload, &snap); err != nil {
		return nil, corruptf("decode payload: %v", err)
	}
	x, err := snap.index(cfg.Workers, cfg.Logger)
	if err != nil {
		return nil, err
	}
	x.logSnapshot("read", int64(len(payload)))
	return x, nil
}

// index validates the decoded snapshot and turns it into an Index. The
// checks guarantee that no query on the result can index out of range or
// recurse forever.
func (s *snapshot) index(workers int, logger *zerolog.Logger) (*Index, error) {
	if s.Version != snapshotVersion {
		return nil, corruptf("unsupported version %d", s.Version)
	}
	if s.Dims <= 0 || s.N <= 0 || s.LeafSize < 1 {
		return nil, corruptf("dims=%d n=%d leaf_size=%d", s.Dims, s.N, s.LeafSize)
	}
	if len(s.Data) != s.N*s.Dims || len(s.IdxArray) != s.N {
		return nil, corruptf("point data does not match n=%d dims=%d", s.N, s.Dims)
	}
	if len(s.Nodes) == 0 || len(s.Centers) != len(s.Nodes)*s.Dims {
		return nil, corruptf("%d nodes with %d center values", len(s.Nodes), len(s.Centers))
	}
	metric, err := metricByName(s.Metric, s.MinkowskiP)
	if err != nil {
		return nil, err
	}

	seen := make([]bool, s.N)
	for _, id := range s.IdxArray {
		if id < 0 || id >= s.N || seen[id] {
			return nil, corruptf("index permutation is invalid")
		}
		seen[id] = true
	}
	if root := s.Nodes[0]; root.IdxStart != 0 || root.IdxEnd != s.N {
		return nil, corruptf("root covers [%d, %d), want [0, %d)", root.IdxStart, root.IdxEnd, s.N)
	}
	for id, nd := range s.Nodes {
		if nd.IdxStart < 0 || nd.IdxEnd > s.N || nd.IdxStart >= nd.IdxEnd {
			return nil, corruptf("node %d has range [%d, %d)", id, nd.IdxStart, nd.IdxEnd)
		}
		if math.IsNaN(nd.Radius) || nd.Radius < 0 {
			return nil, corruptf("node %d has radius %v", id, nd.Radius)
		}
		if nd.IsLeaf() {
			if nd.Right >= 0 {
				return nil, corruptf("leaf %d has a right child", id)
			}
			continue
		}
		// Children follow their parent in the arena, so links cannot cycle.
		if nd.Left <= id || nd.Right <= id || nd.Left >= len(s.Nodes) || nd.Right >= len(s.Nodes) {
			return nil, corruptf("node %d has children %d, %d", id, nd.Left, nd.Right)
		}
		l, r := s.Nodes[nd.Left], s.Nodes[nd.Right]
		if l.IdxStart != nd.IdxStart || l.IdxEnd != r.IdxStart || r.IdxEnd != nd.IdxEnd {
			return nil, corruptf("node %d children do not partition its range", id)
		}
	}

	return &Index{
		store:    pointStore{data: s.Data, n: s.N, dims: s.Dims},
		metric:   metric,
		leafSize: s.LeafSize,
		idxArray: s.IdxArray,
		nodes:    s.Nodes,
		centers:  s.Centers,
		depth:    s.Depth,
		workers:  workers,
		logger:   loggerOrNop(logger),
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
