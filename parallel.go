package bvh

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker splits row ranges finer than one per worker so that
// cancellation is noticed between chunks and uneven rows balance out.
const chunksPerWorker = 4

// NearestParallel is Nearest with query rows spread over workers goroutines.
// workers == 0 uses Config.Workers; workers == 1 runs sequentially. The
// result is bitwise identical to Nearest. If ctx is cancelled before all
// rows are answered, the context error is returned.
func (x *Index) NearestParallel(ctx context.Context, query [][]float64, workers int) ([]float64, []int, error) {
	if err := x.checkQuery(query); err != nil {
		return nil, nil, err
	}
	distances := make([]float64, len(query))
	indices := make([]int, len(query))
	err := x.fanOut(ctx, "nearest", len(query), workers, func(lo, hi int) {
		x.nearestRange(query, distances, indices, lo, hi)
	})
	if err != nil {
		return nil, nil, err
	}
	return distances, indices, nil
}

// IntersectsPointsParallel is IntersectsPoints with query rows spread over
// workers goroutines, with the same workers and ctx rules as NearestParallel.
func (x *Index) IntersectsPointsParallel(ctx context.Context, query [][]float64, minDist float64, workers int) ([]bool, error) {
	if err := x.checkQuery(query); err != nil {
		return nil, err
	}
	if err := validateMinDist(minDist); err != nil {
		return nil, err
	}
	hits := make([]bool, len(query))
	err := x.fanOut(ctx, "intersects_points", len(query), workers, func(lo, hi int) {
		x.intersectsRange(query, minDist, hits, lo, hi)
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func (x *Index) resolveWorkers(workers int) int {
	if workers == 0 {
		workers = x.workers
	}
	return max(workers, 1)
}

// fanOut runs fn over contiguous row ranges covering [0, rows). Ranges don't
// overlap, so fn may write its rows of a shared result without locking.
func (x *Index) fanOut(ctx context.Context, op string, rows, workers int, fn func(lo, hi int)) error {
	workers = x.resolveWorkers(workers)
	if workers == 1 || rows <= 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(0, rows)
		return nil
	}

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (rows + workers*chunksPerWorker - 1) / (workers * chunksPerWorker)
	for lo := 0; lo < rows; lo += chunk {
		hi := min(lo+chunk, rows)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}

	err := g.Wait()
	x.logParallel(op, rows, workers, time.Since(started), err)
	return err
}

// IntersectsTreeParallel is IntersectsTree with the dual descent spread over
// workers goroutines. The top of the pair tree is expanded breadth-first
// into independent node pairs; the first worker to find a hit sets a shared
// flag that stops all others. The verdict equals IntersectsTree's.
//
// workers == 0 uses a's Config.Workers. If ctx is cancelled and no hit has
// been found, the context error is returned.
func IntersectsTreeParallel(ctx context.Context, a, b *Index, minDist float64, workers int) (bool, error) {
	if err := checkTreePair(a, b, minDist); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	workers = a.resolveWorkers(workers)
	if workers == 1 {
		return IntersectsTree(a, b, minDist)
	}

	started := time.Now()
	var stop, found atomic.Bool
	s := dualSearch{a: a, b: b, minDist: minDist, stop: &stop}
	pairs := s.frontier(workers * chunksPerWorker)

	// Cancellation stops the searches the same way a hit does.
	cancelStop := context.AfterFunc(ctx, func() { stop.Store(true) })
	defer cancelStop()

	var g errgroup.Group
	g.SetLimit(workers)
	for _, p := range pairs {
		g.Go(func() error {
			if s.search(p.a, p.b) {
				found.Store(true)
				stop.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()

	if found.Load() {
		a.logParallel("intersects_tree", len(pairs), workers, time.Since(started), nil)
		return true, nil
	}
	err := ctx.Err()
	a.logParallel("intersects_tree", len(pairs), workers, time.Since(started), err)
	return false, err
}

// frontier expands the root pair level by level, dropping pruned pairs,
// until there are at least target pairs or nothing is left to split.
// Every returned pair has passed the gap test.
func (s *dualSearch) frontier(target int) []nodePair {
	if s.pairGap(0, 0) > s.minDist {
		return nil
	}
	pairs := []nodePair{{0, 0}}
	for len(pairs) < target {
		next := make([]nodePair, 0, 2*len(pairs))
		expanded := false
		for _, p := range pairs {
			if s.a.nodes[p.a].IsLeaf() && s.b.nodes[p.b].IsLeaf() {
				next = append(next, p)
				continue
			}
			expanded = true
			for _, c := range s.children(p.a, p.b) {
				if s.pairGap(c.a, c.b) <= s.minDist {
					next = append(next, c)
				}
			}
		}
		pairs = next
		if !expanded {
			break
		}
	}
	return pairs
}
