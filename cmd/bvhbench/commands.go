package main

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TrevorS/bvh"
)

// distTol is the largest distance difference accepted between the indexed
// and brute-force nearest queries.
const distTol = 1e-9

func newMindistCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mindist",
		Short: "Nearest-point queries: index vs brute force",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng := newRand(opts.seed)
			points := randomPoints(rng, opts.points, opts.dims, 0)
			queries := randomPoints(rng, opts.queries, opts.dims, opts.offset)

			idx, err := opts.build(points)
			if err != nil {
				return err
			}

			started := time.Now()
			d1, w1, err := idx.NearestParallel(cmd.Context(), queries, opts.workers)
			if err != nil {
				return err
			}
			tIdx := time.Since(started)

			started = time.Now()
			d2, w2, err := bvh.NaiveNearest(points, queries, nil)
			if err != nil {
				return err
			}
			tNaive := time.Since(started)

			mismatches := 0
			minDist := math.Inf(1)
			for i := range queries {
				if w1[i] != w2[i] || math.Abs(d1[i]-d2[i]) > distTol {
					mismatches++
				}
				minDist = min(minDist, d1[i])
			}

			opts.logger.Info().
				Int("queries", len(queries)).
				Float64("min_dist", minDist).
				Str("bvh_rate", rate(len(queries), tIdx)).
				Str("naive_rate", rate(len(queries), tNaive)).
				Msg("mindist")
			return report(cmd, "mindist", mismatches, len(queries))
		},
	}
}

func newIsectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "isect",
		Short: "Point-batch threshold queries: index vs brute force",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng := newRand(opts.seed)
			points := randomPoints(rng, opts.points, opts.dims, 0)
			queries := randomPoints(rng, opts.queries, opts.dims, opts.offset)

			idx, err := opts.build(points)
			if err != nil {
				return err
			}

			mismatches, total := 0, 0
			for _, minDist := range opts.minDists {
				started := time.Now()
				h1, err := idx.IntersectsPointsParallel(cmd.Context(), queries, minDist, opts.workers)
				if err != nil {
					return err
				}
				tIdx := time.Since(started)

				started = time.Now()
				h2, err := bvh.NaiveIntersectsPoints(points, queries, minDist, nil)
				if err != nil {
					return err
				}
				tNaive := time.Since(started)

				hits := 0
				for i := range queries {
					if h1[i] != h2[i] {
						mismatches++
					}
					if h1[i] {
						hits++
					}
				}
				total += len(queries)

				opts.logger.Info().
					Float64("min_dist", minDist).
					Float64("hit_frac", frac(hits, len(queries))).
					Str("bvh_rate", rate(len(queries), tIdx)).
					Str("naive_rate", rate(len(queries), tNaive)).
					Msg("isect")
			}
			return report(cmd, "isect", mismatches, total)
		},
	}
}

func newIsectTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "isect-tree",
		Short: "Tree-vs-tree threshold queries: index vs brute force",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng := newRand(opts.seed)
			setA := randomPoints(rng, opts.points, opts.dims, 0)
			setB := randomPoints(rng, opts.points, opts.dims, opts.offset)

			a, err := opts.build(setA)
			if err != nil {
				return err
			}
			b, err := bvh.Build(setB, opts.config())
			if err != nil {
				return err
			}

			mismatches, hits := 0, 0
			var tIdx, tNaive time.Duration
			for _, minDist := range opts.minDists {
				started := time.Now()
				got, err := bvh.IntersectsTreeParallel(cmd.Context(), a, b, minDist, opts.workers)
				if err != nil {
					return err
				}
				tIdx += time.Since(started)

				started = time.Now()
				want, err := bvh.NaiveIntersects(setA, setB, minDist, nil)
				if err != nil {
					return err
				}
				tNaive += time.Since(started)

				if got != want {
					mismatches++
				}
				if got {
					hits++
				}
				opts.logger.Debug().Float64("min_dist", minDist).Bool("hit", got).Msg("isect-tree")
			}

			n := len(opts.minDists)
			opts.logger.Info().
				Int("thresholds", n).
				Float64("hit_frac", frac(hits, n)).
				Str("bvh_rate", rate(n, tIdx)).
				Str("naive_rate", rate(n, tNaive)).
				Msg("isect-tree")
			return report(cmd, "isect-tree", mismatches, n)
		},
	}
}

// report prints the agreement summary and fails on any disagreement.
func report(cmd *cobra.Command, name string, mismatches, total int) error {
	if mismatches > 0 {
		return fmt.Errorf("%s: %d of %d results disagree with brute force", name, mismatches, total)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d results agree with brute force\n", name, total)
	return nil
}

// rate formats n/elapsed as a comma-grouped per-second count.
func rate(n int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "inf"
	}
	return humanize.Comma(int64(float64(n) / elapsed.Seconds()))
}

func frac(k, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(k) / float64(n)
}
