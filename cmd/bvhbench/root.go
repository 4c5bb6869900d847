package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TrevorS/bvh"
)

type options struct {
	dims     int
	points   int
	queries  int
	seed     uint64
	leafSize int
	workers  int
	offset   float64
	minDists []float64
	save     string
	verbose  bool

	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "bvhbench",
		Short:         "Benchmark bounding-sphere proximity queries against brute force",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.dims < 1 || opts.points < 1 || opts.queries < 0 {
				return fmt.Errorf("dims and points must be >= 1 and queries >= 0")
			}
			level := zerolog.InfoLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			opts.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).
				With().
				Timestamp().
				Logger()
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.IntVar(&opts.dims, "dims", 7, "point dimensionality")
	f.IntVar(&opts.points, "points", 1000, "number of indexed points")
	f.IntVar(&opts.queries, "queries", 10000, "number of query points")
	f.Uint64Var(&opts.seed, "seed", 1, "random seed")
	f.IntVar(&opts.leafSize, "leaf-size", bvh.DefaultLeafSize, "maximum points per leaf")
	f.IntVar(&opts.workers, "workers", 1, "query goroutines (0 = one per CPU)")
	f.Float64Var(&opts.offset, "offset", 0, "shift added to every query coordinate")
	f.Float64SliceVar(&opts.minDists, "min-dist", []float64{0.2}, "intersection thresholds")
	f.StringVar(&opts.save, "save", "", "write a snapshot of the indexed points to this file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newMindistCmd(opts), newIsectCmd(opts), newIsectTreeCmd(opts))
	return cmd
}

func (o *options) config() bvh.Config {
	cfg := bvh.DefaultConfig()
	cfg.LeafSize = o.leafSize
	cfg.Logger = &o.logger
	return cfg
}

func (o *options) build(points [][]float64) (*bvh.Index, error) {
	idx, err := bvh.Build(points, o.config())
	if err != nil {
		return nil, err
	}
	if o.save == "" {
		return idx, nil
	}
	f, err := os.Create(o.save)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	n, err := idx.WriteTo(f)
	if err != nil {
		return nil, err
	}
	o.logger.Info().Str("path", o.save).Int64("bytes", n).Msg("snapshot written")
	return idx, f.Close()
}
