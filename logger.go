package bvh

import (
	"time"

	"github.com/rs/zerolog"
)

func loggerOrNop(l *zerolog.Logger) zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return *l
}

// logBuild records a construction summary.
func (x *Index) logBuild(elapsed time.Duration) {
	x.logger.Debug().
		Int("points", x.store.n).
		Int("dims", x.store.dims).
		Int("leaf_size", x.leafSize).
		Int("nodes", len(x.nodes)).
		Int("depth", x.depth).
		Dur("elapsed", elapsed).
		Msg("index built")
}

// logParallel records a parallel query fan-out.
func (x *Index) logParallel(op string, rows, workers int, elapsed time.Duration, err error) {
	if err != nil {
		x.logger.Warn().
			Str("op", op).
			Int("rows", rows).
			Int("workers", workers).
			Err(err).
			Msg("parallel query aborted")
		return
	}
	x.logger.Debug().
		Str("op", op).
		Int("rows", rows).
		Int("workers", workers).
		Dur("elapsed", elapsed).
		Msg("parallel query completed")
}

// logSnapshot records a snapshot write or read.
func (x *Index) logSnapshot(op string, bytes int64) {
	x.logger.Debug().
		Str("op", op).
		Int64("bytes", bytes).
		Int("points", x.store.n).
		Int("nodes", len(x.nodes)).
		Msg("snapshot")
}
