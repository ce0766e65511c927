// Package scheduler runs the search/bleed/transform/search pipeline over a
// raw image under interchangeable dispatch strategies. Every strategy
// produces a grid and counter vector identical to the sequential baseline;
// they differ only in which operations may run concurrently.
package scheduler

import (
	"fmt"
	"runtime"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
	"github.com/XIBRO7247/CSC4010-Coursework-1/search"
)

// Schedule names accepted by New, mirroring the runtime-selected OpenMP
// schedule kinds of the original experiments.
const (
	ScheduleSequential = "sequential"
	ScheduleStatic     = "static"
	ScheduleDynamic    = "dynamic"
	ScheduleGuided     = "guided"
	ScheduleAtomic     = "atomic"
	ScheduleTasks      = "tasks"
	ScheduleTiles      = "tiles"
)

// Config selects a dispatch strategy for a pipeline run.
type Config struct {
	Schedule string
	Threads  int // worker count; <1 means GOMAXPROCS
	Chunk    int // lines per claim for dynamic/guided and round-robin static; 0 = kind default
	Tile     int // palette indices per tile for the tiles schedule; 0 = DefaultTile
}

// RowDispatcher drives the full pipeline over every line of img against pal
// and returns the merged match counts. The image is mutated in place.
type RowDispatcher interface {
	Name() string
	Run(img *rawimage.Image, pal search.Palette) search.Counter
}

// New returns the dispatcher cfg selects.
func New(cfg Config) (RowDispatcher, error) {
	switch cfg.Schedule {
	case "", ScheduleSequential:
		return Sequential{}, nil
	case ScheduleStatic:
		return RowParallel{Threads: cfg.Threads, Kind: Static, Chunk: cfg.Chunk}, nil
	case ScheduleDynamic:
		return RowParallel{Threads: cfg.Threads, Kind: Dynamic, Chunk: cfg.Chunk}, nil
	case ScheduleGuided:
		return RowParallel{Threads: cfg.Threads, Kind: Guided, Chunk: cfg.Chunk}, nil
	case ScheduleAtomic:
		return RowAtomic{Threads: cfg.Threads}, nil
	case ScheduleTasks:
		return TaskPerRow{Threads: cfg.Threads}, nil
	case ScheduleTiles:
		return IndexTiled{Threads: cfg.Threads, Tile: cfg.Tile}, nil
	default:
		return nil, fmt.Errorf("unknown schedule %q", cfg.Schedule)
	}
}

// accumulator is either a worker-private search.Counter or the shared atomic
// variant; the pipeline body does not care which.
type accumulator interface {
	Count(px rawimage.Pixel, pal search.Palette)
}

// processLine drives one line end to end, strictly left to right: search the
// original value, bleed, transform, search the final value. The two searches
// bracket the mutation of each pixel, so acc observes exactly the states the
// sequential baseline observes.
func processLine(line []rawimage.Pixel, pal search.Palette, acc accumulator) {
	for p := range line {
		acc.Count(line[p], pal)
		rawimage.Bleed(line, p)
		rawimage.Transform(&line[p])
		acc.Count(line[p], pal)
	}
}

// workerCount clamps the configured thread count to the available work units.
func workerCount(threads, units int) int {
	if threads < 1 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > units {
		threads = units
	}
	if threads < 1 {
		threads = 1
	}
	return threads
}
