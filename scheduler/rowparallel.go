package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
	"github.com/XIBRO7247/CSC4010-Coursework-1/search"
)

// ChunkKind is how the row-parallel dispatcher hands lines to workers.
type ChunkKind int

const (
	// Static assigns lines up front: one contiguous block per worker, or
	// round-robin blocks of Chunk lines when a chunk size is given.
	Static ChunkKind = iota
	// Dynamic lets workers claim the next Chunk lines as they go idle.
	Dynamic
	// Guided is Dynamic with shrinking claims: each claim takes a
	// proportional share of the remaining lines, floored at Chunk.
	Guided
)

func (k ChunkKind) String() string {
	switch k {
	case Static:
		return ScheduleStatic
	case Dynamic:
		return ScheduleDynamic
	case Guided:
		return ScheduleGuided
	}
	return fmt.Sprintf("ChunkKind(%d)", int(k))
}

// TASLock is a test-and-set spinlock. The critical sections it guards are a
// handful of integer operations, too short to be worth parking a goroutine.
type TASLock struct {
	state int32 // 0 = unlocked, 1 = locked
}

func (l *TASLock) Lock() {
	for !atomic.CompareAndSwapInt32(&l.state, 0, 1) {
		// spin until acquired
	}
}

func (l *TASLock) Unlock() {
	atomic.StoreInt32(&l.state, 0)
}

// claimer hands out line ranges under the dynamic and guided kinds.
type claimer struct {
	lock    TASLock
	next    int
	lines   int
	kind    ChunkKind
	chunk   int
	workers int
}

func (c *claimer) claim() (lo, hi int, ok bool) {
	c.lock.Lock()
	if c.next >= c.lines {
		c.lock.Unlock()
		return 0, 0, false
	}
	lo = c.next
	size := c.chunk
	if size < 1 {
		size = 1
	}
	if c.kind == Guided {
		if share := (c.lines - lo) / c.workers; share > size {
			size = share
		}
	}
	if lo+size > c.lines {
		size = c.lines - lo
	}
	c.next = lo + size
	c.lock.Unlock()
	return lo, lo + size, true
}

// RowParallel partitions line indices across a worker pool. Each worker owns
// its claimed lines end to end with a private counter, merged once after the
// join. Lines are mutually independent, so claim order never affects the
// result.
type RowParallel struct {
	Threads int
	Kind    ChunkKind
	Chunk   int
}

func (d RowParallel) Name() string { return "rows-" + d.Kind.String() }

func (d RowParallel) Run(img *rawimage.Image, pal search.Palette) search.Counter {
	lines := img.Lines()
	n := workerCount(d.Threads, lines)
	master := search.NewCounter(pal)
	if n <= 1 || lines == 0 {
		for _, line := range img.Pixels {
			processLine(line, pal, master)
		}
		return master
	}

	var cl *claimer
	if d.Kind != Static {
		cl = &claimer{lines: lines, kind: d.Kind, chunk: d.Chunk, workers: n}
	}

	partials := make([]search.Counter, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func(w int) {
			defer wg.Done()
			local := search.NewCounter(pal)
			if d.Kind == Static {
				d.runStatic(img, pal, local, w, n)
			} else {
				for {
					lo, hi, ok := cl.claim()
					if !ok {
						break
					}
					for l := lo; l < hi; l++ {
						processLine(img.Pixels[l], pal, local)
					}
				}
			}
			partials[w] = local
		}(w)
	}
	wg.Wait()

	for _, p := range partials {
		master.Merge(p)
	}
	return master
}

// runStatic processes worker w's statically assigned lines: a contiguous
// block when no chunk size is set, otherwise round-robin chunks.
func (d RowParallel) runStatic(img *rawimage.Image, pal search.Palette, local search.Counter, w, n int) {
	lines := img.Lines()
	if d.Chunk < 1 {
		size := lines / n
		lo := w * size
		hi := lo + size
		if w == n-1 {
			hi = lines // last worker picks up the remainder
		}
		for l := lo; l < hi; l++ {
			processLine(img.Pixels[l], pal, local)
		}
		return
	}
	for lo := w * d.Chunk; lo < lines; lo += n * d.Chunk {
		hi := lo + d.Chunk
		if hi > lines {
			hi = lines
		}
		for l := lo; l < hi; l++ {
			processLine(img.Pixels[l], pal, local)
		}
	}
}

// RowAtomic is row-parallel counting straight into shared slots with one
// atomic add per match instead of private counters. Slower under contention;
// kept as the reference accumulation style equivalence tests compare the
// merge scheme against.
type RowAtomic struct {
	Threads int
}

func (RowAtomic) Name() string { return ScheduleAtomic }

func (d RowAtomic) Run(img *rawimage.Image, pal search.Palette) search.Counter {
	lines := img.Lines()
	n := workerCount(d.Threads, lines)
	shared := search.NewShared(pal)

	var wg sync.WaitGroup
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func(w int) {
			defer wg.Done()
			size := lines / n
			lo := w * size
			hi := lo + size
			if w == n-1 {
				hi = lines
			}
			for l := lo; l < hi; l++ {
				processLine(img.Pixels[l], pal, shared)
			}
		}(w)
	}
	wg.Wait()

	return shared.Snapshot()
}
