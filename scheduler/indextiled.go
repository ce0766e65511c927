package scheduler

import (
	"sync"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
	"github.com/XIBRO7247/CSC4010-Coursework-1/search"
)

// DefaultTile is the palette indices per tile when none is configured.
const DefaultTile = 1024

// IndexTiled keeps the pixel sweep itself single-file but splits the
// O(palette) searches into index tiles spread round-robin across one team of
// workers for the whole run. Per pixel the team moves through four phases in
// lockstep: snapshot the original value and search it, barrier, worker 0
// applies bleed+transform, barrier, search the final value. The barriers
// guarantee no worker reads a pixel while it is being mutated, and that the
// original-value search always precedes the mutation it brackets.
type IndexTiled struct {
	Threads int
	Tile    int
}

func (IndexTiled) Name() string { return ScheduleTiles }

func (d IndexTiled) Run(img *rawimage.Image, pal search.Palette) search.Counter {
	tile := d.Tile
	if tile < 1 {
		tile = DefaultTile
	}
	tiles := (len(pal) + tile - 1) / tile
	n := workerCount(d.Threads, tiles)

	master := search.NewCounter(pal)
	if n <= 1 {
		// Empty palette or a single tile: nothing to distribute.
		for _, line := range img.Pixels {
			processLine(line, pal, master)
		}
		return master
	}

	barrier := NewBarrier(n)
	partials := make([]search.Counter, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func(w int) {
			defer wg.Done()
			local := search.NewCounter(pal)
			for _, line := range img.Pixels {
				for p := range line {
					// Safe to read before the barrier: line[p] is only
					// mutated later in this phase, behind the barrier.
					orig := line[p]
					for t := w; t < tiles; t += n {
						lo := t * tile
						hi := lo + tile
						if hi > len(pal) {
							hi = len(pal)
						}
						local.CountRange(orig, pal, lo, hi)
					}

					barrier.Wait() // original searched everywhere

					if w == 0 {
						rawimage.Bleed(line, p)
						rawimage.Transform(&line[p])
					}

					barrier.Wait() // mutation visible everywhere

					final := line[p]
					for t := w; t < tiles; t += n {
						lo := t * tile
						hi := lo + tile
						if hi > len(pal) {
							hi = len(pal)
						}
						local.CountRange(final, pal, lo, hi)
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
