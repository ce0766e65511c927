// Package search counts exact palette matches across raw pixel data.
//
// Workers accumulate matches into private Counter vectors and merge them once
// at the end of their unit of work; SharedCounter is the contended
// atomic-per-match alternative kept as an equivalence baseline.
package search

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
)

// Palette is the ordered set of target colours. Entry order defines counter
// indices and report order. Never mutated after load.
type Palette []rawimage.Pixel

// LoadPalette reads the search pixels from a raw file as a single line.
func LoadPalette(path string) (Palette, error) {
	img, err := rawimage.Load(path, 0)
	if err != nil {
		return nil, err
	}
	return Palette(img.Pixels[0]), nil
}

// Counter maps palette index to match count. A worker owns its Counter
// exclusively while counting; only Merge touches a vector owned by someone
// else, and only after the owner has finished.
type Counter []uint64

// NewCounter returns a zeroed counter sized for pal.
func NewCounter(pal Palette) Counter {
	return make(Counter, len(pal))
}

// Count bumps the slot of every palette entry exactly equal to px.
func (c Counter) Count(px rawimage.Pixel, pal Palette) {
	for i := range pal {
		if px.Red == pal[i].Red && px.Green == pal[i].Green && px.Blue == pal[i].Blue {
			c[i]++
		}
	}
}

// CountRange is Count restricted to palette indices [lo, hi), the unit used
// by tiled dispatch.
func (c Counter) CountRange(px rawimage.Pixel, pal Palette, lo, hi int) {
	for i := lo; i < hi; i++ {
		if px.Red == pal[i].Red && px.Green == pal[i].Green && px.Blue == pal[i].Blue {
			c[i]++
		}
	}
}

// Merge folds other into c index-wise. Addition is commutative and
// associative, so merge order never changes the result.
func (c Counter) Merge(other Counter) {
	for i := range other {
		c[i] += other[i]
	}
}

// SharedCounter counts matches straight into shared slots with one atomic
// add per match. Correct under any interleaving but contended; kept as the
// reference style the private-accumulate-then-merge scheme is checked
// against.
type SharedCounter struct {
	slots []atomic.Uint64
}

// NewShared returns a zeroed shared counter sized for pal.
func NewShared(pal Palette) *SharedCounter {
	return &SharedCounter{slots: make([]atomic.Uint64, len(pal))}
}

// Count bumps the slot of every palette entry exactly equal to px.
func (s *SharedCounter) Count(px rawimage.Pixel, pal Palette) {
	for i := range pal {
		if px.Red == pal[i].Red && px.Green == pal[i].Green && px.Blue == pal[i].Blue {
			s.slots[i].Add(1)
		}
	}
}

// Snapshot copies the current totals into a plain Counter. Call after all
// counting goroutines have been joined.
func (s *SharedCounter) Snapshot() Counter {
	c := make(Counter, len(s.slots))
	for i := range s.slots {
		c[i] = s.slots[i].Load()
	}
	return c
}

// Report writes one "** (RRR,GGG,BBB) = N" line per palette entry, in
// palette order, channels right-aligned in three columns.
func Report(w io.Writer, pal Palette, c Counter) {
	for i := range pal {
		fmt.Fprintf(w, "** (%s,%s,%s) = %d\n",
			rawimage.FormatRGBValue(pal[i].Red),
			rawimage.FormatRGBValue(pal[i].Green),
			rawimage.FormatRGBValue(pal[i].Blue),
			c[i])
	}
}
