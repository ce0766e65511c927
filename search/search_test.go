package search

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
)

func testPalette() Palette {
	return Palette{
		{Red: 10, Green: 10, Blue: 10},
		{Red: 5, Green: 123, Blue: 99},
		{Red: 10, Green: 10, Blue: 10}, // duplicate entry counts independently
		{Red: 0, Green: 0, Blue: 0},
	}
}

func randomPixels(n int, rng *rand.Rand, pal Palette) []rawimage.Pixel {
	pixels := make([]rawimage.Pixel, n)
	for i := range pixels {
		if rng.Intn(3) == 0 {
			pixels[i] = pal[rng.Intn(len(pal))]
		} else {
			pixels[i] = rawimage.Pixel{
				Red:   rng.Int31n(255),
				Green: rng.Int31n(255),
				Blue:  rng.Int31n(255),
			}
		}
	}
	return pixels
}

func TestCount(t *testing.T) {
	pal := testPalette()
	c := NewCounter(pal)

	c.Count(rawimage.Pixel{Red: 10, Green: 10, Blue: 10}, pal)
	require.Equal(t, Counter{1, 0, 1, 0}, c, "duplicates must both match")

	c.Count(rawimage.Pixel{Red: 1, Green: 2, Blue: 3}, pal)
	require.Equal(t, Counter{1, 0, 1, 0}, c, "miss must not count")

	c.Count(rawimage.Pixel{Red: 10, Green: 10, Blue: 11}, pal)
	require.Equal(t, Counter{1, 0, 1, 0}, c, "match must be exact on all channels")
}

func TestCountIsPureOfState(t *testing.T) {
	// Counting the same unmutated pixel stream twice doubles every slot.
	pal := testPalette()
	pixels := randomPixels(200, rand.New(rand.NewSource(7)), pal)

	once := NewCounter(pal)
	for _, px := range pixels {
		once.Count(px, pal)
	}
	twice := NewCounter(pal)
	for i := 0; i < 2; i++ {
		for _, px := range pixels {
			twice.Count(px, pal)
		}
	}
	for i := range once {
		require.Equal(t, 2*once[i], twice[i])
	}
}

func TestCountRangeTilesCoverCount(t *testing.T) {
	pal := testPalette()
	px := rawimage.Pixel{Red: 10, Green: 10, Blue: 10}

	whole := NewCounter(pal)
	whole.Count(px, pal)

	for tile := 1; tile <= len(pal); tile++ {
		tiled := NewCounter(pal)
		for lo := 0; lo < len(pal); lo += tile {
			hi := lo + tile
			if hi > len(pal) {
				hi = len(pal)
			}
			tiled.CountRange(px, pal, lo, hi)
		}
		require.Equal(t, whole, tiled, "tile size %d", tile)
	}
}

func TestMergeMatchesSequentialForAnyPartition(t *testing.T) {
	pal := testPalette()
	rng := rand.New(rand.NewSource(99))
	pixels := randomPixels(500, rng, pal)

	want := NewCounter(pal)
	for _, px := range pixels {
		want.Count(px, pal)
	}

	for workers := 1; workers <= len(pixels); workers *= 3 {
		partials := make([]Counter, workers)
		for w := range partials {
			partials[w] = NewCounter(pal)
		}
		for _, px := range pixels {
			partials[rng.Intn(workers)].Count(px, pal)
		}

		merged := NewCounter(pal)
		for _, p := range partials {
			merged.Merge(p)
		}
		require.Equal(t, want, merged, "%d workers", workers)
	}
}

func TestSharedCounterMatchesPrivate(t *testing.T) {
	pal := testPalette()
	pixels := randomPixels(2000, rand.New(rand.NewSource(3)), pal)

	want := NewCounter(pal)
	for _, px := range pixels {
		want.Count(px, pal)
	}

	shared := NewShared(pal)
	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(pixels); i += workers {
				shared.Count(pixels[i], pal)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, want, shared.Snapshot())
}

func TestEmptyPalette(t *testing.T) {
	pal := Palette{}
	c := NewCounter(pal)
	c.Count(rawimage.Pixel{Red: 1, Green: 2, Blue: 3}, pal)
	require.Empty(t, c)

	var buf bytes.Buffer
	Report(&buf, pal, c)
	require.Empty(t, buf.String())
}

func TestReportFormat(t *testing.T) {
	pal := Palette{
		{Red: 5, Green: 123, Blue: 99},
		{Red: 0, Green: 10, Blue: 255},
	}
	c := Counter{2, 0}

	var buf bytes.Buffer
	Report(&buf, pal, c)
	require.Equal(t, "** (  5,123, 99) = 2\n** (  0, 10,255) = 0\n", buf.String())
}

func TestLoadPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search.raw")

	src := rawimage.New(3, 0)
	src.Pixels[0][0] = rawimage.Pixel{Red: 1, Green: 2, Blue: 3}
	src.Pixels[0][2] = rawimage.Pixel{Red: 9, Green: 9, Blue: 9}
	require.NoError(t, rawimage.Save(path, src))

	pal, err := LoadPalette(path)
	require.NoError(t, err)
	require.Len(t, pal, 3)
	require.Equal(t, rawimage.Pixel{Red: 1, Green: 2, Blue: 3}, pal[0])
	require.Equal(t, rawimage.Pixel{Red: 9, Green: 9, Blue: 9}, pal[2])

	_, err = LoadPalette(filepath.Join(dir, "missing.raw"))
	require.Error(t, err)
}
