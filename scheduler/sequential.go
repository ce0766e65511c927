package scheduler

import (
	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
	"github.com/XIBRO7247/CSC4010-Coursework-1/search"
)

// Sequential is the single-threaded reference: every line in order, every
// pixel left to right. All parallel dispatchers are checked bit-for-bit
// against it.
type Sequential struct{}

func (Sequential) Name() string { return ScheduleSequential }

func (Sequential) Run(img *rawimage.Image, pal search.Palette) search.Counter {
	counts := search.NewCounter(pal)
	for _, line := range img.Pixels {
		processLine(line, pal, counts)
	}
	return counts
}
